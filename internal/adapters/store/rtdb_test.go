package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/safelabs/sentinel-node/internal/domain"
)

func testRecord() domain.Record {
	return domain.BuildRecord(domain.SampleSet{
		Temperature: domain.NewMeasurement(domain.KindTemperature, 21.5),
		Humidity:    domain.NewMeasurement(domain.KindHumidity, 44),
		Gas:         domain.NewMeasurement(domain.KindGas, 420.5),
		Motion:      domain.BoolMeasurement(domain.KindMotion, true),
	}, "sensor_node_01", 1042)
}

type capturedRequest struct {
	method string
	path   string
	query  map[string]string
	body   []byte
}

func newCaptureServer(status int, response string) (*httptest.Server, *[]capturedRequest) {
	var reqs []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		q := map[string]string{}
		for k := range r.URL.Query() {
			q[k] = r.URL.Query().Get(k)
		}
		reqs = append(reqs, capturedRequest{method: r.Method, path: r.URL.Path, query: q, body: body})
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	return srv, &reqs
}

func TestRTDBOpenProbesRoot(t *testing.T) {
	srv, reqs := newCaptureServer(http.StatusOK, `{}`)
	defer srv.Close()

	s := NewRTDB(RTDBConfig{DatabaseURL: srv.URL, Secret: "s3cret"})
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}

	if len(*reqs) != 1 {
		t.Fatalf("expected one probe request, got %d", len(*reqs))
	}
	probe := (*reqs)[0]
	if probe.method != http.MethodGet || probe.path != "/.json" {
		t.Fatalf("unexpected probe: %s %s", probe.method, probe.path)
	}
	if probe.query["auth"] != "s3cret" || probe.query["shallow"] != "true" {
		t.Fatalf("probe missing auth/shallow params: %v", probe.query)
	}

	// Second open is a no-op.
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if len(*reqs) != 1 {
		t.Fatalf("open should be idempotent, got %d requests", len(*reqs))
	}
}

func TestRTDBPutLatest(t *testing.T) {
	srv, reqs := newCaptureServer(http.StatusOK, `{}`)
	defer srv.Close()

	s := NewRTDB(RTDBConfig{DatabaseURL: srv.URL, Secret: "s3cret"})
	if err := s.PutLatest(context.Background(), testRecord()); err != nil {
		t.Fatalf("put latest: %v", err)
	}

	req := (*reqs)[0]
	if req.method != http.MethodPut {
		t.Fatalf("expected PUT, got %s", req.method)
	}
	if req.path != "/devices/sensor_node_01/latest.json" {
		t.Fatalf("unexpected path: %s", req.path)
	}
	if req.query["auth"] != "s3cret" {
		t.Fatalf("missing auth param: %v", req.query)
	}

	var payload map[string]any
	if err := json.Unmarshal(req.body, &payload); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	for _, field := range []string{"timestamp", "temperature", "humidity", "gas_ppm", "motion_detected", "device_id"} {
		if _, ok := payload[field]; !ok {
			t.Fatalf("payload missing field %q: %v", field, payload)
		}
	}
	if payload["device_id"] != "sensor_node_01" || payload["motion_detected"] != true {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestRTDBPutHistoryKeyedByTimestamp(t *testing.T) {
	srv, reqs := newCaptureServer(http.StatusOK, `{}`)
	defer srv.Close()

	s := NewRTDB(RTDBConfig{DatabaseURL: srv.URL})
	if err := s.PutHistory(context.Background(), testRecord()); err != nil {
		t.Fatalf("put history: %v", err)
	}

	req := (*reqs)[0]
	if req.path != "/devices/sensor_node_01/history/1042.json" {
		t.Fatalf("unexpected history path: %s", req.path)
	}
}

func TestRTDBPutSurfacesRemoteReason(t *testing.T) {
	srv, _ := newCaptureServer(http.StatusUnauthorized, `{"error":"Permission denied"}`)
	defer srv.Close()

	s := NewRTDB(RTDBConfig{DatabaseURL: srv.URL, Secret: "wrong"})
	err := s.PutLatest(context.Background(), testRecord())
	if err == nil {
		t.Fatalf("expected error on 401")
	}
	if !strings.Contains(err.Error(), "Permission denied") {
		t.Fatalf("error should carry the vendor reason, got %v", err)
	}
}
