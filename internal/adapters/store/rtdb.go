package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/safelabs/sentinel-node/internal/domain"
	"github.com/safelabs/sentinel-node/internal/ports"
)

const defaultRTDBTimeout = 10 * time.Second

// RTDBConfig points the node at a Firebase-style realtime database.
type RTDBConfig struct {
	// DatabaseURL is the database root, e.g.
	// https://safelabs-node.firebaseio.com
	DatabaseURL string
	// Secret is the legacy database token passed as the auth query
	// parameter on every request.
	Secret  string
	Timeout time.Duration
}

// RTDB writes records to a realtime database over its REST surface.
// PUT on {path}.json overwrites, which gives the latest slot its
// overwrite semantics and the history path its one-entry-per-timestamp
// semantics for free.
type RTDB struct {
	cfg    RTDBConfig
	client *http.Client

	mu   sync.Mutex
	open bool
}

func NewRTDB(cfg RTDBConfig) *RTDB {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRTDBTimeout
	}
	cfg.DatabaseURL = strings.TrimRight(cfg.DatabaseURL, "/")
	return &RTDB{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *RTDB) Name() string { return "rtdb" }

// Open verifies the credentials with a shallow read of the database
// root. Idempotent: once the session is established further calls
// return immediately.
func (s *RTDB) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.open {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	probe := s.endpoint("/", url.Values{"shallow": {"true"}})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probe, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("rtdb session probe: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("rtdb session probe: %s", remoteReason(resp))
	}

	s.mu.Lock()
	s.open = true
	s.mu.Unlock()
	return nil
}

func (s *RTDB) PutLatest(ctx context.Context, rec domain.Record) error {
	return s.put(ctx, LatestPath(rec.DeviceID), rec.Payload())
}

func (s *RTDB) PutHistory(ctx context.Context, rec domain.Record) error {
	return s.put(ctx, HistoryPath(rec.DeviceID, rec.Timestamp), rec.Payload())
}

func (s *RTDB) put(ctx context.Context, path string, payload domain.Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.endpoint(path, nil), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("rtdb put %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("rtdb put %s: %s", path, remoteReason(resp))
	}
	return nil
}

// endpoint builds {root}{path}.json with the auth token attached.
func (s *RTDB) endpoint(path string, extra url.Values) string {
	q := url.Values{}
	if s.cfg.Secret != "" {
		q.Set("auth", s.cfg.Secret)
	}
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	p := strings.TrimRight(path, "/")
	if p == "" {
		p = "/"
	}
	u := s.cfg.DatabaseURL + p + ".json"
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// remoteReason extracts the vendor-supplied error string so dispatch
// outcomes can carry it.
func remoteReason(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error != "" {
		return fmt.Sprintf("%s: %s", resp.Status, parsed.Error)
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" {
		return fmt.Sprintf("%s: %s", resp.Status, msg)
	}
	return resp.Status
}

var _ ports.Store = (*RTDB)(nil)
