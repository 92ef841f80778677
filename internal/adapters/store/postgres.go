package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safelabs/sentinel-node/internal/domain"
	"github.com/safelabs/sentinel-node/internal/ports"
)

// Postgres mirrors the latest/history contract onto two SQL tables for
// deployments that sync to a local TimescaleDB instead of a hosted
// realtime database: {table}_latest holds one row per device and is
// upserted each cycle, {table}_history is append-only keyed by
// (device_id, ts).
type Postgres struct {
	db    *sql.DB
	table string
}

func NewPostgres(db *sql.DB, table string) *Postgres {
	return &Postgres{db: db, table: table}
}

func (s *Postgres) Name() string { return "postgres" }

// Open checks the connection. sql.DB pools internally, so this is
// naturally idempotent.
func (s *Postgres) Open(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Postgres) PutLatest(ctx context.Context, rec domain.Record) error {
	q := fmt.Sprintf(`INSERT INTO %s_latest (device_id, ts, temperature, humidity, gas_ppm, motion_detected) VALUES ($1,$2,$3,$4,$5,$6) ON CONFLICT (device_id) DO UPDATE SET ts = EXCLUDED.ts, temperature = EXCLUDED.temperature, humidity = EXCLUDED.humidity, gas_ppm = EXCLUDED.gas_ppm, motion_detected = EXCLUDED.motion_detected`, s.table)
	p := rec.Payload()
	_, err := s.db.ExecContext(ctx, q, p.DeviceID, p.Timestamp, p.Temperature, p.Humidity, p.GasPPM, p.MotionDetected)
	return err
}

func (s *Postgres) PutHistory(ctx context.Context, rec domain.Record) error {
	q := fmt.Sprintf(`INSERT INTO %s_history (device_id, ts, temperature, humidity, gas_ppm, motion_detected) VALUES ($1,$2,$3,$4,$5,$6) ON CONFLICT (device_id, ts) DO NOTHING`, s.table)
	p := rec.Payload()
	_, err := s.db.ExecContext(ctx, q, p.DeviceID, p.Timestamp, p.Temperature, p.Humidity, p.GasPPM, p.MotionDetected)
	return err
}

var _ ports.Store = (*Postgres)(nil)
