// Package record persists a log of completed conversions to PostgreSQL.
//
// Persistence is optional: when no database URL is configured, Open
// returns a disabled store whose methods are no-ops. The conversion
// pipeline itself never depends on the database being reachable.
package record

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carefluent/alarmbridge/internal/config"
)

// Entry is one conversion log row.
type Entry struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"requestId,omitempty"`
	ClientIP   string    `json:"clientIp,omitempty"`
	Status     string    `json:"status"`
	AlarmCount int       `json:"alarmCount"`
	FlowCount  int       `json:"flowCount"`
	UnitCount  int       `json:"unitCount"`
	DurationMS int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Store writes and reads conversion log entries.
type Store struct {
	pool *pgxpool.Pool
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS conversion_log (
	id          UUID PRIMARY KEY,
	request_id  TEXT,
	client_ip   TEXT,
	status      TEXT NOT NULL,
	alarm_count INTEGER NOT NULL DEFAULT 0,
	flow_count  INTEGER NOT NULL DEFAULT 0,
	unit_count  INTEGER NOT NULL DEFAULT 0,
	duration_ms BIGINT NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Open connects to PostgreSQL and ensures the log table exists. An
// empty URL yields a disabled store and no error.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	if cfg.URL == "" {
		return &Store{}, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure conversion_log table: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Enabled reports whether the store is backed by a database.
func (s *Store) Enabled() bool {
	return s != nil && s.pool != nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	if s.Enabled() {
		s.pool.Close()
	}
}

// Log inserts a conversion log entry. Disabled stores return the
// entry's generated ID without writing anything.
func (s *Store) Log(ctx context.Context, e Entry) (string, error) {
	id := uuid.New().String()
	if !s.Enabled() {
		return id, nil
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO conversion_log
			(id, request_id, client_ip, status, alarm_count, flow_count, unit_count, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		toPgUUID(id),
		toPgText(e.RequestID),
		toPgText(e.ClientIP),
		e.Status,
		int32(e.AlarmCount),
		int32(e.FlowCount),
		int32(e.UnitCount),
		e.DurationMS,
	)
	if err != nil {
		return "", fmt.Errorf("insert conversion log: %w", err)
	}
	return id, nil
}

// Recent returns the most recent entries, newest first. Disabled
// stores return an empty slice.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if !s.Enabled() {
		return []Entry{}, nil
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, request_id, client_ip, status, alarm_count, flow_count, unit_count, duration_ms, created_at
		FROM conversion_log
		ORDER BY created_at DESC
		LIMIT $1`, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("query conversion log: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			id        pgtype.UUID
			reqID     pgtype.Text
			clientIP  pgtype.Text
			createdAt pgtype.Timestamptz
			e         Entry
			ac, fc    int32
			uc        int32
		)
		if err := rows.Scan(&id, &reqID, &clientIP, &e.Status, &ac, &fc, &uc, &e.DurationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("scan conversion log row: %w", err)
		}
		e.ID = uuidToString(id)
		e.RequestID = reqID.String
		e.ClientIP = clientIP.String
		e.AlarmCount = int(ac)
		e.FlowCount = int(fc)
		e.UnitCount = int(uc)
		e.CreatedAt = createdAt.Time
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func toPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

func toPgUUID(s string) pgtype.UUID {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}
}

func uuidToString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}
