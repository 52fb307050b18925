package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"AgriPulse/internal/domain/models"
	"AgriPulse/internal/domain/repository"
	pkgch "AgriPulse/pkg/clickhouse"
	applogger "AgriPulse/pkg/logger"
)

// ClickHouseReadingStore implements Storage for ClickHouse, persisting the
// soil moisture stream into agripulse.soil_readings.
type ClickHouseReadingStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewClickHouseReadingStore(ch *pkgch.Client, table string) repository.Storage {
	if table == "" {
		table = "agripulse.soil_readings"
	}
	return &ClickHouseReadingStore{db: ch.DB(), table: table}
}

// SetLogger injects a structured logger.
func (s *ClickHouseReadingStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *ClickHouseReadingStore) Init(ctx context.Context) error {
	return nil // Schema init in pkg
}

func (s *ClickHouseReadingStore) Store(ctx context.Context, r *models.SoilReading) error {
	q := fmt.Sprintf("INSERT INTO %s (ts, field, crop, moisture, source) VALUES (?, ?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q,
		time.Unix(r.Timestamp, 0),
		r.Field,
		r.Crop,
		r.Moisture,
		"gateway",
	)
	if err != nil {
		return fmt.Errorf("store reading: %w", err)
	}
	return nil
}

func (s *ClickHouseReadingStore) StoreBatch(ctx context.Context, readings []*models.SoilReading) error {
	if len(readings) == 0 {
		return nil
	}
	// Multi-row VALUES insert, chunked to keep statements bounded.
	const chunkSize = 2000
	for start := 0; start < len(readings); start += chunkSize {
		end := start + chunkSize
		if end > len(readings) {
			end = len(readings)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*5)
		for _, r := range readings[start:end] {
			if r == nil || r.Field == "" || r.Timestamp == 0 {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?)")
			args = append(args,
				time.Unix(r.Timestamp, 0),
				r.Field,
				r.Crop,
				r.Moisture,
				"gateway",
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (ts, field, crop, moisture, source) VALUES %s", s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("store batch: %w", err)
		}
	}
	return nil
}

func (s *ClickHouseReadingStore) Query(ctx context.Context, field string, from, to time.Time, limit int) ([]*models.SoilReading, error) {
	start := time.Now()
	q := fmt.Sprintf("SELECT field, crop, ts, moisture FROM %s WHERE field = ? AND ts >= ? AND ts <= ? ORDER BY ts DESC LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, field, from, to, limit)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse readings query error",
				applogger.String("field", field),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("query readings: %w", err)
	}
	defer rows.Close()

	var readings []*models.SoilReading
	for rows.Next() {
		var r models.SoilReading
		var ts time.Time
		if err := rows.Scan(&r.Field, &r.Crop, &ts, &r.Moisture); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		r.Timestamp = ts.Unix()
		readings = append(readings, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse readings query ok",
			applogger.String("field", field),
			applogger.Int("rows", len(readings)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return readings, rows.Err()
}

func (s *ClickHouseReadingStore) LatestMoisture(ctx context.Context, field string) (float64, error) {
	q := fmt.Sprintf("SELECT moisture FROM %s WHERE field = ? ORDER BY ts DESC LIMIT 1", s.table)
	var moisture float64
	if err := s.db.QueryRowContext(ctx, q, field).Scan(&moisture); err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("no readings for field %s", field)
		}
		return 0, fmt.Errorf("latest moisture: %w", err)
	}
	return moisture, nil
}

func (s *ClickHouseReadingStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseReadingStore) Close() error {
	return nil // Managed by pkg
}
