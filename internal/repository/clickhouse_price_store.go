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
)

// ClickHousePriceStore implements PriceStore over agripulse.mandi_prices.
// ReplacingMergeTree on (crop, day) makes repeated writes of the same day
// idempotent, so re-persisting overlapping API batches is safe.
type ClickHousePriceStore struct {
	db    *sql.DB
	table string
}

func NewClickHousePriceStore(ch *pkgch.Client, table string) repository.PriceStore {
	if table == "" {
		table = "agripulse.mandi_prices"
	}
	return &ClickHousePriceStore{db: ch.DB(), table: table}
}

func (s *ClickHousePriceStore) StorePrices(ctx context.Context, crop string, points []models.PricePoint) error {
	if len(points) == 0 {
		return nil
	}
	values := make([]string, 0, len(points))
	args := make([]interface{}, 0, len(points)*3)
	for _, pt := range points {
		day, err := time.Parse("2006-01-02", pt.Date)
		if err != nil {
			continue
		}
		values = append(values, "(?, ?, ?)")
		args = append(args, crop, day, pt.Price)
	}
	if len(values) == 0 {
		return nil
	}
	q := fmt.Sprintf("INSERT INTO %s (crop, day, modal_price) VALUES %s", s.table, strings.Join(values, ","))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("store prices: %w", err)
	}
	return nil
}

func (s *ClickHousePriceStore) DailyPrices(ctx context.Context, crop string, n int) ([]models.PricePoint, error) {
	q := fmt.Sprintf(`
        SELECT day, modal_price
        FROM %s FINAL
        WHERE crop = ?
        ORDER BY day DESC
        LIMIT ?
    `, s.table)
	rows, err := s.db.QueryContext(ctx, q, crop, n)
	if err != nil {
		return nil, fmt.Errorf("daily prices: %w", err)
	}
	defer rows.Close()

	tmp := make([]models.PricePoint, 0, n)
	for rows.Next() {
		var day time.Time
		var price float64
		if err := rows.Scan(&day, &price); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		tmp = append(tmp, models.PricePoint{Date: day.Format("2006-01-02"), Price: price})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	// reverse to ASC
	for i, j := 0, len(tmp)-1; i < j; i, j = i+1, j-1 {
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}
	return tmp, nil
}
