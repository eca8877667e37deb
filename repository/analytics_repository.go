// repository/analytics_repository.go
package repository

import (
	"context"

	"brewpair/entity"

	"github.com/jmoiron/sqlx"
)

// AnalyticsRepository holds the read-side SQL of the dashboard and order history.
type AnalyticsRepository struct {
	DB *sqlx.DB
}

func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

type kindCount struct {
	EventType string `db:"event_type"`
	Total     int64  `db:"total"`
}

// CountByKind returns a count for every event kind, zero included.
func (r *AnalyticsRepository) CountByKind(ctx context.Context, shopID string) (map[entity.EventKind]int64, error) {
	q := `SELECT event_type, COUNT(*) AS total FROM analytics_events`
	args := []any{}
	if shopID != "" {
		q += ` WHERE shop_id = ?`
		args = append(args, shopID)
	}
	q += ` GROUP BY event_type`

	var rows []kindCount
	if err := r.DB.SelectContext(ctx, &rows, r.DB.Rebind(q), args...); err != nil {
		return nil, err
	}

	out := make(map[entity.EventKind]int64, len(entity.EventKinds))
	for _, k := range entity.EventKinds {
		out[k] = 0
	}
	for _, row := range rows {
		if k, err := entity.ParseEventKind(row.EventType); err == nil {
			out[k] = row.Total
		}
	}
	return out, nil
}

func (r *AnalyticsRepository) UniqueSessions(ctx context.Context, shopID string) (int64, error) {
	q := `SELECT COUNT(DISTINCT session_id) FROM analytics_events`
	args := []any{}
	if shopID != "" {
		q += ` WHERE shop_id = ?`
		args = append(args, shopID)
	}
	var n int64
	err := r.DB.GetContext(ctx, &n, r.DB.Rebind(q), args...)
	return n, err
}

// Ping is used by the diagnostics endpoint.
func (r *AnalyticsRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}
