package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"b2bees-backend/internal/domains/analytics/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Insert(ctx context.Context, event *model.Event) error {
	query := `
		INSERT INTO analytics_events (event_type, event_data, user_agent, ip_address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	// nil []byte -> SQL NULL
	var data []byte
	if len(event.EventData) > 0 {
		data = event.EventData
	}

	err := r.pool.QueryRow(ctx, query, event.EventType, data, event.UserAgent, event.IPAddress).
		Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert analytics event: %w", err)
	}
	return nil
}

func (r *postgresRepository) CountByTypes(ctx context.Context, eventTypes []string) (map[string]int64, error) {
	query := `
		SELECT event_type, COUNT(*)
		FROM analytics_events
		WHERE event_type = ANY($1)
		GROUP BY event_type`

	rows, err := r.pool.Query(ctx, query, eventTypes)
	if err != nil {
		return nil, fmt.Errorf("count analytics events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64, len(eventTypes))
	for rows.Next() {
		var (
			eventType string
			count     int64
		)
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("scan analytics count: %w", err)
		}
		counts[eventType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analytics counts: %w", err)
	}

	return counts, nil
}
