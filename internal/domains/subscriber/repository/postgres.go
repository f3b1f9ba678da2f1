package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"b2bees-backend/internal/domains/subscriber/model"
	infraDB "b2bees-backend/internal/infrastructure/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const subscriberColumns = `id, email, is_active, source, bee_id, use_case_slug, created_at, updated_at`

// Upsert dùng một statement: ON CONFLICT chỉ update khi row cũ đang inactive,
// (xmax = 0) phân biệt insert với update
func (r *postgresRepository) Upsert(ctx context.Context, s *model.Subscriber) (*model.SubscribeResult, error) {
	query := `
		INSERT INTO subscribers (email, is_active, source, bee_id, use_case_slug)
		VALUES ($1, TRUE, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET
			is_active     = TRUE,
			source        = EXCLUDED.source,
			bee_id        = COALESCE(EXCLUDED.bee_id, subscribers.bee_id),
			use_case_slug = COALESCE(EXCLUDED.use_case_slug, subscribers.use_case_slug),
			updated_at    = NOW()
		WHERE subscribers.is_active = FALSE
		RETURNING ` + subscriberColumns + `, (xmax = 0) AS inserted`

	var (
		sub      model.Subscriber
		inserted bool
	)
	err := r.pool.QueryRow(ctx, query, s.Email, s.Source, s.BeeID, s.UseCaseSlug).Scan(
		&sub.ID, &sub.Email, &sub.IsActive, &sub.Source, &sub.BeeID, &sub.UseCaseSlug,
		&sub.CreatedAt, &sub.UpdatedAt, &inserted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewAlreadySubscribed(s.Email)
		}
		if infraDB.IsForeignKeyViolation(err) && s.BeeID != nil {
			return nil, model.NewInvalidBee(*s.BeeID)
		}
		return nil, model.NewSubscribeError(err)
	}

	return &model.SubscribeResult{Subscriber: &sub, Created: inserted}, nil
}

func (r *postgresRepository) Deactivate(ctx context.Context, email string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE subscribers SET is_active = FALSE, updated_at = NOW() WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("deactivate subscriber: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewSubscriberNotFound()
	}
	return nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*model.Subscriber, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+subscriberColumns+` FROM subscribers ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query subscribers: %w", err)
	}
	defer rows.Close()

	subscribers := make([]*model.Subscriber, 0)
	for rows.Next() {
		var sub model.Subscriber
		if err := rows.Scan(
			&sub.ID, &sub.Email, &sub.IsActive, &sub.Source, &sub.BeeID, &sub.UseCaseSlug,
			&sub.CreatedAt, &sub.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		subscribers = append(subscribers, &sub)
	}
	return subscribers, rows.Err()
}

func (r *postgresRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM subscribers WHERE is_active = TRUE`,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return count, nil
}
