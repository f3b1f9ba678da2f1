package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"b2bees-backend/internal/domains/bee/model"
	infraDB "b2bees-backend/internal/infrastructure/database"
	"b2bees-backend/pkg/database"
)

const slugConstraint = "bees_slug_active_key"

// querier được implement bởi cả *pgxpool.Pool và pgx.Tx
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const beeColumns = `
	id, slug, name, tagline, role,
	short_description, long_description, main_description,
	status, image_url,
	features, integrations, faqs, roi, demo_assets,
	seo_title, seo_description, seo_image,
	created_at, updated_at, deleted_at`

// ============================================
// READ
// ============================================

func (r *postgresRepository) ListActive(ctx context.Context) ([]*model.Bee, error) {
	query := `SELECT ` + beeColumns + `
		FROM bees
		WHERE status = 'active' AND deleted_at IS NULL
		ORDER BY name ASC, id ASC`

	return r.list(ctx, query)
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]*model.Bee, error) {
	query := `SELECT ` + beeColumns + `
		FROM bees
		WHERE deleted_at IS NULL
		ORDER BY name ASC, id ASC`

	return r.list(ctx, query)
}

func (r *postgresRepository) list(ctx context.Context, query string, args ...any) ([]*model.Bee, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bees: %w", err)
	}
	defer rows.Close()

	bees := make([]*model.Bee, 0)
	for rows.Next() {
		bee, err := scanBee(rows)
		if err != nil {
			return nil, err
		}
		bees = append(bees, bee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bees: %w", err)
	}

	if err := loadChildren(ctx, r.pool, bees); err != nil {
		return nil, err
	}
	return bees, nil
}

func (r *postgresRepository) FindPublicBySlug(ctx context.Context, slug string) (*model.Bee, error) {
	query := `SELECT ` + beeColumns + `
		FROM bees
		WHERE slug = $1 AND status <> 'draft' AND deleted_at IS NULL`

	return r.findOne(ctx, query, slug)
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.Bee, error) {
	query := `SELECT ` + beeColumns + `
		FROM bees
		WHERE id = $1 AND deleted_at IS NULL`

	return r.findOne(ctx, query, id)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, args ...any) (*model.Bee, error) {
	bee, err := scanBee(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewBeeNotFound()
		}
		return nil, err
	}

	if err := loadChildren(ctx, r.pool, []*model.Bee{bee}); err != nil {
		return nil, err
	}
	return bee, nil
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bees WHERE slug = $1 AND deleted_at IS NULL)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return exists, nil
}

// ============================================
// WRITE
// ============================================

func (r *postgresRepository) Create(ctx context.Context, bee *model.Bee) (*model.Bee, error) {
	features, integrations, faqs, roi, demo, err := encodeJSONColumns(bee)
	if err != nil {
		return nil, model.NewCreateBeeError(err)
	}

	err = database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO bees (
				slug, name, tagline, role,
				short_description, long_description, main_description,
				status, image_url,
				features, integrations, faqs, roi, demo_assets,
				seo_title, seo_description, seo_image
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			RETURNING id, created_at, updated_at`

		if err := tx.QueryRow(ctx, query,
			bee.Slug, bee.Name, bee.Tagline, bee.Role,
			bee.ShortDescription, bee.LongDescription, bee.MainDescription,
			string(bee.Status), bee.ImageURL,
			features, integrations, faqs, roi, demo,
			bee.SEOTitle, bee.SEODescription, bee.SEOImage,
		).Scan(&bee.ID, &bee.CreatedAt, &bee.UpdatedAt); err != nil {
			return err
		}

		return insertChildren(ctx, tx, bee)
	})
	if err != nil {
		if infraDB.IsUniqueViolation(err, slugConstraint) {
			return nil, model.NewSlugAlreadyExists(bee.Slug)
		}
		return nil, model.NewCreateBeeError(err)
	}

	return bee, nil
}

// Update thay toàn bộ bee: prices/usage pricing bị xóa rồi insert lại
// trong cùng transaction với UPDATE bees (row lock), nên không bao giờ
// có trạng thái nửa cũ nửa mới.
func (r *postgresRepository) Update(ctx context.Context, bee *model.Bee) (*model.Bee, error) {
	features, integrations, faqs, roi, demo, err := encodeJSONColumns(bee)
	if err != nil {
		return nil, model.NewUpdateBeeError(err)
	}

	err = database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			UPDATE bees SET
				slug = $2, name = $3, tagline = $4, role = $5,
				short_description = $6, long_description = $7, main_description = $8,
				status = $9, image_url = $10,
				features = $11, integrations = $12, faqs = $13, roi = $14, demo_assets = $15,
				seo_title = $16, seo_description = $17, seo_image = $18,
				updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
			RETURNING created_at, updated_at`

		if err := tx.QueryRow(ctx, query,
			bee.ID,
			bee.Slug, bee.Name, bee.Tagline, bee.Role,
			bee.ShortDescription, bee.LongDescription, bee.MainDescription,
			string(bee.Status), bee.ImageURL,
			features, integrations, faqs, roi, demo,
			bee.SEOTitle, bee.SEODescription, bee.SEOImage,
		).Scan(&bee.CreatedAt, &bee.UpdatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.NewBeeNotFound()
			}
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM bee_prices WHERE bee_id = $1`, bee.ID); err != nil {
			return fmt.Errorf("delete prices: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM bee_usage_pricing WHERE bee_id = $1`, bee.ID); err != nil {
			return fmt.Errorf("delete usage pricing: %w", err)
		}

		return insertChildren(ctx, tx, bee)
	})
	if err != nil {
		if model.IsBeeNotFound(err) {
			return nil, err
		}
		if infraDB.IsUniqueViolation(err, slugConstraint) {
			return nil, model.NewSlugAlreadyExists(bee.Slug)
		}
		return nil, model.NewUpdateBeeError(err)
	}

	return bee, nil
}

func (r *postgresRepository) SoftDeleteBySlug(ctx context.Context, slug string) error {
	return r.softDelete(ctx, `slug = $1`, slug)
}

func (r *postgresRepository) SoftDeleteByID(ctx context.Context, id int64) error {
	return r.softDelete(ctx, `id = $1`, id)
}

func (r *postgresRepository) softDelete(ctx context.Context, where string, arg any) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE bees SET deleted_at = NOW(), updated_at = NOW() WHERE `+where+` AND deleted_at IS NULL`,
			arg,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return model.NewBeeNotFound()
		}
		return nil
	})
	if err != nil {
		if model.IsBeeNotFound(err) {
			return err
		}
		return model.NewDeleteBeeError(err)
	}
	return nil
}

// ============================================
// HELPERS
// ============================================

func insertChildren(ctx context.Context, tx pgx.Tx, bee *model.Bee) error {
	for _, p := range bee.Prices {
		if _, err := tx.Exec(ctx,
			`INSERT INTO bee_prices (bee_id, currency, amount) VALUES ($1, $2, $3::numeric)`,
			bee.ID, string(p.Currency), p.Amount.String(),
		); err != nil {
			return fmt.Errorf("insert price %s: %w", p.Currency, err)
		}
	}

	for _, u := range bee.UsagePricing {
		if _, err := tx.Exec(ctx,
			`INSERT INTO bee_usage_pricing (bee_id, currency, usage_type, rate_per_unit, unit_description)
			 VALUES ($1, $2, $3, $4::numeric, $5)`,
			bee.ID, string(u.Currency), u.UsageType, u.RatePerUnit.String(), u.UnitDescription,
		); err != nil {
			return fmt.Errorf("insert usage pricing %s: %w", u.Currency, err)
		}
	}

	return nil
}

// loadChildren gắn prices + usage pricing cho danh sách bee bằng 2 query ANY($1)
func loadChildren(ctx context.Context, q querier, bees []*model.Bee) error {
	if len(bees) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(bees))
	byID := make(map[int64]*model.Bee, len(bees))
	for _, b := range bees {
		ids = append(ids, b.ID)
		byID[b.ID] = b
	}

	priceRows, err := q.Query(ctx,
		`SELECT bee_id, currency, amount::text FROM bee_prices WHERE bee_id = ANY($1) ORDER BY bee_id, id`, ids)
	if err != nil {
		return fmt.Errorf("query prices: %w", err)
	}
	defer priceRows.Close()

	for priceRows.Next() {
		var (
			beeID              int64
			currency, rawValue string
		)
		if err := priceRows.Scan(&beeID, &currency, &rawValue); err != nil {
			return fmt.Errorf("scan price: %w", err)
		}
		amount, err := decimal.NewFromString(rawValue)
		if err != nil {
			return fmt.Errorf("parse price %q: %w", rawValue, err)
		}
		if b, ok := byID[beeID]; ok {
			b.Prices = append(b.Prices, model.Price{Currency: model.Currency(currency), Amount: amount})
		}
	}
	if err := priceRows.Err(); err != nil {
		return fmt.Errorf("iterate prices: %w", err)
	}

	usageRows, err := q.Query(ctx,
		`SELECT bee_id, currency, usage_type, rate_per_unit::text, unit_description
		 FROM bee_usage_pricing WHERE bee_id = ANY($1) ORDER BY bee_id, id`, ids)
	if err != nil {
		return fmt.Errorf("query usage pricing: %w", err)
	}
	defer usageRows.Close()

	for usageRows.Next() {
		var (
			beeID                                  int64
			currency, usageType, rawRate, unitDesc string
		)
		if err := usageRows.Scan(&beeID, &currency, &usageType, &rawRate, &unitDesc); err != nil {
			return fmt.Errorf("scan usage pricing: %w", err)
		}
		rate, err := decimal.NewFromString(rawRate)
		if err != nil {
			return fmt.Errorf("parse usage rate %q: %w", rawRate, err)
		}
		if b, ok := byID[beeID]; ok {
			b.UsagePricing = append(b.UsagePricing, model.UsagePricing{
				Currency:        model.Currency(currency),
				UsageType:       usageType,
				RatePerUnit:     rate,
				UnitDescription: unitDesc,
			})
		}
	}
	return usageRows.Err()
}

func scanBee(row pgx.Row) (*model.Bee, error) {
	var (
		bee                                     model.Bee
		status                                  string
		features, integrations, faqs, roi, demo []byte
	)

	if err := row.Scan(
		&bee.ID, &bee.Slug, &bee.Name, &bee.Tagline, &bee.Role,
		&bee.ShortDescription, &bee.LongDescription, &bee.MainDescription,
		&status, &bee.ImageURL,
		&features, &integrations, &faqs, &roi, &demo,
		&bee.SEOTitle, &bee.SEODescription, &bee.SEOImage,
		&bee.CreatedAt, &bee.UpdatedAt, &bee.DeletedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan bee: %w", err)
	}
	bee.Status = model.Status(status)

	if err := decodeJSONColumn(features, &bee.Features); err != nil {
		return nil, fmt.Errorf("decode features: %w", err)
	}
	if err := decodeJSONColumn(integrations, &bee.Integrations); err != nil {
		return nil, fmt.Errorf("decode integrations: %w", err)
	}
	if err := decodeJSONColumn(faqs, &bee.FAQs); err != nil {
		return nil, fmt.Errorf("decode faqs: %w", err)
	}
	if len(roi) > 0 {
		bee.ROI = &model.ROIModel{}
		if err := json.Unmarshal(roi, bee.ROI); err != nil {
			return nil, fmt.Errorf("decode roi: %w", err)
		}
	}
	if len(demo) > 0 {
		bee.DemoAssets = &model.DemoAssets{}
		if err := json.Unmarshal(demo, bee.DemoAssets); err != nil {
			return nil, fmt.Errorf("decode demo_assets: %w", err)
		}
	}

	return &bee, nil
}

func decodeJSONColumn(raw []byte, dest any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

// encodeJSONColumns: list nil thành "[]", roi/demo nil thành SQL NULL
func encodeJSONColumns(bee *model.Bee) (features, integrations, faqs, roi, demo []byte, err error) {
	if features, err = json.Marshal(orEmpty(bee.Features)); err != nil {
		return
	}
	if integrations, err = json.Marshal(orEmpty(bee.Integrations)); err != nil {
		return
	}
	if bee.FAQs == nil {
		faqs = []byte("[]")
	} else if faqs, err = json.Marshal(bee.FAQs); err != nil {
		return
	}
	if bee.ROI != nil {
		if roi, err = json.Marshal(bee.ROI); err != nil {
			return
		}
	}
	if bee.DemoAssets != nil {
		if demo, err = json.Marshal(bee.DemoAssets); err != nil {
			return
		}
	}
	return
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
