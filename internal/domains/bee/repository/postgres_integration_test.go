//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"b2bees-backend/internal/domains/bee/model"
	infraDB "b2bees-backend/internal/infrastructure/database"
)

func setupRepository(t *testing.T) (Repository, *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("bees_test"),
		postgres.WithUsername("bees"),
		postgres.WithPassword("bees"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	sqlDB, err := infraDB.OpenSQL(dsn)
	require.NoError(t, err)
	defer sqlDB.Close()
	_, err = infraDB.Migrate(ctx, sqlDB)
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return NewPostgresRepository(pool), pool
}

func newBee(slug string, prices map[model.Currency]decimal.Decimal) *model.Bee {
	p := model.BeePayload{
		Slug:            slug,
		Name:            "Bee " + slug,
		Role:            "Assistant",
		MainDescription: "Does things",
		Prices:          prices,
		FAQs:            []model.FAQ{{Question: "Q", Answer: "A"}},
	}
	p.Normalize()
	return p.ToEntity()
}

func TestPostgresRepository_UpdateReplacesPrices(t *testing.T) {
	repo, pool := setupRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newBee("support-bee", map[model.Currency]decimal.Decimal{
		model.CurrencyUSD: decimal.NewFromInt(100),
		model.CurrencyGBP: decimal.NewFromInt(80),
	}))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	update := newBee("support-bee", map[model.Currency]decimal.Decimal{
		model.CurrencyUSD: decimal.NewFromInt(120),
	})
	update.ID = created.ID
	_, err = repo.Update(ctx, update)
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Prices, 1)
	assert.Equal(t, model.CurrencyUSD, got.Prices[0].Currency)
	assert.Equal(t, "120", got.Prices[0].Amount.String())

	// GBP row bị xóa hẳn, không phải set về 0
	var gbpRows int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM bee_prices WHERE bee_id = $1 AND currency = 'GBP'`, created.ID,
	).Scan(&gbpRows))
	assert.Zero(t, gbpRows)
}

func TestPostgresRepository_SlugConflictAndSoftDelete(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, newBee("sales-bee", nil))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBee("sales-bee", nil))
	assert.True(t, model.IsSlugAlreadyExists(err))

	require.NoError(t, repo.SoftDeleteBySlug(ctx, "sales-bee"))
	assert.True(t, model.IsBeeNotFound(repo.SoftDeleteBySlug(ctx, "sales-bee")))

	_, err = repo.FindPublicBySlug(ctx, "sales-bee")
	assert.True(t, model.IsBeeNotFound(err))

	// slug được dùng lại sau khi soft delete
	_, err = repo.Create(ctx, newBee("sales-bee", nil))
	assert.NoError(t, err)
}

func TestPostgresRepository_DraftHiddenFromPublic(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	draft := newBee("draft-bee", nil)
	draft.Status = model.StatusDraft
	created, err := repo.Create(ctx, draft)
	require.NoError(t, err)

	_, err = repo.FindPublicBySlug(ctx, "draft-bee")
	assert.True(t, model.IsBeeNotFound(err))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)
	assert.Equal(t, []model.FAQ{{Question: "Q", Answer: "A"}}, all[0].FAQs)
}

func TestPostgresRepository_UpdateUnknownID(t *testing.T) {
	repo, _ := setupRepository(t)

	bee := newBee("ghost-bee", nil)
	bee.ID = 9999
	_, err := repo.Update(context.Background(), bee)
	assert.True(t, model.IsBeeNotFound(err))
}

func TestPostgresRepository_StoresAmountsExactly(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	bee := newBee("usage-bee", map[model.Currency]decimal.Decimal{
		model.CurrencyUSD: decimal.RequireFromString("9999999999.99"),
		model.CurrencyGBP: decimal.RequireFromString("29.99"),
	})
	bee.UsagePricing = []model.UsagePricing{{
		Currency:        model.CurrencyUSD,
		UsageType:       "per_token",
		RatePerUnit:     decimal.RequireFromString("0.00002"),
		UnitDescription: "per token",
	}}

	created, err := repo.Create(ctx, bee)
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Prices, 2)
	assert.Equal(t, "9999999999.99", got.Prices[0].Amount.String())
	assert.Equal(t, "29.99", got.Prices[1].Amount.String())
	require.Len(t, got.UsagePricing, 1)
	assert.True(t, decimal.RequireFromString("0.00002").Equal(got.UsagePricing[0].RatePerUnit))
}
