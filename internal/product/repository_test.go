package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-be/internal/query"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productRowColumns = []string{
	"id", "name", "description", "price", "image_url", "object_model_data",
	"status", "type", "category", "stripe_product_id", "created_at", "updated_at",
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultActiveWithCategory", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		req := query.ListRequest{
			Filter: map[string]any{"category": []any{"lighting", "desk"}, "maxPrice": "80"},
			SortBy: "price",
			Page:   2,
			Limit:  10,
		}
		plan := query.NewPlan(req, Filters, Sorts)

		now := time.Now()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM products p WHERE LOWER\(p.status\) = LOWER\(\$1\) AND p.price <= \$2 AND p.category && \$3 ORDER BY p.price DESC, p.id DESC LIMIT \$4 OFFSET \$5`).
			WithArgs("active", 80.0, sqlmock.AnyArg(), 10, 10).
			WillReturnRows(sqlmock.NewRows(productRowColumns).
				AddRow(3, "Lamp", "Desk lamp", "49.50", nil, nil, "active", "furniture", "{lighting,desk}", nil, now, now))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products p WHERE`).
			WithArgs("active", 80.0, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
		mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM products GROUP BY status`).
			WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).AddRow("active", 11).AddRow("inactive", 4))
		mock.ExpectCommit()

		page, err := repo.List(ctx, plan)
		require.NoError(t, err)
		require.Len(t, page.Products, 1)
		assert.Equal(t, []string{"lighting", "desk"}, page.Products[0].Category)
		assert.True(t, page.Products[0].Price.Equal(decimal.RequireFromString("49.5")))
		assert.Nil(t, page.Products[0].ImageURL)
		assert.Equal(t, 11, page.Matched)
		assert.Equal(t, 15, page.ByStatus.Total())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CountFails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`FROM products p`).WillReturnRows(sqlmock.NewRows(productRowColumns))
		mock.ExpectQuery(`SELECT COUNT`).WillReturnError(errors.New("canceled"))
		mock.ExpectRollback()

		_, err = repo.List(ctx, query.NewPlan(query.ListRequest{Page: 1}, Filters, Sorts))
		assert.ErrorContains(t, err, "count products")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	p := &Product{
		Name:        "Lamp",
		Description: "Desk lamp",
		Price:       decimal.RequireFromString("49.50"),
		Status:      StatusActive,
		Type:        "furniture",
		Category:    []string{"lighting"},
	}

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs("Lamp", "Desk lamp", sqlmock.AnyArg(), nil, nil, "active", "furniture", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(12, now, now))

	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, 12, p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		now := time.Now()
		mock.ExpectQuery(`FROM products p WHERE p.id = \$1`).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows(productRowColumns).
				AddRow(3, "Lamp", "Desk lamp", "49.50", "https://img", nil, "active", "furniture", "{}", "prod_1", now, now))

		p, err := repo.GetByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "prod_1", *p.StripeProductID)
		assert.Equal(t, []string{}, p.Category)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`FROM products p WHERE p.id = \$1`).
			WithArgs(404).
			WillReturnRows(sqlmock.NewRows(productRowColumns))

		_, err = repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_DeleteMany(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, name FROM products WHERE id = ANY\(\$1\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "Lamp").AddRow(4, "Chair"))
	mock.ExpectExec(`DELETE FROM products WHERE id = ANY\(\$1\)`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	deleted, err := repo.DeleteMany(context.Background(), []int{3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, []Deleted{{ID: 3, Name: "Lamp"}, {ID: 4, Name: "Chair"}}, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LinkStripeProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectExec(`UPDATE products SET stripe_product_id = \$1`).
			WithArgs("prod_1", 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.LinkStripeProduct(ctx, 3, "prod_1"))
	})

	t.Run("Deleted", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectExec(`UPDATE products`).
			WithArgs("prod_1", 3).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.LinkStripeProduct(ctx, 3, "prod_1"), ErrProductNotFound)
	})
}
