package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-be/internal/query"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "first_name", "last_name", "email", "created_at", "updated_at"}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("NameSearchPaged", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		req := query.ListRequest{
			Filter:    map[string]any{"name": "ann"},
			SortBy:    "name",
			SortOrder: "ASC",
			Page:      1,
			Limit:     5,
		}
		plan := query.NewPlan(req, Filters, Sorts)

		now := time.Now()
		mock.ExpectBegin()
		mock.ExpectQuery(`FROM users u WHERE \(u.first_name ILIKE \$1 OR u.last_name ILIKE \$1\) ORDER BY u.first_name ASC, u.id ASC LIMIT \$2 OFFSET \$3`).
			WithArgs("%ann%", 5, 0).
			WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(1, "Anna", "Smith", "anna@example.com", now, now))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users u WHERE`).
			WithArgs("%ann%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectCommit()

		users, matched, err := repo.List(ctx, plan)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Anna", users[0].FirstName)
		assert.Equal(t, 1, matched)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DerivedSortFetchesInIDOrder", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		plan := query.NewPlan(query.ListRequest{SortBy: "totalSpent", Page: 1}, Filters, Sorts)

		mock.ExpectBegin()
		mock.ExpectQuery(`FROM users u ORDER BY u.id ASC`).
			WillReturnRows(sqlmock.NewRows(userRowColumns))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users u`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectCommit()

		users, _, err := repo.List(ctx, plan)
		require.NoError(t, err)
		assert.Empty(t, users)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`FROM users u WHERE u.id = \$1`).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err = repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepository_OrderTotals(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT total, created_at FROM orders WHERE user_id = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"total", "created_at"}).
			AddRow("10.00", now).
			AddRow("5.50", now))

	totals, err := repo.OrderTotals(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, totals, 2)
	assert.Equal(t, "15.5", Summarize(totals).TotalSpent.String())
}

func TestRepository_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`FROM users u LEFT JOIN \( SELECT user_id, COUNT\(\*\) AS orders`).
			WillReturnRows(sqlmock.NewRows([]string{"count", "with_orders", "spent"}).AddRow(5, 3, "683.23"))

		c, err := repo.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, c.TotalUsers)
		assert.Equal(t, 5, c.TotalActiveUsers)
		assert.Equal(t, 3, c.TotalUsersWithOrders)
		assert.Equal(t, 2, c.TotalUsersWithoutOrders)
		assert.Equal(t, "683.23", c.TotalSpent.String())
	})

	t.Run("Error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`FROM users u`).WillReturnError(errors.New("timeout"))

		_, err = repo.Summary(ctx)
		assert.ErrorContains(t, err, "summarize users")
	})
}

func TestRepository_DeleteMany(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, first_name, last_name, email FROM users WHERE id = ANY\(\$1\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email"}).
			AddRow(2, "Bob", "Lee", "bob@example.com"))
	mock.ExpectExec(`DELETE FROM users WHERE id = ANY\(\$1\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.DeleteMany(context.Background(), []int{2, 8})
	require.NoError(t, err)
	assert.Equal(t, []Deleted{{ID: 2, FirstName: "Bob", LastName: "Lee", Email: "bob@example.com"}}, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
