package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-be/internal/db"
	"storefront-be/internal/query"

	"github.com/lib/pq"
)

type Repository interface {
	// List returns the users of plan's window and the count matching its
	// filters.
	List(ctx context.Context, plan query.Plan) ([]*User, int, error)
	GetByID(ctx context.Context, id int) (*User, error)
	OrderTotals(ctx context.Context, userID int) ([]OrderTotal, error)
	Summary(ctx context.Context) (Counts, error)
	DeleteMany(ctx context.Context, ids []int) ([]Deleted, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = ` u.id, u.first_name, u.last_name, u.email, u.created_at, u.updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) List(ctx context.Context, plan query.Plan) ([]*User, int, error) {
	where := plan.Filters.Where()
	suffix, args := where.Paged(plan.Page)

	users := []*User{}
	var matched int

	err := db.WithSnapshot(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			"SELECT"+userColumns+" FROM users u"+where.SQL()+
				" ORDER BY "+Sorts.OrderBy(plan.Sort)+suffix,
			args...,
		)
		if err != nil {
			return fmt.Errorf("select users: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			u, err := scanUser(rows)
			if err != nil {
				return fmt.Errorf("scan user: %w", err)
			}
			users = append(users, u)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM users u"+where.SQL(), where.Args()...,
		).Scan(&matched); err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return users, matched, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT"+userColumns+" FROM users u WHERE u.id = $1", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

// OrderTotals fetches the totals and dates of one user's orders.
func (r *repository) OrderTotals(ctx context.Context, userID int) ([]OrderTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT total, created_at
		FROM orders
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select order totals: %w", err)
	}
	defer rows.Close()

	var totals []OrderTotal
	for rows.Next() {
		var t OrderTotal
		if err := rows.Scan(&t.Total, &t.CreatedAt); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// Summary aggregates over every user, regardless of listing filters.
func (r *repository) Summary(ctx context.Context) (Counts, error) {
	var c Counts
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE s.orders > 0),
			COALESCE(SUM(s.spent), 0)
		FROM users u
		LEFT JOIN (
			SELECT user_id, COUNT(*) AS orders, SUM(total) AS spent
			FROM orders
			WHERE user_id IS NOT NULL
			GROUP BY user_id
		) s ON s.user_id = u.id
	`).Scan(&c.TotalUsers, &c.TotalUsersWithOrders, &c.TotalSpent)
	if err != nil {
		return Counts{}, fmt.Errorf("summarize users: %w", err)
	}

	// Users carry no activity flag; every user counts as active.
	c.TotalActiveUsers = c.TotalUsers
	c.TotalUsersWithoutOrders = c.TotalUsers - c.TotalUsersWithOrders
	return c, nil
}

// DeleteMany removes the existing users among ids. Their orders stay, with
// user_id cleared by ON DELETE SET NULL.
func (r *repository) DeleteMany(ctx context.Context, ids []int) ([]Deleted, error) {
	var deleted []Deleted

	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT id, first_name, last_name, email
			FROM users
			WHERE id = ANY($1)
			ORDER BY id
			FOR UPDATE
		`, pq.Array(ids))
		if err != nil {
			return fmt.Errorf("select users: %w", err)
		}
		defer rows.Close()

		existing := []int64{}
		for rows.Next() {
			var d Deleted
			if err := rows.Scan(&d.ID, &d.FirstName, &d.LastName, &d.Email); err != nil {
				return err
			}
			deleted = append(deleted, d)
			existing = append(existing, int64(d.ID))
		}
		if err := rows.Err(); err != nil {
			return err
		}

		if len(existing) == 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM users WHERE id = ANY($1)`, pq.Array(existing),
		); err != nil {
			return fmt.Errorf("delete users: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}
