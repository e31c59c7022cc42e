package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/query"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	List(ctx context.Context, plan query.Plan) (*Page, error)
	GetByID(ctx context.Context, id int) (*Order, error)
	ListByUser(ctx context.Context, userID int) ([]*Order, error)
	DeleteMany(ctx context.Context, ids []int) ([]Deleted, error)
	UpdateStatus(ctx context.Context, id int, orderStatus OrderStatus, paymentStatus PaymentStatus) (*StatusChange, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

const orderColumns = `
	o.id, o.user_id, o.customer_first_name, o.customer_last_name, o.customer_email,
	o.total, o.order_status, o.payment_status,
	o.street, o.city, o.postal_code, o.country,
	o.created_at, o.updated_at`

func scanOrder(row scanner) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.CustomerFirstName, &o.CustomerLastName, &o.CustomerEmail,
		&o.Total, &o.OrderStatus, &o.PaymentStatus,
		&o.Address.Street, &o.Address.City, &o.Address.PostalCode, &o.Address.Country,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Items = []*OrderItem{}
	return &o, nil
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO orders (
				user_id, customer_first_name, customer_last_name, customer_email,
				total, order_status, payment_status,
				street, city, postal_code, country
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
			RETURNING id, created_at, updated_at
		`,
			o.UserID, o.CustomerFirstName, o.CustomerLastName, o.CustomerEmail,
			o.Total, o.OrderStatus, o.PaymentStatus,
			o.Address.Street, o.Address.City, o.Address.PostalCode, o.Address.Country,
		).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for _, item := range o.Items {
			item.OrderID = o.ID
			err := tx.QueryRowContext(ctx, `
				INSERT INTO order_items (
					order_id, product_id, product_name, quantity, unit_price, total_price
				) VALUES ($1,$2,$3,$4,$5,$6)
				RETURNING id
			`,
				item.OrderID, item.ProductID, item.ProductName,
				item.Quantity, item.UnitPrice, item.TotalPrice,
			).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}

		return nil
	})
}

// List reads the page rows, the matched count, the payment status groups and
// the page items from one snapshot.
func (r *repository) List(ctx context.Context, plan query.Plan) (*Page, error) {
	where := plan.Filters.Where()
	suffix, args := where.Paged(plan.Page)

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.Int("predicates", len(plan.Filters.Predicates)),
	)

	page := &Page{Orders: []*Order{}}

	err := db.WithSnapshot(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			"SELECT"+orderColumns+" FROM orders o"+where.SQL()+
				" ORDER BY "+Sorts.OrderBy(plan.Sort)+suffix,
			args...,
		)
		if err != nil {
			return fmt.Errorf("select orders: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			o, err := scanOrder(rows)
			if err != nil {
				return fmt.Errorf("scan order: %w", err)
			}
			page.Orders = append(page.Orders, o)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM orders o"+where.SQL(), where.Args()...,
		).Scan(&page.Matched); err != nil {
			return fmt.Errorf("count orders: %w", err)
		}

		groups, err := countByPaymentStatus(ctx, tx)
		if err != nil {
			return err
		}
		page.ByPayment = query.NewTally(groups)

		return attachItems(ctx, tx, page.Orders, false)
	})
	if err != nil {
		log.Error("failed to list orders", zap.Error(err))
		return nil, err
	}

	log.Debug("orders listed", zap.Int("rows", len(page.Orders)), zap.Int("matched", page.Matched))
	return page, nil
}

func countByPaymentStatus(ctx context.Context, q queryer) ([]query.GroupCount, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT payment_status, COUNT(*)
		FROM orders
		GROUP BY payment_status
	`)
	if err != nil {
		return nil, fmt.Errorf("group orders: %w", err)
	}
	defer rows.Close()

	var groups []query.GroupCount
	for rows.Next() {
		var g query.GroupCount
		if err := rows.Scan(&g.Value, &g.Count); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

const itemColumns = `
	oi.id, oi.order_id, oi.product_id, oi.product_name,
	oi.quantity, oi.unit_price, oi.total_price`

// attachItems loads the items of orders in one query. withProduct adds the
// live product each item points to.
func attachItems(ctx context.Context, q queryer, orders []*Order, withProduct bool) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[int]*Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, int64(o.ID))
	}

	stmt := "SELECT" + itemColumns + " FROM order_items oi"
	if withProduct {
		stmt = "SELECT" + itemColumns + ", p.name, p.price, p.image_url" +
			" FROM order_items oi LEFT JOIN products p ON p.id = oi.product_id"
	}
	stmt += " WHERE oi.order_id = ANY($1) ORDER BY oi.order_id, oi.id"

	rows, err := q.QueryContext(ctx, stmt, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it       OrderItem
			name     sql.NullString
			price    decimal.NullDecimal
			imageURL sql.NullString
		)
		dest := []any{
			&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.Quantity, &it.UnitPrice, &it.TotalPrice,
		}
		if withProduct {
			dest = append(dest, &name, &price, &imageURL)
		}
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}

		if name.Valid {
			it.Product = &ProductRef{Name: name.String, Price: price.Decimal}
			if imageURL.Valid {
				it.Product.ImageURL = &imageURL.String
			}
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, &it)
		}
	}
	return rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int) (*Order, error) {
	var o *Order

	err := db.WithSnapshot(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		o, err = scanOrder(tx.QueryRowContext(ctx,
			"SELECT"+orderColumns+" FROM orders o WHERE o.id = $1", id,
		))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("select order: %w", err)
		}

		return attachItems(ctx, tx, []*Order{o}, true)
	})
	if err != nil {
		return nil, err
	}

	return o, nil
}

// ListByUser returns the orders of a user, newest first, with their items.
func (r *repository) ListByUser(ctx context.Context, userID int) ([]*Order, error) {
	orders := []*Order{}

	err := db.WithSnapshot(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			"SELECT"+orderColumns+" FROM orders o WHERE o.user_id = $1 ORDER BY o.created_at DESC, o.id DESC",
			userID,
		)
		if err != nil {
			return fmt.Errorf("select user orders: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			o, err := scanOrder(rows)
			if err != nil {
				return fmt.Errorf("scan order: %w", err)
			}
			orders = append(orders, o)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		return attachItems(ctx, tx, orders, true)
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// DeleteMany removes the existing orders among ids and reports which ones
// were removed. Items go with their order through ON DELETE CASCADE.
func (r *repository) DeleteMany(ctx context.Context, ids []int) ([]Deleted, error) {
	var deleted []Deleted

	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT id, customer_first_name, customer_last_name
			FROM orders
			WHERE id = ANY($1)
			ORDER BY id
			FOR UPDATE
		`, pq.Array(ids))
		if err != nil {
			return fmt.Errorf("select orders: %w", err)
		}
		defer rows.Close()

		existing := []int64{}
		for rows.Next() {
			var d Deleted
			if err := rows.Scan(&d.ID, &d.CustomerFirstName, &d.CustomerLastName); err != nil {
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
			`DELETE FROM orders WHERE id = ANY($1)`, pq.Array(existing),
		); err != nil {
			return fmt.Errorf("delete orders: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

// UpdateStatus sets whichever statuses are non-empty.
func (r *repository) UpdateStatus(
	ctx context.Context,
	id int,
	orderStatus OrderStatus,
	paymentStatus PaymentStatus,
) (*StatusChange, error) {
	var c StatusChange
	err := r.db.QueryRowContext(ctx, `
		UPDATE orders
		SET
			order_status = COALESCE($1, order_status),
			payment_status = COALESCE($2, payment_status),
			updated_at = NOW()
		WHERE id = $3
		RETURNING id, order_status, payment_status
	`,
		sql.NullString{String: string(orderStatus), Valid: orderStatus != ""},
		sql.NullString{String: string(paymentStatus), Valid: paymentStatus != ""},
		id,
	).Scan(&c.ID, &c.OrderStatus, &c.PaymentStatus)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	return &c, nil
}
