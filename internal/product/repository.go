package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/query"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	List(ctx context.Context, plan query.Plan) (*Page, error)
	GetByID(ctx context.Context, id int) (*Product, error)
	DeleteMany(ctx context.Context, ids []int) ([]Deleted, error)
	LinkStripeProduct(ctx context.Context, productID int, stripeProductID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	p.id, p.name, p.description, p.price, p.image_url, p.object_model_data,
	p.status, p.type, p.category, p.stripe_product_id, p.created_at, p.updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.ObjectModelData,
		&p.Status, &p.Type, pq.Array(&p.Category), &p.StripeProductID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Category == nil {
		p.Category = []string{}
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (
			name, description, price, image_url, object_model_data, status, type, category
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at, updated_at
	`,
		p.Name, p.Description, p.Price, p.ImageURL, p.ObjectModelData,
		p.Status, p.Type, pq.Array(p.Category),
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// List reads the page rows, the matched count and the status groups from one
// snapshot.
func (r *repository) List(ctx context.Context, plan query.Plan) (*Page, error) {
	where := plan.Filters.Where()
	suffix, args := where.Paged(plan.Page)

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	page := &Page{Products: []*Product{}}

	err := db.WithSnapshot(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			"SELECT"+productColumns+" FROM products p"+where.SQL()+
				" ORDER BY "+Sorts.OrderBy(plan.Sort)+suffix,
			args...,
		)
		if err != nil {
			return fmt.Errorf("select products: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			p, err := scanProduct(rows)
			if err != nil {
				return fmt.Errorf("scan product: %w", err)
			}
			page.Products = append(page.Products, p)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM products p"+where.SQL(), where.Args()...,
		).Scan(&page.Matched); err != nil {
			return fmt.Errorf("count products: %w", err)
		}

		groups, err := tx.QueryContext(ctx, `
			SELECT status, COUNT(*)
			FROM products
			GROUP BY status
		`)
		if err != nil {
			return fmt.Errorf("group products: %w", err)
		}
		defer groups.Close()

		var counts []query.GroupCount
		for groups.Next() {
			var g query.GroupCount
			if err := groups.Scan(&g.Value, &g.Count); err != nil {
				return err
			}
			counts = append(counts, g)
		}
		page.ByStatus = query.NewTally(counts)
		return groups.Err()
	})
	if err != nil {
		log.Error("failed to list products", zap.Error(err))
		return nil, err
	}

	return page, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		"SELECT"+productColumns+" FROM products p WHERE p.id = $1", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select product: %w", err)
	}
	return p, nil
}

// DeleteMany removes the existing products among ids. Order items keep their
// name snapshot; their product reference is cleared by ON DELETE SET NULL.
func (r *repository) DeleteMany(ctx context.Context, ids []int) ([]Deleted, error) {
	var deleted []Deleted

	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT id, name
			FROM products
			WHERE id = ANY($1)
			ORDER BY id
			FOR UPDATE
		`, pq.Array(ids))
		if err != nil {
			return fmt.Errorf("select products: %w", err)
		}
		defer rows.Close()

		existing := []int64{}
		for rows.Next() {
			var d Deleted
			if err := rows.Scan(&d.ID, &d.Name); err != nil {
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
			`DELETE FROM products WHERE id = ANY($1)`, pq.Array(existing),
		); err != nil {
			return fmt.Errorf("delete products: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

func (r *repository) LinkStripeProduct(ctx context.Context, productID int, stripeProductID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET stripe_product_id = $1, updated_at = NOW()
		WHERE id = $2
	`, stripeProductID, productID)
	if err != nil {
		return fmt.Errorf("link stripe product: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}
