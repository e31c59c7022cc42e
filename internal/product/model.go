package product

import (
	"time"

	"storefront-be/internal/query"

	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Product struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	ImageURL        *string         `json:"imageUrl"`
	ObjectModelData *string         `json:"objectModelData"`
	Status          string          `json:"status"`
	Type            string          `json:"type"`
	Category        []string        `json:"category"`
	StripeProductID *string         `json:"stripeProductId"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type Counts struct {
	TotalProducts         int `json:"totalProducts"`
	TotalActiveProducts   int `json:"totalActiveProducts"`
	TotalInactiveProducts int `json:"totalInactiveProducts"`
}

type Page struct {
	Products []*Product
	Matched  int
	// ByStatus counts every product by status, ignoring filters.
	ByStatus query.Tally
}

type Deleted struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type DeleteResult struct {
	DeletedCount    int       `json:"deletedCount"`
	DeletedProducts []Deleted `json:"deletedProducts"`
	NotFoundIDs     []int     `json:"notFoundIds"`
}

// Mirroring states reported by createProduct.
const (
	IntegrationPending = "pending"
	IntegrationSkipped = "skipped"
)

type CreateResult struct {
	ID                int     `json:"id"`
	StripeProductID   *string `json:"stripeProductId"`
	StripeIntegration string  `json:"stripeIntegration"`
}
