package user

import (
	"time"

	"storefront-be/internal/order"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        int          `json:"id"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Email     string       `json:"email"`
	Summary   OrderSummary `json:"orderSummary"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// OrderSummary is derived from the user's orders on every read.
type OrderSummary struct {
	TotalOrders   int             `json:"totalOrders"`
	TotalSpent    decimal.Decimal `json:"totalSpent"`
	LastOrderDate *time.Time      `json:"lastOrderDate"`
}

// OrderTotal is the part of an order the statistics need.
type OrderTotal struct {
	Total     decimal.Decimal
	CreatedAt time.Time
}

type Counts struct {
	TotalUsers              int             `json:"totalUsers"`
	TotalActiveUsers        int             `json:"totalActiveUsers"`
	TotalUsersWithOrders    int             `json:"totalUsersWithOrders"`
	TotalUsersWithoutOrders int             `json:"totalUsersWithoutOrders"`
	TotalSpent              decimal.Decimal `json:"totalSpent"`
}

type Detail struct {
	ID        int               `json:"id"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Email     string            `json:"email"`
	Orders    []order.OrderView `json:"orders"`
	Summary   OrderSummary      `json:"orderSummary"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type Deleted struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type DeleteResult struct {
	DeletedCount int       `json:"deletedCount"`
	DeletedUsers []Deleted `json:"deletedUsers"`
	NotFoundIDs  []int     `json:"notFoundIds"`
}
