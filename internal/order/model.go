package order

import (
	"time"

	"storefront-be/internal/query"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

type PaymentStatus string

// "succeded" is the stored spelling.
const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusSucceded PaymentStatus = "succeded"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

var PaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusSucceded,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

func (a Address) Complete() bool {
	return a.Street != "" && a.City != "" && a.PostalCode != "" && a.Country != ""
}

type Order struct {
	ID                int
	UserID            *int
	CustomerFirstName string
	CustomerLastName  string
	CustomerEmail     string
	Total             decimal.Decimal
	OrderStatus       OrderStatus
	PaymentStatus     PaymentStatus
	Address           Address
	Items             []*OrderItem
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type OrderItem struct {
	ID      int
	OrderID int
	// ProductID is nil once the referenced product has been deleted.
	ProductID   *int
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	// TotalPrice is fixed at creation.
	TotalPrice decimal.Decimal
	Product    *ProductRef
}

// ProductRef is the live product behind an item, loaded for order detail.
type ProductRef struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL *string         `json:"imageUrl"`
}

type Counts struct {
	TotalOrders         int `json:"totalOrders"`
	TotalSuccededOrders int `json:"totalSuccededOrders"`
	TotalFailedOrders   int `json:"totalFailedOrders"`
	TotalRefundedOrders int `json:"totalRefundedOrders"`
}

// Page is one snapshot read of the order listing.
type Page struct {
	Orders  []*Order
	Matched int
	// ByPayment counts every order by payment status, ignoring filters.
	ByPayment query.Tally
}

type StatusChange struct {
	ID            int           `json:"id"`
	OrderStatus   OrderStatus   `json:"orderStatus"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
}

type Deleted struct {
	ID                int    `json:"id"`
	CustomerFirstName string `json:"customerFirstName"`
	CustomerLastName  string `json:"customerLastName"`
}

type DeleteResult struct {
	DeletedCount  int       `json:"deletedCount"`
	DeletedOrders []Deleted `json:"deletedOrders"`
	NotFoundIDs   []int     `json:"notFoundIds"`
}
