package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderView struct {
	ID                int             `json:"id"`
	UserID            *int            `json:"userId"`
	CustomerFirstName string          `json:"customerFirstName"`
	CustomerLastName  string          `json:"customerLastName"`
	CustomerEmail     string          `json:"customerEmail"`
	Items             []ItemView      `json:"items"`
	Total             decimal.Decimal `json:"total"`
	OrderStatus       OrderStatus     `json:"orderStatus"`
	PaymentStatus     PaymentStatus   `json:"paymentStatus"`
	Address           Address         `json:"address"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

type ItemView struct {
	ID          int             `json:"id"`
	ProductID   *int            `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Product     *ProductRef     `json:"product,omitempty"`
}

// Created is the body returned by createOrder.
type Created struct {
	ID           int             `json:"id"`
	CustomerName string          `json:"customerName"`
	Total        decimal.Decimal `json:"total"`
	ItemsCount   int             `json:"itemsCount"`
}

func ToView(o *Order) OrderView {
	items := make([]ItemView, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemView{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
			Product:     it.Product,
		})
	}

	return OrderView{
		ID:                o.ID,
		UserID:            o.UserID,
		CustomerFirstName: o.CustomerFirstName,
		CustomerLastName:  o.CustomerLastName,
		CustomerEmail:     o.CustomerEmail,
		Items:             items,
		Total:             o.Total,
		OrderStatus:       o.OrderStatus,
		PaymentStatus:     o.PaymentStatus,
		Address:           o.Address,
		CreatedAt:         o.CreatedAt.UTC(),
		UpdatedAt:         o.UpdatedAt.UTC(),
	}
}

func ToViews(orders []*Order) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToView(o))
	}
	return out
}

func ToCreated(o *Order) Created {
	return Created{
		ID:           o.ID,
		CustomerName: o.CustomerFirstName + " " + o.CustomerLastName,
		Total:        o.Total,
		ItemsCount:   len(o.Items),
	}
}
