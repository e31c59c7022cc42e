package main

import (
	"encoding/json"

	"storefront-be/internal/order"
	"storefront-be/internal/product"

	"github.com/shopspring/decimal"
)

type seedUser struct {
	FirstName string
	LastName  string
	Email     string
}

var users = []seedUser{
	{"Jean", "Dupont", "jean.dupont@email.com"},
	{"Marie", "Martin", "marie.martin@email.com"},
	{"Pierre", "Dubois", "pierre.dubois@email.com"},
	{"Claire", "Petit", "claire.petit@email.com"},
}

func money(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

var products = []product.CreateProductInput{
	{
		Name:        "Truffe noire du Périgord",
		Description: "Tuber melanosporum, fresh winter truffle",
		Price:       money("79.99"),
		Type:        "fresh",
		Category:    []string{"truffle", "winter"},
	},
	{
		Name:        "Truffe blanche d'Alba",
		Description: "Tuber magnatum, fresh autumn truffle",
		Price:       money("89.50"),
		Type:        "fresh",
		Category:    []string{"truffle", "autumn"},
	},
	{
		Name:        "Huile à la truffe",
		Description: "Olive oil infused with black truffle",
		Price:       money("40.00"),
		Type:        "grocery",
		Category:    []string{"oil"},
	},
	{
		Name:        "Coffret dégustation",
		Description: "Tasting box with truffle salt, honey and oil",
		Price:       money("67.99"),
		Type:        "gift",
		Category:    []string{"gift", "grocery"},
		Status:      "inactive",
	},
}

// seedOrder references products and users by their position in the fixtures.
type seedOrder struct {
	User  int // -1 for a guest order
	Input order.CreateOrderInput
	Items []seedItem
}

type seedItem struct {
	Product   int
	Quantity  int
	UnitPrice string
}

var orders = []seedOrder{
	{
		User: 0,
		Input: order.CreateOrderInput{
			CustomerFirstName: "Jean", CustomerLastName: "Dupont", CustomerEmail: "jean.dupont@email.com",
			Total:       money("159.99"),
			OrderStatus: order.OrderStatusDelivered, PaymentStatus: order.PaymentStatusSucceded,
			Address: &order.Address{Street: "123 Rue de la Paix", City: "Paris", PostalCode: "75001", Country: "France"},
		},
		Items: []seedItem{{Product: 0, Quantity: 2, UnitPrice: "79.99"}},
	},
	{
		User: 1,
		Input: order.CreateOrderInput{
			CustomerFirstName: "Marie", CustomerLastName: "Martin", CustomerEmail: "marie.martin@email.com",
			Total:       money("89.50"),
			OrderStatus: order.OrderStatusShipped, PaymentStatus: order.PaymentStatusSucceded,
			Address: &order.Address{Street: "456 Avenue des Champs", City: "Lyon", PostalCode: "69001", Country: "France"},
		},
		Items: []seedItem{{Product: 1, Quantity: 1, UnitPrice: "89.50"}},
	},
	{
		User: 2,
		Input: order.CreateOrderInput{
			CustomerFirstName: "Pierre", CustomerLastName: "Dubois", CustomerEmail: "pierre.dubois@email.com",
			Total:       money("245.75"),
			OrderStatus: order.OrderStatusProcessing, PaymentStatus: order.PaymentStatusSucceded,
			Address: &order.Address{Street: "789 Boulevard Saint-Michel", City: "Marseille", PostalCode: "13001", Country: "France"},
		},
		Items: []seedItem{
			{Product: 0, Quantity: 1, UnitPrice: "79.99"},
			{Product: 1, Quantity: 2, UnitPrice: "82.88"},
		},
	},
	{
		User: -1,
		Input: order.CreateOrderInput{
			CustomerFirstName: "Sophie", CustomerLastName: "Leroy", CustomerEmail: "sophie.leroy@email.com",
			Total:       money("120.00"),
			OrderStatus: order.OrderStatusPending, PaymentStatus: order.PaymentStatusFailed,
			Address: &order.Address{Street: "321 Rue du Commerce", City: "Toulouse", PostalCode: "31000", Country: "France"},
		},
		Items: []seedItem{{Product: 2, Quantity: 3, UnitPrice: "40.00"}},
	},
	{
		User: -1,
		Input: order.CreateOrderInput{
			CustomerFirstName: "Lucas", CustomerLastName: "Moreau", CustomerEmail: "lucas.moreau@email.com",
			Total:       money("67.99"),
			OrderStatus: order.OrderStatusCancelled, PaymentStatus: order.PaymentStatusRefunded,
			Address: &order.Address{Street: "654 Place de la République", City: "Nice", PostalCode: "06000", Country: "France"},
		},
		Items: []seedItem{{Product: 3, Quantity: 1, UnitPrice: "67.99"}},
	},
}

// build resolves fixture positions to the ids created in this run.
func (o seedOrder) build(userIDs, productIDs []int, names []string) order.CreateOrderInput {
	in := o.Input
	if o.User >= 0 {
		id := userIDs[o.User]
		in.UserID = &id
	}

	in.Items = make([]order.CreateOrderItemInput, len(o.Items))
	for i, it := range o.Items {
		in.Items[i] = order.CreateOrderItemInput{
			ProductID:   json.Number(itoa(productIDs[it.Product])),
			ProductName: names[it.Product],
			Quantity:    json.Number(itoa(it.Quantity)),
			UnitPrice:   money(it.UnitPrice),
		}
	}
	return in
}
