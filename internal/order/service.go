package order

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"storefront-be/internal/apperr"
	"storefront-be/internal/logger"
	"storefront-be/internal/query"
	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CreateOrderInput struct {
	CustomerFirstName string                 `json:"customerFirstName"`
	CustomerLastName  string                 `json:"customerLastName"`
	CustomerEmail     string                 `json:"customerEmail"`
	Items             []CreateOrderItemInput `json:"items"`
	Total             decimal.NullDecimal    `json:"total"`
	Address           *Address               `json:"address"`
	OrderStatus       OrderStatus            `json:"orderStatus"`
	PaymentStatus     PaymentStatus          `json:"paymentStatus"`
	UserID            *int                   `json:"userId"`
}

type CreateOrderItemInput struct {
	ProductID   json.Number         `json:"productId"`
	ProductName string              `json:"productName"`
	Quantity    json.Number         `json:"quantity"`
	UnitPrice   decimal.NullDecimal `json:"unitPrice"`
}

type UpdateStatusInput struct {
	OrderStatus   OrderStatus   `json:"orderStatus"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
}

type ListResult struct {
	Orders     []*Order
	Matched    int
	Counts     Counts
	Applied    query.Applied
	Pagination query.Pagination
}

type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error)
	GetOrders(ctx context.Context, req query.ListRequest) (*ListResult, error)
	GetOrderByID(ctx context.Context, id int) (*Order, error)
	DeleteOrders(ctx context.Context, ids []int) (*DeleteResult, error)
	UpdateOrderStatus(ctx context.Context, id int, input UpdateStatusInput) (*StatusChange, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
	)

	o, err := buildOrder(input)
	if err != nil {
		log.Warn("create order rejected", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	log.Info("order created", zap.Int("order_id", o.ID), zap.Int("items", len(o.Items)))
	return o, nil
}

func buildOrder(in CreateOrderInput) (*Order, error) {
	if in.CustomerFirstName == "" || in.CustomerLastName == "" || in.CustomerEmail == "" ||
		len(in.Items) == 0 || !in.Total.Valid || in.Total.Decimal.IsZero() || in.Address == nil {
		return nil, apperr.Validation(
			"customerFirstName, customerLastName, customerEmail, items, total and address are required",
		)
	}

	if !in.Address.Complete() {
		return nil, apperr.Validation("complete address required (street, city, postalCode, country)")
	}

	if in.Total.Decimal.IsNegative() {
		return nil, apperr.Validation("total must be positive")
	}

	o := &Order{
		UserID:            in.UserID,
		CustomerFirstName: in.CustomerFirstName,
		CustomerLastName:  in.CustomerLastName,
		CustomerEmail:     in.CustomerEmail,
		Total:             in.Total.Decimal,
		OrderStatus:       OrderStatusPending,
		PaymentStatus:     PaymentStatusPending,
		Address:           *in.Address,
		Items:             make([]*OrderItem, 0, len(in.Items)),
	}

	if in.OrderStatus != "" {
		if err := validateOrderStatus(in.OrderStatus); err != nil {
			return nil, err
		}
		o.OrderStatus = in.OrderStatus
	}
	if in.PaymentStatus != "" {
		if err := validatePaymentStatus(in.PaymentStatus); err != nil {
			return nil, err
		}
		o.PaymentStatus = in.PaymentStatus
	}

	for _, it := range in.Items {
		item, err := buildItem(it)
		if err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}

	return o, nil
}

func buildItem(in CreateOrderItemInput) (*OrderItem, error) {
	if in.ProductID == "" || in.ProductName == "" || in.Quantity == "" || !in.UnitPrice.Valid {
		return nil, apperr.Validation("each item must have productId, productName, quantity and unitPrice")
	}

	productID, err := utils.ParseID(in.ProductID.String())
	if err != nil {
		return nil, apperr.Validation("item productId must be a positive integer")
	}

	qty, err := in.Quantity.Int64()
	if err != nil || qty < 1 {
		return nil, apperr.Validation("item quantity must be a positive integer")
	}

	if in.UnitPrice.Decimal.IsNegative() {
		return nil, apperr.Validation("item unitPrice must not be negative")
	}

	return &OrderItem{
		ProductID:   &productID,
		ProductName: in.ProductName,
		Quantity:    int(qty),
		UnitPrice:   in.UnitPrice.Decimal,
		TotalPrice:  in.UnitPrice.Decimal.Mul(decimal.NewFromInt(qty)),
	}, nil
}

func (s *service) GetOrders(ctx context.Context, req query.ListRequest) (*ListResult, error) {
	plan := query.NewPlan(req, Filters, Sorts)

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetOrders"),
		zap.String("sort", plan.Sort.Field),
		zap.Int("page", plan.Page.Number),
		zap.Int("limit", plan.Page.Limit),
	)
	log.Debug("start get orders")

	page, err := s.repo.List(ctx, plan)
	if err != nil {
		log.Error("failed to get orders", zap.Error(err))
		return nil, err
	}

	var status any
	if plan.Filters.Status != "" {
		status = plan.Filters.Status
	}

	return &ListResult{
		Orders:  page.Orders,
		Matched: page.Matched,
		Counts: Counts{
			TotalOrders:         page.ByPayment.Total(),
			TotalSuccededOrders: page.ByPayment.Of(string(PaymentStatusSucceded)),
			TotalFailedOrders:   page.ByPayment.Of(string(PaymentStatusFailed)),
			TotalRefundedOrders: page.ByPayment.Of(string(PaymentStatusRefunded)),
		},
		Applied:    query.NewApplied(req, plan.Sort, status),
		Pagination: query.NewPagination(plan.Page, page.Matched),
	}, nil
}

func (s *service) GetOrderByID(ctx context.Context, id int) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) DeleteOrders(ctx context.Context, ids []int) (*DeleteResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteOrders"),
		zap.Ints("ids", ids),
	)

	if len(ids) == 0 {
		return nil, apperr.Validation("orderIds is required and must be a non-empty array")
	}

	deleted, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		log.Error("failed to delete orders", zap.Error(err))
		return nil, err
	}
	if len(deleted) == 0 {
		return nil, ErrNoneFound
	}

	found := make([]int, len(deleted))
	for i, d := range deleted {
		found[i] = d.ID
	}

	res := &DeleteResult{
		DeletedCount:  len(deleted),
		DeletedOrders: deleted,
		NotFoundIDs:   utils.Missing(ids, found),
	}

	log.Info("orders deleted", zap.Int("deleted", res.DeletedCount), zap.Ints("not_found", res.NotFoundIDs))
	return res, nil
}

func (s *service) UpdateOrderStatus(ctx context.Context, id int, input UpdateStatusInput) (*StatusChange, error) {
	if input.OrderStatus == "" && input.PaymentStatus == "" {
		return nil, apperr.Validation("at least one of orderStatus or paymentStatus must be provided")
	}
	if input.OrderStatus != "" {
		if err := validateOrderStatus(input.OrderStatus); err != nil {
			return nil, err
		}
	}
	if input.PaymentStatus != "" {
		if err := validatePaymentStatus(input.PaymentStatus); err != nil {
			return nil, err
		}
	}

	change, err := s.repo.UpdateStatus(ctx, id, input.OrderStatus, input.PaymentStatus)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.Int("order_id", change.ID),
		zap.String("order_status", string(change.OrderStatus)),
		zap.String("payment_status", string(change.PaymentStatus)),
	)
	return change, nil
}

func validateOrderStatus(s OrderStatus) error {
	if slices.Contains(OrderStatuses, s) {
		return nil
	}
	return apperr.Validation("invalid orderStatus. Allowed values: " + join(OrderStatuses))
}

func validatePaymentStatus(s PaymentStatus) error {
	if slices.Contains(PaymentStatuses, s) {
		return nil
	}
	return apperr.Validation("invalid paymentStatus. Allowed values: " + join(PaymentStatuses))
}

func join[S ~string](values []S) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// Message summarises the outcome of a bulk delete.
func (r DeleteResult) Message() string {
	msg := fmt.Sprintf("%d order(s) deleted successfully", r.DeletedCount)
	if len(r.NotFoundIDs) == 0 {
		return msg
	}

	missing := make([]string, len(r.NotFoundIDs))
	for i, id := range r.NotFoundIDs {
		missing[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("%s. %d order(s) not found: %s", msg, len(r.NotFoundIDs), strings.Join(missing, ", "))
}
