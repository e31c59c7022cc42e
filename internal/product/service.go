package product

import (
	"context"
	"fmt"
	"strings"

	"storefront-be/internal/apperr"
	"storefront-be/internal/logger"
	"storefront-be/internal/payment"
	"storefront-be/internal/query"
	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Mirror schedules a product for creation at the payment provider.
type Mirror interface {
	Enqueue(t payment.Task) bool
}

type CreateProductInput struct {
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	Price           decimal.NullDecimal `json:"price"`
	ImageURL        *string             `json:"imageUrl"`
	ObjectModelData *string             `json:"objectModelData"`
	Type            string              `json:"type"`
	Category        []string            `json:"category"`
	Status          string              `json:"status"`
}

type ListResult struct {
	Products   []*Product
	Matched    int
	Counts     Counts
	Applied    query.Applied
	Pagination query.Pagination
}

type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*CreateResult, error)
	GetProducts(ctx context.Context, req query.ListRequest) (*ListResult, error)
	GetProductByID(ctx context.Context, id int) (*Product, error)
	DeleteProducts(ctx context.Context, ids []int) (*DeleteResult, error)
}

type service struct {
	repo   Repository
	mirror Mirror
}

// NewService builds the product service. A nil mirror disables mirroring.
func NewService(repo Repository, mirror Mirror) Service {
	return &service{repo: repo, mirror: mirror}
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*CreateResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
	)

	p, err := buildProduct(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	res := &CreateResult{ID: p.ID, StripeIntegration: IntegrationSkipped}

	if s.mirror != nil && s.mirror.Enqueue(payment.Task{
		ProductID: p.ID,
		Payload: payment.ProductPayload{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price.InexactFloat64(),
			Images:      utils.PtrString(p.ImageURL),
		},
	}) {
		res.StripeIntegration = IntegrationPending
	}

	log.Info("product created",
		zap.Int("product_id", p.ID),
		zap.String("stripe_integration", res.StripeIntegration),
	)
	return res, nil
}

func buildProduct(in CreateProductInput) (*Product, error) {
	category := make([]string, 0, len(in.Category))
	for _, c := range in.Category {
		if c = strings.TrimSpace(c); c != "" {
			category = append(category, c)
		}
	}

	if in.Name == "" || in.Description == "" || !in.Price.Valid || in.Price.Decimal.IsZero() ||
		in.Type == "" || len(category) == 0 {
		return nil, apperr.Validation("name, description, price, type and category are required")
	}

	if in.Price.Decimal.IsNegative() {
		return nil, apperr.Validation("price must be positive")
	}

	status := in.Status
	switch status {
	case "":
		status = StatusActive
	case StatusActive, StatusInactive:
	default:
		return nil, apperr.Validation(fmt.Sprintf(
			"invalid status. Allowed values: %s, %s", StatusActive, StatusInactive,
		))
	}

	return &Product{
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price.Decimal,
		ImageURL:        in.ImageURL,
		ObjectModelData: in.ObjectModelData,
		Status:          status,
		Type:            in.Type,
		Category:        category,
	}, nil
}

func (s *service) GetProducts(ctx context.Context, req query.ListRequest) (*ListResult, error) {
	plan := query.NewPlan(req, Filters, Sorts)

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetProducts"),
		zap.String("status", plan.Filters.Status),
	)
	log.Debug("start get products")

	page, err := s.repo.List(ctx, plan)
	if err != nil {
		log.Error("failed to get products", zap.Error(err))
		return nil, err
	}

	var status any
	if plan.Filters.Status != "" {
		status = plan.Filters.Status
	}

	return &ListResult{
		Products: page.Products,
		Matched:  page.Matched,
		Counts: Counts{
			TotalProducts:         page.ByStatus.Total(),
			TotalActiveProducts:   page.ByStatus.Of(StatusActive),
			TotalInactiveProducts: page.ByStatus.Of(StatusInactive),
		},
		Applied:    query.NewApplied(req, plan.Sort, status),
		Pagination: query.NewPagination(plan.Page, page.Matched),
	}, nil
}

func (s *service) GetProductByID(ctx context.Context, id int) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) DeleteProducts(ctx context.Context, ids []int) (*DeleteResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteProducts"),
		zap.Ints("ids", ids),
	)

	if len(ids) == 0 {
		return nil, apperr.Validation("productIds is required and must be a non-empty array")
	}

	deleted, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		log.Error("failed to delete products", zap.Error(err))
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
		DeletedCount:    len(deleted),
		DeletedProducts: deleted,
		NotFoundIDs:     utils.Missing(ids, found),
	}
	log.Info("products deleted", zap.Int("deleted", res.DeletedCount))
	return res, nil
}

func (r DeleteResult) Message() string {
	msg := fmt.Sprintf("%d product(s) deleted successfully", r.DeletedCount)
	if len(r.NotFoundIDs) == 0 {
		return msg
	}

	missing := make([]string, len(r.NotFoundIDs))
	for i, id := range r.NotFoundIDs {
		missing[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("%s. %d product(s) not found: %s", msg, len(r.NotFoundIDs), strings.Join(missing, ", "))
}
