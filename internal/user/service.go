package user

import (
	"context"
	"fmt"
	"strings"

	"storefront-be/internal/apperr"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/query"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// OrderReader loads a user's orders for the detail view.
type OrderReader interface {
	ListByUser(ctx context.Context, userID int) ([]*order.Order, error)
}

type ListResult struct {
	Users      []*User
	Matched    int
	Counts     Counts
	Applied    query.Applied
	Pagination query.Pagination
}

type Service interface {
	GetUsers(ctx context.Context, req query.ListRequest) (*ListResult, error)
	GetUserByID(ctx context.Context, id int) (*Detail, error)
	DeleteUsers(ctx context.Context, ids []int) (*DeleteResult, error)
}

type service struct {
	repo        Repository
	orders      OrderReader
	concurrency int
}

// NewService builds the user service. concurrency bounds the per-user
// statistics lookups running at once.
func NewService(repo Repository, orders OrderReader, concurrency int) Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &service{repo: repo, orders: orders, concurrency: concurrency}
}

func (s *service) GetUsers(ctx context.Context, req query.ListRequest) (*ListResult, error) {
	plan := query.NewPlan(req, Filters, Sorts)
	derived, status := parseDerivedFilter(req)
	if derived.active() {
		plan.Strategy = query.ComputeThenSort
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetUsers"),
		zap.Stringer("strategy", plan.Strategy),
		zap.String("sort", plan.Sort.Field),
	)
	log.Debug("start get users")

	// Derived values are only known after statistics, so the compute plan
	// reads every matched user and windows in memory.
	fetch := plan
	if plan.Strategy == query.ComputeThenSort {
		fetch.Page = query.Page{Number: 1}
	}

	users, matched, err := s.repo.List(ctx, fetch)
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	if err := s.attachStats(ctx, users); err != nil {
		log.Error("failed to compute user statistics", zap.Error(err))
		return nil, err
	}

	if plan.Strategy == query.ComputeThenSort {
		users = derived.apply(users)
		if plan.Sort.Derived {
			query.SortStable(users, plan.Sort.Direction, compareBy(plan.Sort.Field))
		}
		matched = len(users)
		users = query.Paginate(users, plan.Page)
	}

	counts, err := s.repo.Summary(ctx)
	if err != nil {
		log.Error("failed to summarize users", zap.Error(err))
		return nil, err
	}

	return &ListResult{
		Users:      users,
		Matched:    matched,
		Counts:     counts,
		Applied:    query.NewApplied(req, plan.Sort, status),
		Pagination: query.NewPagination(plan.Page, matched),
	}, nil
}

// attachStats runs one order lookup per user, at most s.concurrency at a
// time, and waits for all of them.
func (s *service) attachStats(ctx context.Context, users []*User) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, u := range users {
		g.Go(func() error {
			totals, err := s.repo.OrderTotals(gctx, u.ID)
			if err != nil {
				return fmt.Errorf("order totals of user %d: %w", u.ID, err)
			}
			u.Summary = Summarize(totals)
			return nil
		})
	}

	return g.Wait()
}

func (s *service) GetUserByID(ctx context.Context, id int) (*Detail, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}

	totals := make([]OrderTotal, len(orders))
	for i, o := range orders {
		totals[i] = OrderTotal{Total: o.Total, CreatedAt: o.CreatedAt}
	}

	return &Detail{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Orders:    order.ToViews(orders),
		Summary:   Summarize(totals),
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}, nil
}

func (s *service) DeleteUsers(ctx context.Context, ids []int) (*DeleteResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteUsers"),
		zap.Ints("ids", ids),
	)

	if len(ids) == 0 {
		return nil, apperr.Validation("userIds is required and must be a non-empty array")
	}

	deleted, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		log.Error("failed to delete users", zap.Error(err))
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
		DeletedCount: len(deleted),
		DeletedUsers: deleted,
		NotFoundIDs:  utils.Missing(ids, found),
	}
	log.Info("users deleted", zap.Int("deleted", res.DeletedCount))
	return res, nil
}

func (r DeleteResult) Message() string {
	msg := fmt.Sprintf("%d user(s) deleted successfully", r.DeletedCount)
	if len(r.NotFoundIDs) == 0 {
		return msg
	}

	missing := make([]string, len(r.NotFoundIDs))
	for i, id := range r.NotFoundIDs {
		missing[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("%s. %d user(s) not found: %s", msg, len(r.NotFoundIDs), strings.Join(missing, ", "))
}
