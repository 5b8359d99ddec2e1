// Package service implements the catalog and order business logic. Every
// invariant of the platform lives here: uniqueness checks, deletion guards,
// reassignment of orphaned records, and the order lifecycle. Storage is
// reached only through the store port, so every backend shares one set of
// rules.
package service

import (
	"context"
	"sort"
	"time"

	"gourmetgo/internal/mealplan"
	"gourmetgo/internal/model"
	"gourmetgo/internal/payment"
	"gourmetgo/internal/store"

	"github.com/rs/zerolog"
)

// CateringService is the single operation surface consumed by the dispatch
// layer. Business-rule failures come back as *model.DomainError; anything
// else is a storage or gateway fault.
type CateringService interface {
	FetchAllData(ctx context.Context) (*model.Snapshot, error)

	LoginUser(ctx context.Context, email, password string) (*model.User, error)
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
	AddUser(ctx context.Context, user model.User) (*model.User, error)
	UpdateUser(ctx context.Context, user model.User) (*model.User, error)
	DeleteUser(ctx context.Context, userID string) (string, error)
	UpdateCart(ctx context.Context, userID string, cart []model.CartItem) error
	UpdateFavorites(ctx context.Context, userID string, favorites []string) error

	AddMenuItem(ctx context.Context, item model.MenuItem) (*model.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item model.MenuItem) (*model.MenuItem, error)
	DeleteMenuItem(ctx context.Context, itemID string) error
	AddCategory(ctx context.Context, name string) (*model.Category, error)
	UpdateCategory(ctx context.Context, category model.Category) (*model.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error

	PlaceOrder(ctx context.Context, user model.User, cart []model.CartItem, total float64, details payment.Details) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	DeleteOrder(ctx context.Context, orderID string) error

	GenerateMealPlan(ctx context.Context, preferredItemNames []string, menu []model.MenuItem, budget float64) []string
}

// cateringService implements CateringService.
type cateringService struct {
	store   store.Store
	gateway payment.Gateway
	planner mealplan.Planner
	logger  zerolog.Logger
	now     func() time.Time
}

// New creates the catering service.
func New(st store.Store, gateway payment.Gateway, planner mealplan.Planner, logger zerolog.Logger) CateringService {
	return &cateringService{
		store:   st,
		gateway: gateway,
		planner: planner,
		logger:  logger.With().Str("service", "catering").Logger(),
		now:     time.Now,
	}
}

// FetchAllData returns the whole platform state: users without passwords,
// categories, menu items, and orders newest first.
func (s *cateringService) FetchAllData(ctx context.Context) (*model.Snapshot, error) {
	users, err := s.store.Users().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = users[i].Sanitized()
	}

	categories, err := s.store.Categories().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	menuItems, err := s.store.MenuItems().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.store.Orders().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})

	return &model.Snapshot{
		Users:      users,
		Categories: categories,
		MenuItems:  menuItems,
		Orders:     orders,
	}, nil
}

// GenerateMealPlan delegates to the recommendation gateway. Gateway failures
// are swallowed: the caller always receives a list, possibly empty.
func (s *cateringService) GenerateMealPlan(ctx context.Context, preferredItemNames []string, menu []model.MenuItem, budget float64) []string {
	names, err := s.planner.Recommend(ctx, preferredItemNames, menu, budget)
	if err != nil {
		s.logger.Warn().Err(err).Float64("budget", budget).Msg("meal plan recommendation failed")
		return []string{}
	}
	if names == nil {
		return []string{}
	}
	return names
}
