// Package seed loads the demo dataset into an empty store: three accounts,
// four categories, nine menu items, and two historical orders.
package seed

import (
	"context"
	"fmt"
	"time"

	"gourmetgo/internal/model"
	"gourmetgo/internal/store"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// demoPassword is the shared credential for every demo account.
const demoPassword = "password"

// Run populates the store if it holds no users yet. Running against a
// non-empty store is a no-op.
func Run(ctx context.Context, st store.Store, logger zerolog.Logger) error {
	existing, err := st.Users().Count(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to inspect store: %w", err)
	}
	if existing > 0 {
		logger.Info().Int("users", existing).Msg("store already populated, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	now := time.Now()

	admin, err := st.Users().Insert(ctx, model.User{
		Name:         "Admin User",
		Email:        "admin@test.com",
		Password:     string(hash),
		Role:         model.RoleAdmin,
		BusinessName: "GourmetGo Central Kitchen",
		CreatedAt:    now,
	})
	if err != nil {
		return err
	}
	customer, err := st.Users().Insert(ctx, model.User{
		Name:      "Customer User",
		Email:     "customer@test.com",
		Password:  string(hash),
		Role:      model.RoleCustomer,
		CreatedAt: now.Add(time.Second),
	})
	if err != nil {
		return err
	}
	caterer, err := st.Users().Insert(ctx, model.User{
		Name:                "Luigi's Pasta",
		Email:               "caterer@test.com",
		Password:            string(hash),
		Role:                model.RoleCaterer,
		BusinessName:        "Luigi's Pasta House",
		BusinessDescription: "Authentic Italian catering.",
		Phone:               "123-456-7890",
		CreatedAt:           now.Add(2 * time.Second),
	})
	if err != nil {
		return err
	}

	categoryNames := []string{"Main Menu", "Unit", "Package", "Beverages"}
	categories := make(map[string]string, len(categoryNames))
	for i, name := range categoryNames {
		cat, err := st.Categories().Insert(ctx, model.Category{
			Name:      name,
			Default:   i == 0,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			return err
		}
		categories[name] = cat.ID
	}

	items := []model.MenuItem{
		{Name: "Spaghetti Carbonara", Description: "Pasta with eggs, cheese, pancetta, and black pepper.", Price: 15.99, ImageURL: "https://picsum.photos/seed/carbonara/400/300", CategoryID: categories["Main Menu"], CatererID: admin.ID},
		{Name: "Margherita Pizza", Description: "Classic pizza with San Marzano tomatoes, mozzarella cheese, fresh basil, salt, and extra-virgin olive oil.", Price: 14.50, ImageURL: "https://picsum.photos/seed/pizza/400/300", CategoryID: categories["Main Menu"], CatererID: admin.ID},
		{Name: "Bruschetta", Description: "Grilled bread topped with tomatoes, garlic, basil, and olive oil.", Price: 8.99, ImageURL: "https://picsum.photos/seed/bruschetta/400/300", CategoryID: categories["Unit"], CatererID: admin.ID},
		{Name: "Caprese Salad", Description: "Fresh mozzarella, tomatoes, and sweet basil, seasoned with salt and olive oil.", Price: 10.50, ImageURL: "https://picsum.photos/seed/salad/400/300", CategoryID: categories["Unit"], CatererID: admin.ID},
		{Name: "Tiramisu", Description: "Coffee-flavoured Italian dessert.", Price: 7.99, ImageURL: "https://picsum.photos/seed/tiramisu/400/300", CategoryID: categories["Unit"], CatererID: caterer.ID},
		{Name: "Panna Cotta", Description: "Italian dessert of sweetened cream thickened with gelatin.", Price: 6.50, ImageURL: "https://picsum.photos/seed/pannacotta/400/300", CategoryID: categories["Unit"], CatererID: caterer.ID},
		{Name: "Family Feast Package", Description: "A complete meal for four. Includes one large pizza, a family-size spaghetti, four bruschettas, and a pitcher of lemonade.", Price: 49.99, ImageURL: "https://picsum.photos/seed/feast/400/300", CategoryID: categories["Package"], CatererID: admin.ID},
		{Name: "Mineral Water", Description: "Still or sparkling mineral water.", Price: 2.50, ImageURL: "https://picsum.photos/seed/water/400/300", CategoryID: categories["Beverages"], CatererID: admin.ID},
		{Name: "Espresso", Description: "Concentrated coffee beverage brewed by forcing a small amount of nearly boiling water under pressure.", Price: 3.00, ImageURL: "https://picsum.photos/seed/espresso/400/300", CategoryID: categories["Beverages"], CatererID: caterer.ID},
	}
	inserted := make(map[string]model.MenuItem, len(items))
	for _, item := range items {
		item.CreatedAt = now
		stored, err := st.MenuItems().Insert(ctx, item)
		if err != nil {
			return err
		}
		inserted[stored.Name] = stored
	}

	orders := []model.Order{
		{
			UserID:       customer.ID,
			CustomerName: customer.Name,
			Items: []model.CartItem{
				{Item: inserted["Spaghetti Carbonara"], Quantity: 1},
				{Item: inserted["Margherita Pizza"], Quantity: 1},
			},
			Total:     30.49,
			Status:    model.StatusDelivered,
			OrderDate: now.Add(-48 * time.Hour),
		},
		{
			UserID:       customer.ID,
			CustomerName: customer.Name,
			Items: []model.CartItem{
				{Item: inserted["Bruschetta"], Quantity: 2},
			},
			Total:     17.98,
			Status:    model.StatusPending,
			OrderDate: now.Add(-24 * time.Hour),
		},
	}
	for _, order := range orders {
		if _, err := st.Orders().Insert(ctx, order); err != nil {
			return err
		}
	}

	logger.Info().
		Int("users", 3).
		Int("categories", len(categoryNames)).
		Int("menu_items", len(items)).
		Int("orders", len(orders)).
		Msg("store seeded")
	return nil
}
