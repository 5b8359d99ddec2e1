package service

import (
	"context"
	"testing"
	"time"

	"gourmetgo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCategory_FirstBecomesDefault(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.AddCategory(ctx, "Main Menu")
	require.NoError(t, err)
	assert.True(t, first.Default)

	second, err := svc.AddCategory(ctx, "Beverages")
	require.NoError(t, err)
	assert.False(t, second.Default)
}

func TestAddCategory_DuplicateNameCaseInsensitive(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddCategory(ctx, "Main Menu")
	require.NoError(t, err)

	_, err = svc.AddCategory(ctx, "MAIN menu")
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrCodeDuplicateCategory, de.Code)
	assert.Equal(t, "A category with this name already exists.", de.Message)

	count, err := st.Categories().Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpdateCategory_RenameToOwnNameAllowed(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.AddCategory(ctx, "Main Menu")
	require.NoError(t, err)

	created.Name = "MAIN MENU"
	updated, err := svc.UpdateCategory(ctx, *created)
	require.NoError(t, err)
	assert.Equal(t, "MAIN MENU", updated.Name)
}

func TestUpdateCategory_NameCollision(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddCategory(ctx, "Main Menu")
	require.NoError(t, err)
	other, err := svc.AddCategory(ctx, "Beverages")
	require.NoError(t, err)

	other.Name = "main menu"
	_, err = svc.UpdateCategory(ctx, *other)
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "Another category with this name already exists.", de.Message)
}

func TestDeleteCategory_DefaultIsProtected(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	def, err := svc.AddCategory(ctx, "Main Menu")
	require.NoError(t, err)
	_, err = svc.AddCategory(ctx, "Beverages")
	require.NoError(t, err)

	err = svc.DeleteCategory(ctx, def.ID)
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrCodeCannotDeleteDefault, de.Code)
	assert.Equal(t, "Cannot delete the default category.", de.Message)
}

func TestDeleteCategory_LastRemainingIsProtected(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	// A single non-default category, as legacy data might hold.
	only := mustInsertCategory(t, st, model.Category{Name: "Main Menu"})

	err := svc.DeleteCategory(ctx, only.ID)
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrCodeCannotDeleteDefault, de.Code)
}

func TestDeleteCategory_ReassignsAllItemsToDefault(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	def, err := svc.AddCategory(ctx, "Main Menu")
	require.NoError(t, err)
	doomed, err := svc.AddCategory(ctx, "Seasonal")
	require.NoError(t, err)

	var moved []string
	for _, name := range []string{"Soup", "Stew", "Roast"} {
		item := mustInsertItem(t, st, model.MenuItem{Name: name, CategoryID: doomed.ID})
		moved = append(moved, item.ID)
	}
	staying := mustInsertItem(t, st, model.MenuItem{Name: "Espresso", CategoryID: def.ID})

	require.NoError(t, svc.DeleteCategory(ctx, doomed.ID))

	gone, err := st.Categories().FindByID(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	for _, id := range moved {
		item, err := st.MenuItems().FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, def.ID, item.CategoryID)
	}
	untouched, err := st.MenuItems().FindByID(ctx, staying.ID)
	require.NoError(t, err)
	assert.Equal(t, def.ID, untouched.CategoryID)
}

func TestDeleteCategory_OldestActsAsDefaultWithoutFlag(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	oldest := mustInsertCategory(t, st, model.Category{Name: "Main Menu", CreatedAt: base})
	newer := mustInsertCategory(t, st, model.Category{Name: "Beverages", CreatedAt: base.Add(time.Minute)})
	item := mustInsertItem(t, st, model.MenuItem{Name: "Espresso", CategoryID: newer.ID})

	require.NoError(t, svc.DeleteCategory(ctx, newer.ID))

	stored, err := st.MenuItems().FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, oldest.ID, stored.CategoryID)

	// The oldest is protected as the acting default.
	mustInsertCategory(t, st, model.Category{Name: "Units", CreatedAt: base.Add(2 * time.Minute)})
	err = svc.DeleteCategory(ctx, oldest.ID)
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrCodeCannotDeleteDefault, de.Code)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddCategory(ctx, "Main Menu")
	require.NoError(t, err)
	_, err = svc.AddCategory(ctx, "Beverages")
	require.NoError(t, err)

	err = svc.DeleteCategory(ctx, "missing")
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrCodeNotFound, de.Code)
}

func TestAddMenuItem_StampsCreationTime(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.AddMenuItem(context.Background(), model.MenuItem{Name: "Tiramisu", Price: 7.99})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestUpdateMenuItem_ReplacesFields(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	item := mustInsertItem(t, st, model.MenuItem{Name: "Tiramisu", Price: 7.99})

	item.Name = "Classic Tiramisu"
	item.Price = 8.49
	updated, err := svc.UpdateMenuItem(ctx, item)
	require.NoError(t, err)
	assert.Equal(t, "Classic Tiramisu", updated.Name)
	assert.Equal(t, 8.49, updated.Price)
}

func TestUpdateMenuItem_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateMenuItem(context.Background(), model.MenuItem{ID: "missing", Name: "Ghost"})
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrCodeNotFound, de.Code)
}

func TestDeleteMenuItem_ReferencedByOrderIsRefused(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	item := mustInsertItem(t, st, model.MenuItem{Name: "Tiramisu", Price: 7.99})
	mustInsertOrder(t, st, model.Order{
		CustomerName: "Alice",
		Items:        []model.CartItem{{Item: item, Quantity: 1}},
		Status:       model.StatusDelivered,
		OrderDate:    time.Now(),
	})

	err := svc.DeleteMenuItem(ctx, item.ID)
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrCodeItemInUse, de.Code)
	assert.Equal(t, `Cannot delete "Tiramisu" because it is part of existing orders.`, de.Message)

	stored, err := st.MenuItems().FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored, "refused deletion must leave the item in place")
}

func TestDeleteMenuItem_Unreferenced(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	item := mustInsertItem(t, st, model.MenuItem{Name: "Tiramisu"})

	require.NoError(t, svc.DeleteMenuItem(ctx, item.ID))

	stored, err := st.MenuItems().FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestDeleteMenuItem_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.DeleteMenuItem(context.Background(), "missing")
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrCodeNotFound, de.Code)
}
