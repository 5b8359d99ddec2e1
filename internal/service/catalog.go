package service

import (
	"context"
	"fmt"
	"strings"

	"gourmetgo/internal/model"
)

// AddMenuItem inserts a new catalogue item. Category and caterer references
// are soft; reassignment keeps them live when their targets go away.
func (s *cateringService) AddMenuItem(ctx context.Context, item model.MenuItem) (*model.MenuItem, error) {
	item.CreatedAt = s.now()
	created, err := s.store.MenuItems().Insert(ctx, item)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("item_id", created.ID).Str("name", created.Name).Msg("menu item added")
	return &created, nil
}

// UpdateMenuItem replaces the mutable fields of a catalogue item.
func (s *cateringService) UpdateMenuItem(ctx context.Context, item model.MenuItem) (*model.MenuItem, error) {
	updated, err := s.store.MenuItems().Update(ctx, item.ID, func(m *model.MenuItem) {
		m.Name = item.Name
		m.Description = item.Description
		m.Price = item.Price
		m.ImageURL = item.ImageURL
		m.CategoryID = item.CategoryID
		m.CatererID = item.CatererID
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, model.NewDomainError(model.ErrCodeNotFound, "Item not found.")
	}
	return updated, nil
}

// DeleteMenuItem removes an item unless an existing order still references
// it; order history embeds item snapshots by id and must stay intact.
func (s *cateringService) DeleteMenuItem(ctx context.Context, itemID string) error {
	inOrder, err := s.store.Orders().Count(ctx, func(o model.Order) bool {
		for _, ci := range o.Items {
			if ci.Item.ID == itemID {
				return true
			}
		}
		return false
	})
	if err != nil {
		return err
	}
	if inOrder > 0 {
		name := "the item"
		if item, err := s.store.MenuItems().FindByID(ctx, itemID); err == nil && item != nil {
			name = fmt.Sprintf("%q", item.Name)
		}
		return model.NewDomainError(model.ErrCodeItemInUse,
			fmt.Sprintf("Cannot delete %s because it is part of existing orders.", name))
	}

	deleted, err := s.store.MenuItems().Delete(ctx, itemID)
	if err != nil {
		return err
	}
	if !deleted {
		return model.NewDomainError(model.ErrCodeNotFound, "Item not found.")
	}
	s.logger.Info().Str("item_id", itemID).Msg("menu item deleted")
	return nil
}

// AddCategory creates a category with a case-insensitively unique name. The
// first category ever created becomes the default.
func (s *cateringService) AddCategory(ctx context.Context, name string) (*model.Category, error) {
	existing, err := s.store.Categories().FindOne(ctx, func(c model.Category) bool {
		return strings.EqualFold(c.Name, name)
	})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, model.ErrDuplicateCategory
	}

	total, err := s.store.Categories().Count(ctx, nil)
	if err != nil {
		return nil, err
	}

	created, err := s.store.Categories().Insert(ctx, model.Category{
		Name:      name,
		Default:   total == 0,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("category_id", created.ID).Str("name", created.Name).Msg("category added")
	return &created, nil
}

// UpdateCategory renames a category. The new name must not collide with any
// other category; matching the record's own name is allowed.
func (s *cateringService) UpdateCategory(ctx context.Context, category model.Category) (*model.Category, error) {
	taken, err := s.store.Categories().FindOne(ctx, func(c model.Category) bool {
		return c.ID != category.ID && strings.EqualFold(c.Name, category.Name)
	})
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, model.ErrCategoryNameTaken
	}

	updated, err := s.store.Categories().Update(ctx, category.ID, func(c *model.Category) {
		c.Name = category.Name
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, model.NewDomainError(model.ErrCodeNotFound, "Category not found.")
	}
	return updated, nil
}

// DeleteCategory removes a category after reassigning its menu items to the
// default category. The default category and the last remaining category are
// protected.
func (s *cateringService) DeleteCategory(ctx context.Context, categoryID string) error {
	total, err := s.store.Categories().Count(ctx, nil)
	if err != nil {
		return err
	}
	if total <= 1 {
		return model.ErrDefaultCategory
	}

	fallback, err := s.defaultCategory(ctx)
	if err != nil {
		return err
	}
	if fallback == nil || fallback.ID == categoryID {
		return model.ErrDefaultCategory
	}

	target, err := s.store.Categories().FindByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if target == nil {
		return model.NewDomainError(model.ErrCodeNotFound, "Category not found.")
	}

	items, err := s.store.MenuItems().FindAll(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.CategoryID != categoryID {
			continue
		}
		if _, err := s.store.MenuItems().Update(ctx, item.ID, func(m *model.MenuItem) {
			m.CategoryID = fallback.ID
		}); err != nil {
			return err
		}
	}

	if _, err := s.store.Categories().Delete(ctx, categoryID); err != nil {
		return err
	}
	s.logger.Info().Str("category_id", categoryID).Str("fallback_id", fallback.ID).Msg("category deleted")
	return nil
}

// defaultCategory resolves the category that absorbs orphaned items: the one
// flagged Default, or the oldest created when no flag is set (data migrated
// from before the flag existed).
func (s *cateringService) defaultCategory(ctx context.Context) (*model.Category, error) {
	flagged, err := s.store.Categories().FindOne(ctx, func(c model.Category) bool {
		return c.Default
	})
	if err != nil || flagged != nil {
		return flagged, err
	}

	categories, err := s.store.Categories().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var oldest *model.Category
	for i := range categories {
		if oldest == nil || categories[i].CreatedAt.Before(oldest.CreatedAt) {
			oldest = &categories[i]
		}
	}
	return oldest, nil
}
