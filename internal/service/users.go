package service

import (
	"context"
	"fmt"
	"strings"

	"gourmetgo/internal/model"
)

func emailMatches(email string) func(model.User) bool {
	return func(u model.User) bool {
		return strings.EqualFold(u.Email, email)
	}
}

// LoginUser authenticates by case-insensitive email and password. A missing
// account and a wrong password both yield the same invalid-credentials
// failure.
func (s *cateringService) LoginUser(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.store.Users().FindOne(ctx, emailMatches(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrInvalidCredentials
	}

	ok, legacy := checkPassword(user.Password, password)
	if !ok {
		return nil, model.ErrInvalidCredentials
	}
	if legacy {
		// Successful login against a legacy plain-text credential; upgrade
		// it in place.
		if hash, err := hashPassword(password); err == nil {
			if _, err := s.store.Users().Update(ctx, user.ID, func(u *model.User) {
				u.Password = hash
			}); err != nil {
				s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to upgrade legacy credential")
			}
		}
	}

	sanitized := user.Sanitized()
	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return &sanitized, nil
}

// GetUserByID refreshes a session identity.
func (s *cateringService) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.NewDomainError(model.ErrCodeNotFound, "User session not found.")
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// ResetPassword overwrites the credential for the account with the given
// email. It succeeds whether or not such an account exists, so callers
// cannot probe for registered addresses.
func (s *cateringService) ResetPassword(ctx context.Context, email, newPassword string) error {
	user, err := s.store.Users().FindOne(ctx, emailMatches(email))
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	_, err = s.store.Users().Update(ctx, user.ID, func(u *model.User) {
		u.Password = hash
	})
	return err
}

// AddUser registers a new account. The email must be unique across all users
// regardless of case.
func (s *cateringService) AddUser(ctx context.Context, user model.User) (*model.User, error) {
	existing, err := s.store.Users().FindOne(ctx, emailMatches(user.Email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, model.ErrDuplicateEmail
	}

	hash, err := hashPassword(user.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hash
	user.CreatedAt = s.now()

	created, err := s.store.Users().Insert(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user added")

	sanitized := created.Sanitized()
	return &sanitized, nil
}

// UpdateUser replaces the mutable fields of a user. Email uniqueness is
// re-validated against every other account.
func (s *cateringService) UpdateUser(ctx context.Context, user model.User) (*model.User, error) {
	taken, err := s.store.Users().FindOne(ctx, func(u model.User) bool {
		return u.ID != user.ID && strings.EqualFold(u.Email, user.Email)
	})
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, model.ErrDuplicateEmail
	}

	var hash string
	if user.Password != "" {
		if hash, err = hashPassword(user.Password); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.Users().Update(ctx, user.ID, func(u *model.User) {
		u.Name = user.Name
		u.Email = user.Email
		u.Role = user.Role
		u.BusinessName = user.BusinessName
		u.BusinessDescription = user.BusinessDescription
		u.Phone = user.Phone
		u.Favorites = user.Favorites
		u.Cart = user.Cart
		if hash != "" {
			u.Password = hash
		}
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, model.NewDomainError(model.ErrCodeNotFound, "User not found.")
	}

	sanitized := updated.Sanitized()
	return &sanitized, nil
}

// DeleteUser removes an account, guarding referential integrity: customers
// with orders cannot be deleted, and a departing caterer's menu items are
// reassigned to the fallback caterer first. The returned message reports any
// reassignment.
func (s *cateringService) DeleteUser(ctx context.Context, userID string) (string, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", model.NewDomainError(model.ErrCodeNotFound, "User not found.")
	}

	if user.Role == model.RoleCustomer {
		orderCount, err := s.store.Orders().Count(ctx, func(o model.Order) bool {
			return o.UserID == userID
		})
		if err != nil {
			return "", err
		}
		if orderCount > 0 {
			return "", model.NewDomainError(model.ErrCodeHasExistingOrders,
				fmt.Sprintf("Cannot delete customer %q. They have existing order(s).", user.Name))
		}
	}

	message := fmt.Sprintf("User %q deleted successfully.", user.Name)
	if user.Role == model.RoleCaterer {
		reassigned, err := s.reassignMenuItems(ctx, userID)
		if err != nil {
			return "", err
		}
		if reassigned > 0 {
			message += fmt.Sprintf("\n%d menu item(s) were reassigned.", reassigned)
		}
	}

	if _, err := s.store.Users().Delete(ctx, userID); err != nil {
		return "", err
	}
	s.logger.Info().Str("user_id", userID).Str("role", string(user.Role)).Msg("user deleted")
	return message, nil
}

// reassignMenuItems moves every menu item owned by the given caterer to the
// fallback caterer and returns how many moved.
func (s *cateringService) reassignMenuItems(ctx context.Context, catererID string) (int, error) {
	fallback, err := s.fallbackCaterer(ctx, catererID)
	if err != nil {
		return 0, err
	}
	if fallback == nil {
		return 0, nil
	}

	items, err := s.store.MenuItems().FindAll(ctx)
	if err != nil {
		return 0, err
	}
	reassigned := 0
	for _, item := range items {
		if item.CatererID != catererID {
			continue
		}
		if _, err := s.store.MenuItems().Update(ctx, item.ID, func(m *model.MenuItem) {
			m.CatererID = fallback.ID
		}); err != nil {
			return reassigned, err
		}
		reassigned++
	}
	return reassigned, nil
}

// fallbackCaterer picks the account that inherits orphaned menu items: the
// first-registered admin, or failing that the oldest remaining account.
func (s *cateringService) fallbackCaterer(ctx context.Context, excludeID string) (*model.User, error) {
	users, err := s.store.Users().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var admin, oldest *model.User
	for i := range users {
		u := &users[i]
		if u.ID == excludeID {
			continue
		}
		if u.Role == model.RoleAdmin && (admin == nil || u.CreatedAt.Before(admin.CreatedAt)) {
			admin = u
		}
		if oldest == nil || u.CreatedAt.Before(oldest.CreatedAt) {
			oldest = u
		}
	}
	if admin != nil {
		return admin, nil
	}
	return oldest, nil
}

// UpdateCart overwrites the user's persisted cart snapshot.
func (s *cateringService) UpdateCart(ctx context.Context, userID string, cart []model.CartItem) error {
	updated, err := s.store.Users().Update(ctx, userID, func(u *model.User) {
		u.Cart = cart
	})
	if err != nil {
		return err
	}
	if updated == nil {
		return model.NewDomainError(model.ErrCodeNotFound, "User not found.")
	}
	return nil
}

// UpdateFavorites overwrites the user's persisted favourites.
func (s *cateringService) UpdateFavorites(ctx context.Context, userID string, favorites []string) error {
	updated, err := s.store.Users().Update(ctx, userID, func(u *model.User) {
		u.Favorites = favorites
	})
	if err != nil {
		return err
	}
	if updated == nil {
		return model.NewDomainError(model.ErrCodeNotFound, "User not found.")
	}
	return nil
}
