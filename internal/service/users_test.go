package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"gourmetgo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginUser_Success(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	mustInsertUser(t, st, model.User{Name: "Alice", Email: "alice@test.com", Password: "secret", Role: model.RoleCustomer})

	user, err := svc.LoginUser(ctx, "ALICE@test.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Empty(t, user.Password, "login must never return the credential")
}

func TestLoginUser_WrongPassword(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	mustInsertUser(t, st, model.User{Name: "Alice", Email: "alice@test.com", Password: "secret", Role: model.RoleCustomer})

	_, err := svc.LoginUser(ctx, "alice@test.com", "wrong")
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrCodeInvalidCredentials, de.Code)
}

func TestLoginUser_UnknownEmailSameFailure(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.LoginUser(context.Background(), "nobody@test.com", "secret")
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid credentials.", de.Message)
}

func TestLoginUser_UpgradesLegacyCredential(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	created := mustInsertUser(t, st, model.User{Name: "Alice", Email: "alice@test.com", Password: "secret", Role: model.RoleCustomer})

	_, err := svc.LoginUser(ctx, "alice@test.com", "secret")
	require.NoError(t, err)

	stored, err := st.Users().FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, strings.HasPrefix(stored.Password, "$2"), "legacy credential should be re-hashed after login")

	// The upgraded credential still authenticates.
	_, err = svc.LoginUser(ctx, "alice@test.com", "secret")
	require.NoError(t, err)
}

func TestGetUserByID_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetUserByID(context.Background(), "missing")
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "User session not found.", de.Message)
}

func TestResetPassword_SilentOnUnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.ResetPassword(context.Background(), "nobody@test.com", "newpass")
	require.NoError(t, err, "reset must not reveal whether the address is registered")
}

func TestResetPassword_ReplacesCredential(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	mustInsertUser(t, st, model.User{Name: "Alice", Email: "alice@test.com", Password: "secret", Role: model.RoleCustomer})

	require.NoError(t, svc.ResetPassword(ctx, "alice@test.com", "newpass"))

	_, err := svc.LoginUser(ctx, "alice@test.com", "secret")
	require.Error(t, err)
	_, err = svc.LoginUser(ctx, "alice@test.com", "newpass")
	require.NoError(t, err)
}

func TestAddUser_HashesPasswordAndSanitizes(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.AddUser(ctx, model.User{Name: "Bob", Email: "bob@test.com", Password: "secret", Role: model.RoleCustomer})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.Password)

	stored, err := st.Users().FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.Password, "$2"))
	assert.NotEqual(t, "secret", stored.Password)
}

func TestAddUser_DuplicateEmailCaseInsensitive(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	mustInsertUser(t, st, model.User{Name: "Bob", Email: "bob@test.com", Password: "secret", Role: model.RoleCustomer})

	_, err := svc.AddUser(ctx, model.User{Name: "Bobby", Email: "BOB@Test.Com", Password: "other", Role: model.RoleCustomer})
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrCodeDuplicateEmail, de.Code)
	assert.Equal(t, "An account with this email already exists.", de.Message)

	// The refused registration must not change state.
	count, err := st.Users().Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpdateUser_EmailCollisionWithOtherAccount(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	mustInsertUser(t, st, model.User{Name: "Alice", Email: "alice@test.com", Password: "a", Role: model.RoleCustomer})
	bob := mustInsertUser(t, st, model.User{Name: "Bob", Email: "bob@test.com", Password: "b", Role: model.RoleCustomer})

	bob.Email = "Alice@Test.com"
	_, err := svc.UpdateUser(ctx, bob)
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrCodeDuplicateEmail, de.Code)
}

func TestUpdateUser_KeepingOwnEmailIsAllowed(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	bob := mustInsertUser(t, st, model.User{Name: "Bob", Email: "bob@test.com", Password: "b", Role: model.RoleCustomer})

	bob.Name = "Robert"
	updated, err := svc.UpdateUser(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, "bob@test.com", updated.Email)
}

func TestUpdateUser_EmptyPasswordKeepsStoredHash(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.AddUser(ctx, model.User{Name: "Bob", Email: "bob@test.com", Password: "secret", Role: model.RoleCustomer})
	require.NoError(t, err)
	before, err := st.Users().FindByID(ctx, created.ID)
	require.NoError(t, err)

	_, err = svc.UpdateUser(ctx, model.User{ID: created.ID, Name: "Bob", Email: "bob@test.com", Role: model.RoleCustomer})
	require.NoError(t, err)

	after, err := st.Users().FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Password, after.Password)
}

func TestDeleteUser_CustomerWithOrdersIsRefused(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	alice := mustInsertUser(t, st, model.User{Name: "Alice", Email: "alice@test.com", Password: "a", Role: model.RoleCustomer})
	mustInsertOrder(t, st, model.Order{UserID: alice.ID, CustomerName: alice.Name, Status: model.StatusDelivered, OrderDate: time.Now()})

	_, err := svc.DeleteUser(ctx, alice.ID)
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrCodeHasExistingOrders, de.Code)
	assert.Equal(t, `Cannot delete customer "Alice". They have existing order(s).`, de.Message)

	// Refusal leaves the account in place.
	stored, err := st.Users().FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestDeleteUser_CustomerWithoutOrders(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	alice := mustInsertUser(t, st, model.User{Name: "Alice", Email: "alice@test.com", Password: "a", Role: model.RoleCustomer})

	msg, err := svc.DeleteUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, `User "Alice" deleted successfully.`, msg)

	stored, err := st.Users().FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestDeleteUser_CatererItemsReassignedToFirstAdmin(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	admin := mustInsertUser(t, st, model.User{Name: "Admin", Email: "admin@test.com", Password: "a", Role: model.RoleAdmin, CreatedAt: base})
	laterAdmin := mustInsertUser(t, st, model.User{Name: "Admin Two", Email: "admin2@test.com", Password: "a", Role: model.RoleAdmin, CreatedAt: base.Add(time.Minute)})
	caterer := mustInsertUser(t, st, model.User{Name: "Luigi", Email: "luigi@test.com", Password: "c", Role: model.RoleCaterer, CreatedAt: base.Add(2 * time.Minute)})

	const itemCount = 3
	for i := 0; i < itemCount; i++ {
		mustInsertItem(t, st, model.MenuItem{Name: fmt.Sprintf("Dish %d", i), CatererID: caterer.ID})
	}
	foreign := mustInsertItem(t, st, model.MenuItem{Name: "Other Dish", CatererID: laterAdmin.ID})

	msg, err := svc.DeleteUser(ctx, caterer.ID)
	require.NoError(t, err)
	assert.Equal(t, "User \"Luigi\" deleted successfully.\n3 menu item(s) were reassigned.", msg)

	// Every item the caterer owned now belongs to the first-registered admin.
	items, err := st.MenuItems().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, itemCount+1)
	for _, item := range items {
		if item.ID == foreign.ID {
			assert.Equal(t, laterAdmin.ID, item.CatererID)
			continue
		}
		assert.Equal(t, admin.ID, item.CatererID)
	}
}

func TestDeleteUser_CatererWithoutItemsOmitsReassignmentNote(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	mustInsertUser(t, st, model.User{Name: "Admin", Email: "admin@test.com", Password: "a", Role: model.RoleAdmin})
	caterer := mustInsertUser(t, st, model.User{Name: "Luigi", Email: "luigi@test.com", Password: "c", Role: model.RoleCaterer})

	msg, err := svc.DeleteUser(ctx, caterer.ID)
	require.NoError(t, err)
	assert.Equal(t, `User "Luigi" deleted successfully.`, msg)
}

func TestDeleteUser_FallbackIsOldestAccountWhenNoAdmin(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	oldest := mustInsertUser(t, st, model.User{Name: "Elder", Email: "elder@test.com", Password: "e", Role: model.RoleCustomer, CreatedAt: base})
	caterer := mustInsertUser(t, st, model.User{Name: "Luigi", Email: "luigi@test.com", Password: "c", Role: model.RoleCaterer, CreatedAt: base.Add(time.Minute)})
	item := mustInsertItem(t, st, model.MenuItem{Name: "Dish", CatererID: caterer.ID})

	_, err := svc.DeleteUser(ctx, caterer.ID)
	require.NoError(t, err)

	stored, err := st.MenuItems().FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, oldest.ID, stored.CatererID)
}

func TestDeleteUser_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.DeleteUser(context.Background(), "missing")
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrCodeNotFound, de.Code)
}

func TestUpdateCart_OverwritesSnapshot(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	alice := mustInsertUser(t, st, model.User{Name: "Alice", Email: "alice@test.com", Password: "a", Role: model.RoleCustomer})
	item := mustInsertItem(t, st, model.MenuItem{Name: "Dish", Price: 5})

	cart := []model.CartItem{{Item: item, Quantity: 2}}
	require.NoError(t, svc.UpdateCart(ctx, alice.ID, cart))

	stored, err := st.Users().FindByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, stored.Cart, 1)
	assert.Equal(t, 2, stored.Cart[0].Quantity)

	require.NoError(t, svc.UpdateCart(ctx, alice.ID, nil))
	stored, err = st.Users().FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Cart)
}

func TestUpdateFavorites_UnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.UpdateFavorites(context.Background(), "missing", []string{"item-1"})
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrCodeNotFound, de.Code)
}
