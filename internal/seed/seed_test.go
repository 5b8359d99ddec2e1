package seed

import (
	"context"
	"strings"
	"testing"

	"gourmetgo/internal/model"
	"gourmetgo/internal/store/file"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_PopulatesEmptyStore(t *testing.T) {
	st := file.NewMemory(zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, Run(ctx, st, zerolog.Nop()))

	users, err := st.Users().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	for _, u := range users {
		assert.True(t, strings.HasPrefix(u.Password, "$2"), "seeded credentials must be hashed")
	}

	admin, err := st.Users().FindOne(ctx, func(u model.User) bool { return u.Role == model.RoleAdmin })
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "admin@test.com", admin.Email)

	categories, err := st.Categories().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 4)
	defaults := 0
	for _, c := range categories {
		if c.Default {
			defaults++
			assert.Equal(t, "Main Menu", c.Name)
		}
	}
	assert.Equal(t, 1, defaults, "exactly one category is the default")

	itemCount, err := st.MenuItems().Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 9, itemCount)

	orders, err := st.Orders().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.NotEmpty(t, o.Items)
		assert.InDelta(t, model.CartTotal(o.Items), o.Total, 0.001)
	}
}

func TestRun_SkipsPopulatedStore(t *testing.T) {
	st := file.NewMemory(zerolog.Nop())
	ctx := context.Background()

	_, err := st.Users().Insert(ctx, model.User{Name: "Existing", Email: "existing@test.com"})
	require.NoError(t, err)

	require.NoError(t, Run(ctx, st, zerolog.Nop()))

	count, err := st.Users().Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "seeding a populated store must be a no-op")

	itemCount, err := st.MenuItems().Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, itemCount)
}
