// Package mealplan is the recommendation gateway: given the names of items a
// user already likes, a candidate menu, and a budget, it produces an ordered
// list of recommended item names. The service layer only consumes the list;
// it never inspects how the gateway produced it.
package mealplan

import (
	"context"

	"gourmetgo/internal/model"
)

// Planner produces an ordered list of recommended menu item names whose
// combined price should stay within the budget.
type Planner interface {
	Recommend(ctx context.Context, preferredItemNames []string, menu []model.MenuItem, budget float64) ([]string, error)
}

// PlannerFunc adapts a plain function to the Planner interface.
type PlannerFunc func(ctx context.Context, preferredItemNames []string, menu []model.MenuItem, budget float64) ([]string, error)

func (f PlannerFunc) Recommend(ctx context.Context, preferredItemNames []string, menu []model.MenuItem, budget float64) ([]string, error) {
	return f(ctx, preferredItemNames, menu, budget)
}
