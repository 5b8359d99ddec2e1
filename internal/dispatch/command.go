// Package dispatch is the single entry point the presentation layer talks
// to: a named action plus a payload, answered with the uniform
// success/data/message shape. Actions are modelled as a closed command type
// so routing is an exhaustive switch instead of a string-keyed map.
package dispatch

import (
	"gourmetgo/internal/model"
	"gourmetgo/internal/payment"
)

// Command is the closed set of operations the dispatcher accepts. Action
// doubles as the variant marker and the wire name of the operation.
type Command interface {
	Action() string
}

type FetchAllData struct{}

type LoginUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GetUserByID struct {
	UserID string `json:"userId"`
}

type ResetPassword struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

type AddUser struct {
	UserData model.User `json:"userData"`
}

type UpdateUser struct {
	UpdatedUser model.User `json:"updatedUser"`
}

type DeleteUser struct {
	UserID string `json:"userId"`
}

type UpdateCart struct {
	UserID string           `json:"userId"`
	Cart   []model.CartItem `json:"cart"`
}

type UpdateFavorites struct {
	UserID    string   `json:"userId"`
	Favorites []string `json:"favorites"`
}

type AddMenuItem struct {
	ItemData model.MenuItem `json:"itemData"`
}

type UpdateMenuItem struct {
	UpdatedItem model.MenuItem `json:"updatedItem"`
}

type DeleteMenuItem struct {
	ItemID string `json:"itemId"`
}

type AddCategory struct {
	CategoryName string `json:"categoryName"`
}

type UpdateCategory struct {
	UpdatedCategory model.Category `json:"updatedCategory"`
}

type DeleteCategory struct {
	CategoryID string `json:"categoryId"`
}

type PlaceOrder struct {
	User           model.User       `json:"user"`
	Cart           []model.CartItem `json:"cart"`
	Total          float64          `json:"total"`
	PaymentDetails payment.Details  `json:"paymentDetails"`
}

type UpdateOrderStatus struct {
	OrderID string            `json:"orderId"`
	Status  model.OrderStatus `json:"status"`
}

type DeleteOrder struct {
	OrderID string `json:"orderId"`
}

type GenerateMealPlan struct {
	PreferredItemNames []string         `json:"preferredItemNames"`
	AllMenuItems       []model.MenuItem `json:"allMenuItems"`
	Budget             float64          `json:"budget"`
}

func (FetchAllData) Action() string      { return "fetchAllData" }
func (LoginUser) Action() string         { return "loginUser" }
func (GetUserByID) Action() string       { return "getUserById" }
func (ResetPassword) Action() string     { return "resetPassword" }
func (AddUser) Action() string           { return "addUser" }
func (UpdateUser) Action() string        { return "updateUser" }
func (DeleteUser) Action() string        { return "deleteUser" }
func (UpdateCart) Action() string        { return "updateCart" }
func (UpdateFavorites) Action() string   { return "updateFavorites" }
func (AddMenuItem) Action() string       { return "addMenuItem" }
func (UpdateMenuItem) Action() string    { return "updateMenuItem" }
func (DeleteMenuItem) Action() string    { return "deleteMenuItem" }
func (AddCategory) Action() string       { return "addCategory" }
func (UpdateCategory) Action() string    { return "updateCategory" }
func (DeleteCategory) Action() string    { return "deleteCategory" }
func (PlaceOrder) Action() string        { return "placeOrder" }
func (UpdateOrderStatus) Action() string { return "updateOrderStatus" }
func (DeleteOrder) Action() string       { return "deleteOrder" }
func (GenerateMealPlan) Action() string  { return "generateMealPlan" }
