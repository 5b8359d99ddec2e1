package dispatch

import (
	"encoding/json"
	"fmt"

	"gourmetgo/internal/model"
)

// Decode maps a wire action name and its JSON payload onto a Command. An
// unrecognised action is a domain error naming the action.
func Decode(action string, payload json.RawMessage) (Command, error) {
	var cmd Command
	switch action {
	case "fetchAllData":
		cmd = &FetchAllData{}
	case "loginUser":
		cmd = &LoginUser{}
	case "getUserById":
		cmd = &GetUserByID{}
	case "resetPassword":
		cmd = &ResetPassword{}
	case "addUser":
		cmd = &AddUser{}
	case "updateUser":
		cmd = &UpdateUser{}
	case "deleteUser":
		cmd = &DeleteUser{}
	case "updateCart":
		cmd = &UpdateCart{}
	case "updateFavorites":
		cmd = &UpdateFavorites{}
	case "addMenuItem":
		cmd = &AddMenuItem{}
	case "updateMenuItem":
		cmd = &UpdateMenuItem{}
	case "deleteMenuItem":
		cmd = &DeleteMenuItem{}
	case "addCategory":
		cmd = &AddCategory{}
	case "updateCategory":
		cmd = &UpdateCategory{}
	case "deleteCategory":
		cmd = &DeleteCategory{}
	case "placeOrder":
		cmd = &PlaceOrder{}
	case "updateOrderStatus":
		cmd = &UpdateOrderStatus{}
	case "deleteOrder":
		cmd = &DeleteOrder{}
	case "generateMealPlan":
		cmd = &GenerateMealPlan{}
	default:
		return nil, model.NewDomainError(model.ErrCodeInvalidAction,
			fmt.Sprintf("Invalid action: %s", action))
	}

	if len(payload) > 0 {
		if err := json.Unmarshal(payload, cmd); err != nil {
			return nil, model.NewDomainError(model.ErrCodeInvalidAction,
				fmt.Sprintf("Invalid payload for action %s.", action))
		}
	}
	return cmd, nil
}
