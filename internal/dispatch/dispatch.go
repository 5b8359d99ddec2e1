package dispatch

import (
	"context"
	"fmt"
	"time"

	"gourmetgo/internal/metrics"
	"gourmetgo/internal/model"
	"gourmetgo/internal/service"

	"github.com/rs/zerolog"
)

// Dispatcher executes commands against the catering service and renders the
// uniform response shape. When a Syncer is configured, cart and favourites
// updates are coalesced through it instead of written immediately.
type Dispatcher struct {
	svc    service.CateringService
	syncer *service.Syncer
	logger zerolog.Logger
}

// New creates a dispatcher. syncer may be nil, in which case cart and
// favourites updates write through synchronously.
func New(svc service.CateringService, syncer *service.Syncer, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		svc:    svc,
		syncer: syncer,
		logger: logger.With().Str("component", "dispatch").Logger(),
	}
}

// Dispatch executes one command. Business-rule failures come back inside the
// response; a non-nil error is a storage or internal fault the transport
// should report generically.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) (model.Response, error) {
	start := time.Now()
	resp, err := d.execute(ctx, cmd)

	outcome := "success"
	switch {
	case err != nil:
		outcome = "error"
		d.logger.Error().Err(err).Str("action", cmd.Action()).Msg("action failed")
	case !resp.Success:
		outcome = "rejected"
	}
	metrics.ObserveAction(cmd.Action(), outcome, time.Since(start))

	return resp, err
}

func (d *Dispatcher) execute(ctx context.Context, cmd Command) (model.Response, error) {
	switch c := cmd.(type) {
	case *FetchAllData:
		snapshot, err := d.svc.FetchAllData(ctx)
		return d.result(snapshot, "", err)

	case *LoginUser:
		user, err := d.svc.LoginUser(ctx, c.Email, c.Password)
		return d.result(user, "Login successful.", err)

	case *GetUserByID:
		user, err := d.svc.GetUserByID(ctx, c.UserID)
		return d.result(user, "", err)

	case *ResetPassword:
		err := d.svc.ResetPassword(ctx, c.Email, c.NewPassword)
		return d.result(nil, "Password reset successful.", err)

	case *AddUser:
		user, err := d.svc.AddUser(ctx, c.UserData)
		return d.result(user, "User added.", err)

	case *UpdateUser:
		user, err := d.svc.UpdateUser(ctx, c.UpdatedUser)
		return d.result(user, "User updated.", err)

	case *DeleteUser:
		message, err := d.svc.DeleteUser(ctx, c.UserID)
		return d.result(nil, message, err)

	case *UpdateCart:
		if d.syncer != nil {
			d.syncer.QueueCart(c.UserID, c.Cart)
			return model.OK(nil, "Cart updated."), nil
		}
		err := d.svc.UpdateCart(ctx, c.UserID, c.Cart)
		return d.result(nil, "Cart updated.", err)

	case *UpdateFavorites:
		if d.syncer != nil {
			d.syncer.QueueFavorites(c.UserID, c.Favorites)
			return model.OK(nil, "Favorites updated."), nil
		}
		err := d.svc.UpdateFavorites(ctx, c.UserID, c.Favorites)
		return d.result(nil, "Favorites updated.", err)

	case *AddMenuItem:
		item, err := d.svc.AddMenuItem(ctx, c.ItemData)
		return d.result(item, "Item added.", err)

	case *UpdateMenuItem:
		item, err := d.svc.UpdateMenuItem(ctx, c.UpdatedItem)
		return d.result(item, "Item updated.", err)

	case *DeleteMenuItem:
		err := d.svc.DeleteMenuItem(ctx, c.ItemID)
		return d.result(nil, "Item deleted.", err)

	case *AddCategory:
		category, err := d.svc.AddCategory(ctx, c.CategoryName)
		return d.result(category, "Category added.", err)

	case *UpdateCategory:
		category, err := d.svc.UpdateCategory(ctx, c.UpdatedCategory)
		return d.result(category, "Category updated.", err)

	case *DeleteCategory:
		err := d.svc.DeleteCategory(ctx, c.CategoryID)
		return d.result(nil, "Category deleted and items reassigned.", err)

	case *PlaceOrder:
		order, err := d.svc.PlaceOrder(ctx, c.User, c.Cart, c.Total, c.PaymentDetails)
		return d.result(order, "Order placed successfully.", err)

	case *UpdateOrderStatus:
		err := d.svc.UpdateOrderStatus(ctx, c.OrderID, c.Status)
		return d.result(nil, "Order status updated successfully.", err)

	case *DeleteOrder:
		err := d.svc.DeleteOrder(ctx, c.OrderID)
		return d.result(nil, "Order deleted.", err)

	case *GenerateMealPlan:
		names := d.svc.GenerateMealPlan(ctx, c.PreferredItemNames, c.AllMenuItems, c.Budget)
		return model.OK(names, ""), nil

	default:
		return model.Fail(fmt.Sprintf("Invalid action: %s", cmd.Action())), nil
	}
}

// result renders a service outcome: domain errors become failed responses,
// faults propagate, anything else succeeds with the given message.
func (d *Dispatcher) result(data any, message string, err error) (model.Response, error) {
	if err != nil {
		if de, ok := model.AsDomainError(err); ok {
			return model.Fail(de.Message), nil
		}
		return model.Response{}, err
	}
	return model.OK(data, message), nil
}
