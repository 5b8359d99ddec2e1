package service

import (
	"context"

	"gourmetgo/internal/model"
	"gourmetgo/internal/payment"
)

// PlaceOrder charges the payment gateway and, on approval, creates a Pending
// order from the cart snapshot. A declined payment leaves no trace. Clearing
// the cart afterwards is the caller's responsibility.
func (s *cateringService) PlaceOrder(ctx context.Context, user model.User, cart []model.CartItem, total float64, details payment.Details) (*model.Order, error) {
	if len(cart) == 0 {
		return nil, model.ErrEmptyCart
	}

	if err := s.gateway.Charge(ctx, details, total); err != nil {
		return nil, err
	}

	order, err := s.store.Orders().Insert(ctx, model.Order{
		UserID:       user.ID,
		CustomerName: user.Name,
		Items:        cart,
		Total:        total,
		Status:       model.StatusPending,
		OrderDate:    s.now(),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("order_id", order.ID).
		Str("user_id", user.ID).
		Float64("total", total).
		Int("items", len(cart)).
		Msg("order placed")
	return &order, nil
}

// UpdateOrderStatus records a status transition. Any known status may follow
// any other; the transition itself goes through Order.ApplyStatus so a
// legality guard has one place to land later.
func (s *cateringService) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	if !status.Valid() {
		return model.NewDomainError(model.ErrCodeInvalidStatus, "Unknown order status.")
	}

	updated, err := s.store.Orders().Update(ctx, orderID, func(o *model.Order) {
		o.ApplyStatus(status)
	})
	if err != nil {
		return err
	}
	if updated == nil {
		return model.NewDomainError(model.ErrCodeNotFound, "Order not found.")
	}
	s.logger.Info().Str("order_id", orderID).Str("status", string(status)).Msg("order status updated")
	return nil
}

// DeleteOrder removes an order that has left the fulfilment pipeline.
// Orders still in flight cannot be deleted.
func (s *cateringService) DeleteOrder(ctx context.Context, orderID string) error {
	order, err := s.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return model.NewDomainError(model.ErrCodeNotFound, "Order not found.")
	}
	if !order.Status.Terminal() {
		return model.ErrOrderNotCompleted
	}

	if _, err := s.store.Orders().Delete(ctx, orderID); err != nil {
		return err
	}
	s.logger.Info().Str("order_id", orderID).Msg("order deleted")
	return nil
}
