package service

import (
	"context"

	"github.com/b-himadri/bakery-backend-api/model"
)

// legalTransitions is consulted only in strict mode. Terminal states admit
// nothing.
var legalTransitions = map[string][]string{
	model.StatusPending:        {model.StatusConfirmed, model.StatusCancelled},
	model.StatusPendingPayment: {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed:      {model.StatusShipped, model.StatusCancelled},
	model.StatusShipped:        {model.StatusDelivered},
}

// OrderService reads orders and drives the admin status updates. With
// strict=false any enum value may be set from any state, which matches the
// historical behavior; strict=true enforces the transition table.
type OrderService struct {
	stores Stores
	events EventPublisher
	strict bool
}

func NewOrderService(stores Stores, events EventPublisher, strict bool) *OrderService {
	if events == nil {
		events = NopPublisher{}
	}
	return &OrderService{stores: stores, events: events, strict: strict}
}

// ListForUser returns the user's orders, newest first.
func (os *OrderService) ListForUser(ctx context.Context, userID uint) ([]model.Order, error) {
	return os.stores.Orders().ListByUser(ctx, userID)
}

// ListAll returns every order, newest first. Caller must be admin.
func (os *OrderService) ListAll(ctx context.Context) ([]model.Order, error) {
	return os.stores.Orders().ListAll(ctx)
}

// Get returns the order if the caller owns it or is an admin.
func (os *OrderService) Get(ctx context.Context, id, userID uint, isAdmin bool) (*model.Order, error) {
	order, err := os.stores.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil || (!isAdmin && order.UserID != userID) {
		return nil, &NotFoundError{Entity: "order"}
	}
	return order, nil
}

// UpdateStatus sets the order's status. Only values from the status
// enumeration are accepted; in strict mode the transition must also be legal.
func (os *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*model.Order, error) {
	if !model.ValidStatus(status) {
		return nil, &ValidationError{Reason: "invalid status: " + status}
	}

	var order *model.Order
	var previous string
	err := os.stores.Atomic(ctx, func(s Stores) error {
		var err error
		order, err = s.Orders().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return &NotFoundError{Entity: "order"}
		}

		previous = order.Status
		if os.strict && !os.canTransition(previous, status) {
			return &ConflictError{Reason: "illegal status transition: " + previous + " -> " + status}
		}

		if err := s.Orders().UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		order.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	os.events.OrderStatusUpdated(order.ID, previous, status)
	return order, nil
}

func (os *OrderService) canTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
