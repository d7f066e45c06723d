package service

import (
	"context"
	"fmt"

	"github.com/b-himadri/bakery-backend-api/model"
)

// CheckoutEngine converts a user's cart into an order. The whole sequence
// (stock validation, order insert, stock decrement, cart removal) runs in a
// single transaction, so a checkout either fully succeeds or leaves no trace.
type CheckoutEngine struct {
	stores Stores
	events EventPublisher
}

func NewCheckoutEngine(stores Stores, events EventPublisher) *CheckoutEngine {
	if events == nil {
		events = NopPublisher{}
	}
	return &CheckoutEngine{stores: stores, events: events}
}

// PlaceOrder creates an order from the user's cart, delivered to addressID.
// COD orders start as "pending", online methods as "pending_payment".
func (e *CheckoutEngine) PlaceOrder(ctx context.Context, userID, addressID uint, paymentMethod string) (*model.Order, error) {
	if !model.ValidPaymentMethod(paymentMethod) {
		return nil, &ValidationError{Reason: "invalid payment method: " + paymentMethod}
	}

	var order *model.Order
	err := e.stores.Atomic(ctx, func(s Stores) error {
		cart, err := s.Carts().GetByUser(ctx, userID)
		if err != nil {
			return err
		}
		if cart == nil || len(cart.Items) == 0 {
			return &ValidationError{Reason: "cart is empty, cannot create order"}
		}

		address, err := s.Addresses().GetByID(ctx, addressID, userID)
		if err != nil {
			return err
		}
		if address == nil {
			return &NotFoundError{Entity: "delivery address"}
		}

		// Re-read every product at this instant; cart entries may hold
		// quantities agreed against stale stock.
		items := make(model.OrderItems, 0, len(cart.Items))
		var total float64
		for _, ci := range cart.Items {
			product, err := s.Products().GetByID(ctx, ci.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return &NotFoundError{Entity: fmt.Sprintf("product %d", ci.ProductID)}
			}
			if ci.Quantity > product.Stock {
				return &InsufficientStockError{
					Product:   product.Name,
					Requested: ci.Quantity,
					Available: product.Stock,
				}
			}

			items = append(items, model.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				Quantity:  ci.Quantity,
				ImageURL:  product.ImageURL,
			})
			total += product.Price * float64(ci.Quantity)
		}

		status := model.StatusPendingPayment
		if paymentMethod == model.PaymentCOD {
			status = model.StatusPending
		}

		order = &model.Order{
			UserID:      userID,
			Items:       items,
			TotalAmount: total,
			DeliveryAddress: model.AddressSnapshot{
				AddressLine1: address.AddressLine1,
				AddressLine2: address.AddressLine2,
				City:         address.City,
				State:        address.State,
				PostalCode:   address.PostalCode,
				Country:      address.Country,
				AddressType:  address.AddressType,
			},
			PaymentMethod: paymentMethod,
			Status:        status,
		}
		if err := s.Orders().Insert(ctx, order); err != nil {
			return err
		}

		// Conditional per-row decrement still guards against a concurrent
		// transaction having drained stock; any failure aborts the order.
		for _, item := range items {
			ok, err := s.Products().ConditionalDecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				product, err := s.Products().GetByID(ctx, item.ProductID)
				if err != nil {
					return err
				}
				available := 0
				if product != nil {
					available = product.Stock
				}
				return &InsufficientStockError{
					Product:   item.Name,
					Requested: item.Quantity,
					Available: available,
				}
			}
		}

		return s.Carts().DeleteByUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	e.events.OrderCreated(order)
	e.events.CartCheckedOut(userID, order.ID, order.TotalAmount)
	return order, nil
}
