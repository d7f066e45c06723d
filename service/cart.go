package service

import (
	"context"
	"log"

	"github.com/b-himadri/bakery-backend-api/model"
)

// CartOwner identifies who a cart belongs to: a logged-in user or an
// anonymous session, never both.
type CartOwner struct {
	UserID    uint
	SessionID string
}

func (o CartOwner) isUser() bool { return o.UserID != 0 }

// CartService manages the mutable pending selection for users and guests,
// and reconciles guest carts with user carts at login.
type CartService struct {
	stores Stores
}

func NewCartService(stores Stores) *CartService {
	return &CartService{stores: stores}
}

func (cs *CartService) get(ctx context.Context, owner CartOwner) (*model.Cart, error) {
	if owner.isUser() {
		return cs.stores.Carts().GetByUser(ctx, owner.UserID)
	}
	return cs.stores.Carts().GetBySession(ctx, owner.SessionID)
}

// Get returns the owner's cart, or an empty unsaved cart when none exists.
func (cs *CartService) Get(ctx context.Context, owner CartOwner) (*model.Cart, error) {
	cart, err := cs.get(ctx, owner)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &model.Cart{Items: model.CartItems{}}
	}
	return cart, nil
}

// AddItem puts quantity units of productID into the owner's cart, creating
// the cart lazily. Re-adding a product sums quantities instead of
// duplicating the line. The stock check here is advisory; checkout performs
// the authoritative one.
func (cs *CartService) AddItem(ctx context.Context, owner CartOwner, productID uint, quantity int) (*model.Cart, error) {
	if quantity < 1 {
		return nil, &ValidationError{Reason: "quantity must be at least 1"}
	}

	product, err := cs.stores.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &NotFoundError{Entity: "product"}
	}

	cart, err := cs.get(ctx, owner)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &model.Cart{Items: model.CartItems{}}
		if owner.isUser() {
			uid := owner.UserID
			cart.UserID = &uid
		} else {
			sid := owner.SessionID
			cart.SessionID = &sid
		}
	}

	newTotal := quantity
	if i := cart.Find(productID); i >= 0 {
		newTotal += cart.Items[i].Quantity
	}
	if newTotal > product.Stock {
		return nil, &InsufficientStockError{
			Product:   product.Name,
			Requested: newTotal,
			Available: product.Stock,
		}
	}

	if i := cart.Find(productID); i >= 0 {
		cart.Items[i].Quantity = newTotal
	} else {
		cart.Items = append(cart.Items, model.CartItem{ProductID: productID, Quantity: quantity})
	}

	if err := cs.stores.Carts().Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateItem sets the quantity of an existing line; zero removes it.
func (cs *CartService) UpdateItem(ctx context.Context, owner CartOwner, productID uint, quantity int) (*model.Cart, error) {
	if quantity < 0 {
		return nil, &ValidationError{Reason: "quantity cannot be negative"}
	}

	cart, err := cs.get(ctx, owner)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, &NotFoundError{Entity: "cart"}
	}

	i := cart.Find(productID)
	if i < 0 {
		return nil, &NotFoundError{Entity: "cart item"}
	}

	if quantity > 0 {
		product, err := cs.stores.Products().GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product != nil && quantity > product.Stock {
			return nil, &InsufficientStockError{
				Product:   product.Name,
				Requested: quantity,
				Available: product.Stock,
			}
		}
		cart.Items[i].Quantity = quantity
	} else {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	}

	if err := cs.stores.Carts().Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops the line for productID if present.
func (cs *CartService) RemoveItem(ctx context.Context, owner CartOwner, productID uint) (*model.Cart, error) {
	cart, err := cs.get(ctx, owner)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, &NotFoundError{Entity: "cart"}
	}

	if i := cart.Find(productID); i >= 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		if err := cs.stores.Carts().Save(ctx, cart); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

// MergeOnLogin reconciles the guest cart for sessionID with the user's cart.
// Quantities are summed per product; no stock validation happens here, it is
// deferred to checkout.
func (cs *CartService) MergeOnLogin(ctx context.Context, userID uint, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	return cs.stores.Atomic(ctx, func(s Stores) error {
		guestCart, err := s.Carts().GetBySession(ctx, sessionID)
		if err != nil {
			return err
		}
		if guestCart == nil {
			return nil
		}

		userCart, err := s.Carts().GetByUser(ctx, userID)
		if err != nil {
			return err
		}

		if userCart == nil {
			// Transfer ownership of the guest cart.
			guestCart.UserID = &userID
			guestCart.SessionID = nil
			return s.Carts().Save(ctx, guestCart)
		}

		for _, guestItem := range guestCart.Items {
			if i := userCart.Find(guestItem.ProductID); i >= 0 {
				userCart.Items[i].Quantity += guestItem.Quantity
			} else {
				userCart.Items = append(userCart.Items, guestItem)
			}
		}
		if err := s.Carts().Save(ctx, userCart); err != nil {
			return err
		}
		if err := s.Carts().DeleteBySession(ctx, sessionID); err != nil {
			return err
		}
		log.Printf("merged guest cart %s into user %d cart", sessionID, userID)
		return nil
	})
}
