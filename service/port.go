package service

import (
	"context"

	"github.com/b-himadri/bakery-backend-api/model"
)

// Store contracts for the data layer. Lookups return (nil, nil) when the
// record does not exist; errors are reserved for storage failures.

type ProductStore interface {
	GetByID(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context, inStockOnly bool) ([]model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Save(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uint) (bool, error)

	// ConditionalDecrementStock subtracts qty from the product's stock only
	// if the result stays non-negative. Returns false when the guard fails.
	ConditionalDecrementStock(ctx context.Context, id uint, qty int) (bool, error)
}

type CartStore interface {
	GetByUser(ctx context.Context, userID uint) (*model.Cart, error)
	GetBySession(ctx context.Context, sessionID string) (*model.Cart, error)
	Save(ctx context.Context, c *model.Cart) error
	DeleteByUser(ctx context.Context, userID uint) error
	DeleteBySession(ctx context.Context, sessionID string) error
}

type AddressStore interface {
	GetByID(ctx context.Context, id, userID uint) (*model.Address, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Address, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	Create(ctx context.Context, a *model.Address) error
	Save(ctx context.Context, a *model.Address) error
	Delete(ctx context.Context, id, userID uint) error

	// ClearDefaults unsets is_default on every address of userID except
	// exceptID, in a single update scoped to that user.
	ClearDefaults(ctx context.Context, userID, exceptID uint) error

	// EarliestByUser returns the user's oldest address by creation time.
	EarliestByUser(ctx context.Context, userID uint) (*model.Address, error)
}

type OrderStore interface {
	Insert(ctx context.Context, o *model.Order) error
	GetByID(ctx context.Context, id uint) (*model.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type UserStore interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	Save(ctx context.Context, u *model.User) error
}

// Stores bundles the individual stores and provides transactional scope.
type Stores interface {
	Products() ProductStore
	Carts() CartStore
	Addresses() AddressStore
	Orders() OrderStore
	Users() UserStore

	// Atomic runs fn against a transactional view of the stores. If fn
	// returns an error every mutation made through that view is rolled back.
	Atomic(ctx context.Context, fn func(Stores) error) error
}

// EventPublisher receives domain events after the owning transaction has
// committed. Implementations must not fail the calling operation.
type EventPublisher interface {
	OrderCreated(o *model.Order)
	OrderStatusUpdated(orderID uint, previous, next string)
	CartCheckedOut(userID, orderID uint, total float64)
}

// NopPublisher discards all events.
type NopPublisher struct{}

func (NopPublisher) OrderCreated(*model.Order)               {}
func (NopPublisher) OrderStatusUpdated(uint, string, string) {}
func (NopPublisher) CartCheckedOut(uint, uint, float64)      {}
