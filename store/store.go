package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/b-himadri/bakery-backend-api/service"
)

// SQLStores implements service.Stores on top of a GORM connection.
type SQLStores struct {
	db *gorm.DB
}

func New(db *gorm.DB) *SQLStores {
	return &SQLStores{db: db}
}

func (s *SQLStores) Products() service.ProductStore  { return &productStore{db: s.db} }
func (s *SQLStores) Carts() service.CartStore        { return &cartStore{db: s.db} }
func (s *SQLStores) Addresses() service.AddressStore { return &addressStore{db: s.db} }
func (s *SQLStores) Orders() service.OrderStore      { return &orderStore{db: s.db} }
func (s *SQLStores) Users() service.UserStore        { return &userStore{db: s.db} }

// Atomic runs fn in a database transaction; fn receives stores bound to the
// transaction and any error rolls every mutation back.
func (s *SQLStores) Atomic(ctx context.Context, fn func(service.Stores) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
