package service

import (
	"context"

	"github.com/b-himadri/bakery-backend-api/model"
)

// ProductService validates and applies the admin catalog mutations.
type ProductService struct {
	stores Stores
}

func NewProductService(stores Stores) *ProductService {
	return &ProductService{stores: stores}
}

// List returns the catalog; inStockOnly hides sold-out products from the
// public listing.
func (ps *ProductService) List(ctx context.Context, inStockOnly bool) ([]model.Product, error) {
	return ps.stores.Products().List(ctx, inStockOnly)
}

func (ps *ProductService) Get(ctx context.Context, id uint) (*model.Product, error) {
	product, err := ps.stores.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &NotFoundError{Entity: "product"}
	}
	return product, nil
}

func (ps *ProductService) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	if p.Name == "" || p.Description == "" || p.ImageURL == "" || p.Category == "" {
		return nil, &ValidationError{Reason: "name, description, image_url and category are required"}
	}
	if p.Price <= 0 {
		return nil, &ValidationError{Reason: "price must be positive"}
	}
	if p.Stock < 0 {
		return nil, &ValidationError{Reason: "stock cannot be negative"}
	}
	if err := ps.stores.Products().Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ProductUpdate carries the fields an admin may change; nil means keep.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	ImageURL    *string
	Category    *string
	Stock       *int
}

func (ps *ProductService) Update(ctx context.Context, id uint, upd ProductUpdate) (*model.Product, error) {
	product, err := ps.stores.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &NotFoundError{Entity: "product"}
	}

	if upd.Name != nil {
		product.Name = *upd.Name
	}
	if upd.Description != nil {
		product.Description = *upd.Description
	}
	if upd.Price != nil {
		if *upd.Price <= 0 {
			return nil, &ValidationError{Reason: "price must be positive"}
		}
		product.Price = *upd.Price
	}
	if upd.ImageURL != nil {
		product.ImageURL = *upd.ImageURL
	}
	if upd.Category != nil {
		product.Category = *upd.Category
	}
	if upd.Stock != nil {
		if *upd.Stock < 0 {
			return nil, &ValidationError{Reason: "stock cannot be negative"}
		}
		product.Stock = *upd.Stock
	}

	if err := ps.stores.Products().Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (ps *ProductService) Delete(ctx context.Context, id uint) error {
	deleted, err := ps.stores.Products().Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return &NotFoundError{Entity: "product"}
	}
	return nil
}
