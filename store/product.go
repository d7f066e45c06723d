package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/b-himadri/bakery-backend-api/model"
)

type productStore struct {
	db *gorm.DB
}

func (s *productStore) GetByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *productStore) List(ctx context.Context, inStockOnly bool) ([]model.Product, error) {
	q := s.db.WithContext(ctx)
	if inStockOnly {
		q = q.Where("stock > 0")
	}
	var products []model.Product
	if err := q.Order("created_at").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *productStore) Create(ctx context.Context, p *model.Product) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *productStore) Save(ctx context.Context, p *model.Product) error {
	return s.db.WithContext(ctx).Save(p).Error
}

func (s *productStore) Delete(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *productStore) ConditionalDecrementStock(ctx context.Context, id uint, qty int) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
