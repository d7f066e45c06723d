package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/b-himadri/bakery-backend-api/model"
)

type orderStore struct {
	db *gorm.DB
}

func (s *orderStore) Insert(ctx context.Context, o *model.Order) error {
	return s.db.WithContext(ctx).Create(o).Error
}

func (s *orderStore) GetByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *orderStore) ListByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderStore) ListAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderStore) UpdateStatus(ctx context.Context, id uint, status string) error {
	return s.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}
