package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/b-himadri/bakery-backend-api/model"
)

type addressStore struct {
	db *gorm.DB
}

func (s *addressStore) GetByID(ctx context.Context, id, userID uint) (*model.Address, error) {
	var address model.Address
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (s *addressStore) ListByUser(ctx context.Context, userID uint) ([]model.Address, error) {
	var addresses []model.Address
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		Find(&addresses).Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

func (s *addressStore) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Address{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (s *addressStore) Create(ctx context.Context, a *model.Address) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *addressStore) Save(ctx context.Context, a *model.Address) error {
	return s.db.WithContext(ctx).Save(a).Error
}

func (s *addressStore) Delete(ctx context.Context, id, userID uint) error {
	return s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Address{}).Error
}

func (s *addressStore) ClearDefaults(ctx context.Context, userID, exceptID uint) error {
	return s.db.WithContext(ctx).
		Model(&model.Address{}).
		Where("user_id = ? AND id <> ? AND is_default", userID, exceptID).
		Update("is_default", false).Error
}

func (s *addressStore) EarliestByUser(ctx context.Context, userID uint) (*model.Address, error) {
	var address model.Address
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}
