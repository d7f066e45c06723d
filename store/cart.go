package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/b-himadri/bakery-backend-api/model"
)

type cartStore struct {
	db *gorm.DB
}

func (s *cartStore) getBy(ctx context.Context, query string, arg interface{}) (*model.Cart, error) {
	var cart model.Cart
	err := s.db.WithContext(ctx).Where(query, arg).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *cartStore) GetByUser(ctx context.Context, userID uint) (*model.Cart, error) {
	return s.getBy(ctx, "user_id = ?", userID)
}

func (s *cartStore) GetBySession(ctx context.Context, sessionID string) (*model.Cart, error) {
	return s.getBy(ctx, "session_id = ?", sessionID)
}

func (s *cartStore) Save(ctx context.Context, c *model.Cart) error {
	return s.db.WithContext(ctx).Save(c).Error
}

func (s *cartStore) DeleteByUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Cart{}).Error
}

func (s *cartStore) DeleteBySession(ctx context.Context, sessionID string) error {
	return s.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&model.Cart{}).Error
}
