package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type CartItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// CartItems is stored as a single jsonb column.
type CartItems []CartItem

func (ci CartItems) Value() (driver.Value, error) {
	return json.Marshal(ci)
}

func (ci *CartItems) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, ci)
}

// Cart is owned by exactly one of UserID or SessionID, never both.
type Cart struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"uniqueIndex" json:"user_id,omitempty"`
	SessionID *string   `gorm:"uniqueIndex" json:"session_id,omitempty"`
	Items     CartItems `gorm:"type:jsonb" json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Find returns the index of the item for productID, or -1.
func (c *Cart) Find(productID uint) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
