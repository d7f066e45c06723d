package model

import "time"

const (
	AddressTypeShipping = "shipping"
	AddressTypeBilling  = "billing"
	AddressTypeOther    = "other"
)

type Address struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index:idx_addresses_user_default" json:"user_id"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postal_code"`
	Country      string    `json:"country"`
	AddressType  string    `json:"address_type"` // shipping / billing / other
	IsDefault    bool      `gorm:"index:idx_addresses_user_default" json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
