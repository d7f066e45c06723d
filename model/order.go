package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

const (
	StatusPending        = "pending"
	StatusPendingPayment = "pending_payment"
	StatusConfirmed      = "confirmed"
	StatusShipped        = "shipped"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

const (
	PaymentCOD    = "COD"
	PaymentOnline = "Online"
	PaymentQR     = "QR"
)

// OrderStatuses is the full enumeration accepted by the status update API.
var OrderStatuses = []string{
	StatusPending,
	StatusPendingPayment,
	StatusConfirmed,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

func ValidStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func ValidPaymentMethod(m string) bool {
	return m == PaymentCOD || m == PaymentOnline || m == PaymentQR
}

// OrderItem snapshots product name, price and image at order time.
type OrderItem struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url"`
}

type OrderItems []OrderItem

func (oi OrderItems) Value() (driver.Value, error) {
	return json.Marshal(oi)
}

func (oi *OrderItems) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, oi)
}

// AddressSnapshot freezes the delivery address at order time.
type AddressSnapshot struct {
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	AddressType  string `json:"address_type"`
}

func (a AddressSnapshot) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *AddressSnapshot) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, a)
}

// Order is immutable after creation except for Status.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"index" json:"user_id"`
	Items           OrderItems      `gorm:"type:jsonb" json:"items"`
	TotalAmount     float64         `json:"total_amount"`
	DeliveryAddress AddressSnapshot `gorm:"type:jsonb" json:"delivery_address"`
	PaymentMethod   string          `json:"payment_method"` // COD / Online / QR
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
