package store

import (
	"time"

	"github.com/google/uuid"
)

// Order is the persisted order header, including the shipping address.
type Order struct {
	OrderID           string
	UserID            uuid.UUID
	Status            string
	TotalAmount       float64
	OrderDate         time.Time
	StatusUpdatedAt   time.Time
	EstimatedDelivery time.Time
	TrackingNumber    *string
	ShippingName      string
	ShippingStreet    string
	ShippingCity      string
	ShippingState     string
	ShippingZipCode   string
}

// OrderItem is a persisted line item belonging to one order.
type OrderItem struct {
	OrderID   string
	ProductID string
	Name      string
	Size      int32
	Price     float64
	Quantity  int32
}
