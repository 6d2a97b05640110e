package models

import "time"

// OrderStatus represents all lifecycle states of an order
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "placed"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

type Order struct {
	ID                    uint            `json:"id" gorm:"primaryKey"`
	OrderID               string          `json:"order_id" gorm:"uniqueIndex;not null"` // external identifier, e.g. ORD123456ABCDEF
	UserID                uint            `json:"user_id" gorm:"not null;index"`
	RestaurantID          uint            `json:"restaurant_id" gorm:"not null"`
	Restaurant            Restaurant      `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	AddressID             uint            `json:"address_id" gorm:"not null"`
	Address               Address         `json:"address,omitempty" gorm:"foreignKey:AddressID"`
	Status                OrderStatus     `json:"status" gorm:"not null;default:'placed'"`
	Subtotal              float64         `json:"subtotal"`
	DeliveryFee           float64         `json:"delivery_fee"`
	TaxAmount             float64         `json:"tax_amount"`
	TotalAmount           float64         `json:"total_amount"`
	PaymentMethod         PaymentMethod   `json:"payment_method"`
	PaymentStatus         PaymentStatus   `json:"payment_status" gorm:"default:'pending'"`
	SpecialInstructions   string          `json:"special_instructions"`
	EstimatedDeliveryTime time.Time       `json:"estimated_delivery_time"`
	DeliveryPartnerName   string          `json:"delivery_partner_name"`
	DeliveryPartnerPhone  string          `json:"delivery_partner_phone"`
	Items                 []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Tracking              []OrderTracking `json:"tracking,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
	DeliveredAt           *time.Time      `json:"delivered_at"`
}

// OrderItem is a snapshot of a cart line at checkout time. Name and
// price are copied so later menu edits never change past orders.
type OrderItem struct {
	ID                  uint    `json:"id" gorm:"primaryKey"`
	OrderID             uint    `json:"order_id" gorm:"not null;index"`
	MenuItemID          uint    `json:"menu_item_id" gorm:"not null"`
	ItemName            string  `json:"item_name" gorm:"not null"`
	Quantity            int     `json:"quantity" gorm:"not null"`
	UnitPrice           float64 `json:"unit_price" gorm:"not null"`
	TotalPrice          float64 `json:"total_price" gorm:"not null"`
	SpecialInstructions string  `json:"special_instructions"`
}

// OrderTracking is an append-only status log entry for an order
type OrderTracking struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	OrderID     uint        `json:"order_id" gorm:"not null;index"`
	Status      OrderStatus `json:"status" gorm:"not null"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
}
