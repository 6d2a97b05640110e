package models

import "time"

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentUPI    PaymentMethod = "upi"
	PaymentWallet PaymentMethod = "wallet"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment records one charge or refund against an order. A refund is a
// second row with a negative amount referencing the same order.
type Payment struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	PaymentID     string        `json:"payment_id" gorm:"uniqueIndex;not null"`
	OrderID       uint          `json:"order_id" gorm:"not null;index"`
	Order         Order         `json:"order,omitempty" gorm:"references:ID"`
	UserID        uint          `json:"user_id" gorm:"not null;index"`
	Amount        float64       `json:"amount" gorm:"not null"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"not null"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"not null"`
	TransactionID string        `json:"transaction_id"`
	CardLastFour  string        `json:"card_last_four"`
	CardType      string        `json:"card_type"`
	RefundReason  string        `json:"refund_reason"`
	CreatedAt     time.Time     `json:"created_at"`
}
