package models

import "time"

// Review rates one delivered order. At most one per (user, order);
// editable only within a fixed window after creation.
type Review struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	ReviewID       string     `json:"review_id" gorm:"uniqueIndex;not null"`
	UserID         uint       `json:"user_id" gorm:"not null;index"`
	User           User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	RestaurantID   uint       `json:"restaurant_id" gorm:"not null;index"`
	Restaurant     Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	OrderID        uint       `json:"order_id" gorm:"not null"`
	Rating         int        `json:"rating" gorm:"not null"` // 1-5 overall
	FoodRating     int        `json:"food_rating"`
	DeliveryRating int        `json:"delivery_rating"`
	Comment        string     `json:"comment"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
