package models

import "time"

// CartItem is one pending line in a user's cart. All of a user's cart
// items reference the same restaurant; cross-restaurant adds are
// rejected at write time.
type CartItem struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	UserID              uint       `json:"user_id" gorm:"not null;index"`
	RestaurantID        uint       `json:"restaurant_id" gorm:"not null"`
	Restaurant          Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	MenuItemID          uint       `json:"menu_item_id" gorm:"not null"`
	MenuItem            MenuItem   `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity            int        `json:"quantity" gorm:"not null"`
	SpecialInstructions string     `json:"special_instructions"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
