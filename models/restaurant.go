package models

import "time"

type Restaurant struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	Name               string     `json:"name" gorm:"not null"`
	Description        string     `json:"description"`
	Cuisine            string     `json:"cuisine"`
	Phone              string     `json:"phone"`
	Email              string     `json:"email"`
	AddressLine1       string     `json:"address_line1"`
	City               string     `json:"city"`
	Latitude           float64    `json:"latitude"`
	Longitude          float64    `json:"longitude"`
	OpeningTime        string     `json:"opening_time"` // "HH:MM"
	ClosingTime        string     `json:"closing_time"` // "HH:MM", may be past midnight
	IsOpen             bool       `json:"is_open" gorm:"default:true"`
	IsVegOnly          bool       `json:"is_veg_only" gorm:"default:false"`
	Rating             float64    `json:"rating" gorm:"default:0"`
	TotalReviews       int        `json:"total_reviews" gorm:"default:0"`
	DeliveryFee        float64    `json:"delivery_fee"`
	MinOrderAmount     float64    `json:"min_order_amount"`
	AvgPreparationTime int        `json:"avg_preparation_time"` // minutes
	ImageURL           string     `json:"image_url"`
	MenuItems          []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type MenuItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Price        float64   `json:"price" gorm:"not null"`
	Category     string    `json:"category"`
	IsAvailable  bool      `json:"is_available" gorm:"default:true"`
	IsVeg        bool      `json:"is_veg" gorm:"default:false"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
