package models

import (
	"time"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Phone        string    `json:"phone"`
	Addresses    []Address `json:"addresses,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AddressType classifies a saved delivery address
type AddressType string

const (
	AddressHome  AddressType = "home"
	AddressWork  AddressType = "work"
	AddressOther AddressType = "other"
)

type Address struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	UserID       uint        `json:"user_id" gorm:"not null;index"`
	Type         AddressType `json:"type" gorm:"default:'home'"`
	AddressLine1 string      `json:"address_line1" gorm:"not null"`
	AddressLine2 string      `json:"address_line2"`
	City         string      `json:"city" gorm:"not null"`
	State        string      `json:"state"`
	Pincode      string      `json:"pincode"`
	Latitude     float64     `json:"latitude"`
	Longitude    float64     `json:"longitude"`
	IsDefault    bool        `json:"is_default" gorm:"default:false"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// FormattedLine joins the non-empty address parts for display
func (a Address) FormattedLine() string {
	parts := []string{a.AddressLine1, a.AddressLine2, a.City, a.State, a.Pincode}
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}
