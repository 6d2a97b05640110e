// Package cart implements the single-restaurant shopping cart: write
// operations that keep every line on one restaurant, and the snapshot
// read that checkout consumes.
package cart

import (
	"errors"

	"food-ordering-api/models"

	"gorm.io/gorm"
)

var (
	ErrItemNotFound       = errors.New("menu item not found")
	ErrItemUnavailable    = errors.New("item is currently unavailable")
	ErrRestaurantClosed   = errors.New("restaurant is currently closed")
	ErrRestaurantMismatch = errors.New("cart can only contain items from one restaurant")
	ErrLineNotFound       = errors.New("cart item not found")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Totals is returned after every cart mutation.
type Totals struct {
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

// Line is one cart entry enriched with live menu and restaurant state.
type Line struct {
	ID                  uint    `json:"id"`
	MenuItemID          uint    `json:"item_id"`
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	Price               float64 `json:"price"`
	Quantity            int     `json:"quantity"`
	Total               float64 `json:"total"`
	IsVeg               bool    `json:"is_veg"`
	IsAvailable         bool    `json:"is_available"`
	Image               string  `json:"image"`
	SpecialInstructions string  `json:"special_instructions"`
}

// RestaurantInfo is the cart's restaurant context for display and
// checkout validation.
type RestaurantInfo struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	IsOpen         bool    `json:"is_open"`
	DeliveryFee    float64 `json:"delivery_fee"`
	MinOrderAmount float64 `json:"min_order_amount"`
}

// Snapshot is a consistent read of the user's cart. An empty cart has
// a nil Restaurant and no items.
type Snapshot struct {
	Items       []Line          `json:"items"`
	Restaurant  *RestaurantInfo `json:"restaurant"`
	Subtotal    float64         `json:"subtotal"`
	DeliveryFee float64         `json:"delivery_fee"`
	Total       float64         `json:"total"`
	ItemCount   int             `json:"item_count"`
}

func (s Snapshot) Empty() bool { return len(s.Items) == 0 }

// AddItem puts a menu item in the user's cart, merging quantity when
// the line already exists. Adding from a second restaurant is
// rejected; the caller must clear the cart first.
func (s *Service) AddItem(userID, restaurantID, itemID uint, quantity int, instructions string) (Totals, error) {
	var item models.MenuItem
	if err := s.db.Where("id = ? AND restaurant_id = ?", itemID, restaurantID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Totals{}, ErrItemNotFound
		}
		return Totals{}, err
	}
	if !item.IsAvailable {
		return Totals{}, ErrItemUnavailable
	}

	var restaurant models.Restaurant
	if err := s.db.First(&restaurant, restaurantID).Error; err != nil {
		return Totals{}, err
	}
	if !restaurant.IsOpen {
		return Totals{}, ErrRestaurantClosed
	}

	var existing []models.CartItem
	if err := s.db.Where("user_id = ?", userID).Find(&existing).Error; err != nil {
		return Totals{}, err
	}
	if len(existing) > 0 && existing[0].RestaurantID != restaurantID {
		return Totals{}, ErrRestaurantMismatch
	}

	var line models.CartItem
	err := s.db.Where("user_id = ? AND menu_item_id = ?", userID, itemID).First(&line).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"quantity":             line.Quantity + quantity,
			"special_instructions": instructions,
		}
		if err := s.db.Model(&line).Updates(updates).Error; err != nil {
			return Totals{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = models.CartItem{
			UserID:              userID,
			RestaurantID:        restaurantID,
			MenuItemID:          itemID,
			Quantity:            quantity,
			SpecialInstructions: instructions,
		}
		if err := s.db.Create(&line).Error; err != nil {
			return Totals{}, err
		}
	default:
		return Totals{}, err
	}

	return s.totals(userID)
}

// Get returns the user's cart snapshot with live menu and restaurant
// state joined in.
func (s *Service) Get(userID uint) (Snapshot, error) {
	lines, err := s.load(userID)
	if err != nil {
		return Snapshot{}, err
	}
	if len(lines) == 0 {
		return Snapshot{Items: []Line{}}, nil
	}

	// Defensive re-check of the one-restaurant invariant enforced by
	// AddItem.
	for _, l := range lines[1:] {
		if l.RestaurantID != lines[0].RestaurantID {
			return Snapshot{}, ErrRestaurantMismatch
		}
	}

	snap := Snapshot{
		Restaurant: &RestaurantInfo{
			ID:             lines[0].Restaurant.ID,
			Name:           lines[0].Restaurant.Name,
			IsOpen:         lines[0].Restaurant.IsOpen,
			DeliveryFee:    lines[0].Restaurant.DeliveryFee,
			MinOrderAmount: lines[0].Restaurant.MinOrderAmount,
		},
		DeliveryFee: lines[0].Restaurant.DeliveryFee,
	}
	for _, l := range lines {
		lineTotal := l.MenuItem.Price * float64(l.Quantity)
		snap.Items = append(snap.Items, Line{
			ID:                  l.ID,
			MenuItemID:          l.MenuItemID,
			Name:                l.MenuItem.Name,
			Description:         l.MenuItem.Description,
			Price:               l.MenuItem.Price,
			Quantity:            l.Quantity,
			Total:               lineTotal,
			IsVeg:               l.MenuItem.IsVeg,
			IsAvailable:         l.MenuItem.IsAvailable,
			Image:               l.MenuItem.ImageURL,
			SpecialInstructions: l.SpecialInstructions,
		})
		snap.Subtotal += lineTotal
		snap.ItemCount += l.Quantity
	}
	snap.Total = snap.Subtotal + snap.DeliveryFee
	return snap, nil
}

// UpdateItem changes a line's quantity; zero or negative removes it.
func (s *Service) UpdateItem(userID, lineID uint, quantity int, instructions string) (Totals, error) {
	var line models.CartItem
	err := s.db.Preload("MenuItem").Preload("Restaurant").
		Where("id = ? AND user_id = ?", lineID, userID).First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Totals{}, ErrLineNotFound
		}
		return Totals{}, err
	}
	if !line.MenuItem.IsAvailable {
		return Totals{}, ErrItemUnavailable
	}
	if !line.Restaurant.IsOpen {
		return Totals{}, ErrRestaurantClosed
	}

	if quantity <= 0 {
		if err := s.db.Delete(&models.CartItem{}, line.ID).Error; err != nil {
			return Totals{}, err
		}
	} else {
		updates := map[string]interface{}{
			"quantity":             quantity,
			"special_instructions": instructions,
		}
		if err := s.db.Model(&line).Updates(updates).Error; err != nil {
			return Totals{}, err
		}
	}
	return s.totals(userID)
}

// RemoveItem deletes one line from the cart.
func (s *Service) RemoveItem(userID, lineID uint) (Totals, error) {
	var line models.CartItem
	if err := s.db.Where("id = ? AND user_id = ?", lineID, userID).First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Totals{}, ErrLineNotFound
		}
		return Totals{}, err
	}
	if err := s.db.Delete(&models.CartItem{}, line.ID).Error; err != nil {
		return Totals{}, err
	}
	return s.totals(userID)
}

// Clear removes every line from the user's cart.
func (s *Service) Clear(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

func (s *Service) load(userID uint) ([]models.CartItem, error) {
	var lines []models.CartItem
	err := s.db.Preload("MenuItem").Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&lines).Error
	return lines, err
}

func (s *Service) totals(userID uint) (Totals, error) {
	lines, err := s.load(userID)
	if err != nil {
		return Totals{}, err
	}
	if len(lines) == 0 {
		return Totals{}, nil
	}
	t := Totals{Total: lines[0].Restaurant.DeliveryFee}
	for _, l := range lines {
		t.Total += l.MenuItem.Price * float64(l.Quantity)
		t.ItemCount += l.Quantity
	}
	return t, nil
}
