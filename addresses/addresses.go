// Package addresses owns the delivery-address aggregate. The default
// flag invariant — a user with at least one address has exactly one
// default — is maintained here and nowhere else.
package addresses

import (
	"errors"

	"food-ordering-api/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("address not found")
	ErrLastAddress = errors.New("cannot delete the only address; add another address first")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Input is the validated shape for create and update.
type Input struct {
	Type         models.AddressType
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Pincode      string
	Latitude     float64
	Longitude    float64
}

// Add creates an address. The user's first address becomes the
// default automatically.
func (s *Service) Add(userID uint, in Input) (models.Address, error) {
	var address models.Address
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Address{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		address = models.Address{
			UserID:       userID,
			Type:         in.Type,
			AddressLine1: in.AddressLine1,
			AddressLine2: in.AddressLine2,
			City:         in.City,
			State:        in.State,
			Pincode:      in.Pincode,
			Latitude:     in.Latitude,
			Longitude:    in.Longitude,
			IsDefault:    count == 0,
		}
		return tx.Create(&address).Error
	})
	return address, err
}

// List returns the user's addresses, default first, then newest.
func (s *Service) List(userID uint) ([]models.Address, error) {
	var out []models.Address
	err := s.db.Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&out).Error
	return out, err
}

// Get returns one of the user's addresses.
func (s *Service) Get(userID, id uint) (models.Address, error) {
	var address models.Address
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Address{}, ErrNotFound
	}
	return address, err
}

// Update rewrites the address fields. The default flag is not
// touchable here; use SetDefault.
func (s *Service) Update(userID, id uint, in Input) (models.Address, error) {
	address, err := s.Get(userID, id)
	if err != nil {
		return models.Address{}, err
	}
	updates := map[string]interface{}{
		"type":          in.Type,
		"address_line1": in.AddressLine1,
		"address_line2": in.AddressLine2,
		"city":          in.City,
		"state":         in.State,
		"pincode":       in.Pincode,
		"latitude":      in.Latitude,
		"longitude":     in.Longitude,
	}
	if err := s.db.Model(&address).Updates(updates).Error; err != nil {
		return models.Address{}, err
	}
	return s.Get(userID, id)
}

// SetDefault makes the given address the user's single default.
func (s *Service) SetDefault(userID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var address models.Address
		err := tx.Where("id = ? AND user_id = ?", id, userID).First(&address).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&models.Address{}).Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Address{}).Where("id = ?", id).
			Update("is_default", true).Error
	})
}

// Delete removes an address. Deleting the last address is refused;
// deleting the default promotes the newest remaining address so the
// invariant holds.
func (s *Service) Delete(userID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var address models.Address
		err := tx.Where("id = ? AND user_id = ?", id, userID).First(&address).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Address{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 1 {
			return ErrLastAddress
		}

		if err := tx.Delete(&models.Address{}, address.ID).Error; err != nil {
			return err
		}

		if address.IsDefault {
			var next models.Address
			err := tx.Where("user_id = ?", userID).
				Order("created_at DESC, id DESC").
				First(&next).Error
			if err != nil {
				return err
			}
			return tx.Model(&next).Update("is_default", true).Error
		}
		return nil
	})
}
