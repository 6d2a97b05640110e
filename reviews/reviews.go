// Package reviews handles restaurant reviews: gated on a delivered
// order, one per order, editable for a limited window, and feeding the
// restaurant's aggregate rating.
package reviews

import (
	"errors"
	"time"

	"food-ordering-api/ident"
	"food-ordering-api/models"
	"food-ordering-api/pricing"

	"gorm.io/gorm"
)

var (
	ErrOrderNotEligible = errors.New("you can only review restaurants you have ordered from and received delivery")
	ErrAlreadyReviewed  = errors.New("you have already reviewed this order")
	ErrNotFound         = errors.New("review not found")
	ErrWindowExpired    = errors.New("reviews can only be changed within 24 hours of creation")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
)

type Service struct {
	db     *gorm.DB
	window time.Duration
	now    func() time.Time
}

func NewService(db *gorm.DB, window time.Duration) *Service {
	return &Service{db: db, window: window, now: time.Now}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Input carries a new review. Food and delivery ratings default to the
// overall rating when omitted.
type Input struct {
	RestaurantID   uint
	OrderID        string // external order identifier
	Rating         int
	FoodRating     int
	DeliveryRating int
	Comment        string
}

// Create adds a review for a delivered order and recomputes the
// restaurant's aggregate rating.
func (s *Service) Create(userID uint, in Input) (models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return models.Review{}, ErrInvalidRating
	}
	var review models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Where(
			"order_id = ? AND user_id = ? AND restaurant_id = ? AND status = ?",
			in.OrderID, userID, in.RestaurantID, models.StatusDelivered,
		).First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotEligible
			}
			return err
		}

		var existing models.Review
		err = tx.Where("user_id = ? AND order_id = ?", userID, order.ID).First(&existing).Error
		if err == nil {
			return ErrAlreadyReviewed
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		food := in.FoodRating
		if food == 0 {
			food = in.Rating
		}
		delivery := in.DeliveryRating
		if delivery == 0 {
			delivery = in.Rating
		}

		review = models.Review{
			ReviewID:       ident.New("REV"),
			UserID:         userID,
			RestaurantID:   in.RestaurantID,
			OrderID:        order.ID,
			Rating:         in.Rating,
			FoodRating:     food,
			DeliveryRating: delivery,
			Comment:        in.Comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return s.recompute(tx, in.RestaurantID)
	})
	if err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// Update holds the editable review fields; nil means unchanged.
type Update struct {
	Rating         *int
	FoodRating     *int
	DeliveryRating *int
	Comment        *string
}

// Edit changes one of the user's reviews within the edit window.
func (s *Service) Edit(userID uint, reviewID string, up Update) error {
	for _, r := range []*int{up.Rating, up.FoodRating, up.DeliveryRating} {
		if r != nil && (*r < 1 || *r > 5) {
			return ErrInvalidRating
		}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		review, err := s.find(tx, userID, reviewID)
		if err != nil {
			return err
		}
		if s.now().Sub(review.CreatedAt) > s.window {
			return ErrWindowExpired
		}

		updates := map[string]interface{}{}
		if up.Rating != nil {
			updates["rating"] = *up.Rating
		}
		if up.FoodRating != nil {
			updates["food_rating"] = *up.FoodRating
		}
		if up.DeliveryRating != nil {
			updates["delivery_rating"] = *up.DeliveryRating
		}
		if up.Comment != nil {
			updates["comment"] = *up.Comment
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&review).Updates(updates).Error; err != nil {
			return err
		}
		return s.recompute(tx, review.RestaurantID)
	})
}

// Delete removes one of the user's reviews within the edit window.
func (s *Service) Delete(userID uint, reviewID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		review, err := s.find(tx, userID, reviewID)
		if err != nil {
			return err
		}
		if s.now().Sub(review.CreatedAt) > s.window {
			return ErrWindowExpired
		}
		if err := tx.Delete(&models.Review{}, review.ID).Error; err != nil {
			return err
		}
		return s.recompute(tx, review.RestaurantID)
	})
}

// Summary aggregates a restaurant's review ratings.
type Summary struct {
	AverageRating         float64 `json:"average_rating"`
	AverageFoodRating     float64 `json:"average_food_rating"`
	AverageDeliveryRating float64 `json:"average_delivery_rating"`
	TotalReviews          int     `json:"total_reviews"`
}

// ListForRestaurant returns a restaurant's reviews with reviewer
// names, paginated, plus the rating summary. sort is one of newest,
// oldest, rating_high, rating_low.
func (s *Service) ListForRestaurant(restaurantID uint, page, limit int, sort string) ([]models.Review, pricing.Pagination, Summary, error) {
	order := "created_at DESC"
	switch sort {
	case "oldest":
		order = "created_at ASC"
	case "rating_high":
		order = "rating DESC"
	case "rating_low":
		order = "rating ASC"
	}

	var total int64
	if err := s.db.Model(&models.Review{}).Where("restaurant_id = ?", restaurantID).Count(&total).Error; err != nil {
		return nil, pricing.Pagination{}, Summary{}, err
	}
	p := pricing.Paginate(page, limit, int(total))

	var rows []models.Review
	if err := s.db.Preload("User").
		Where("restaurant_id = ?", restaurantID).
		Order(order).
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return nil, pricing.Pagination{}, Summary{}, err
	}

	var stats struct {
		AvgRating   *float64
		AvgFood     *float64
		AvgDelivery *float64
		Cnt         int64
	}
	err := s.db.Model(&models.Review{}).
		Where("restaurant_id = ?", restaurantID).
		Select("AVG(rating) as avg_rating, AVG(food_rating) as avg_food, AVG(delivery_rating) as avg_delivery, COUNT(*) as cnt").
		Scan(&stats).Error
	if err != nil {
		return nil, pricing.Pagination{}, Summary{}, err
	}

	summary := Summary{TotalReviews: int(stats.Cnt)}
	if stats.AvgRating != nil {
		summary.AverageRating = pricing.RoundRating(*stats.AvgRating)
	}
	if stats.AvgFood != nil {
		summary.AverageFoodRating = pricing.RoundRating(*stats.AvgFood)
	}
	if stats.AvgDelivery != nil {
		summary.AverageDeliveryRating = pricing.RoundRating(*stats.AvgDelivery)
	}
	return rows, p, summary, nil
}

// ListForUser returns the user's own reviews, newest first.
func (s *Service) ListForUser(userID uint, page, limit int) ([]models.Review, pricing.Pagination, error) {
	var total int64
	if err := s.db.Model(&models.Review{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, pricing.Pagination{}, err
	}
	p := pricing.Paginate(page, limit, int(total))

	var rows []models.Review
	err := s.db.Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error
	return rows, p, err
}

func (s *Service) find(tx *gorm.DB, userID uint, reviewID string) (models.Review, error) {
	var review models.Review
	err := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Review{}, ErrNotFound
	}
	return review, err
}

// recompute refreshes the restaurant's denormalized rating fields.
func (s *Service) recompute(tx *gorm.DB, restaurantID uint) error {
	var stats struct {
		Avg *float64
		Cnt int64
	}
	err := tx.Model(&models.Review{}).
		Where("restaurant_id = ?", restaurantID).
		Select("AVG(rating) as avg, COUNT(*) as cnt").
		Scan(&stats).Error
	if err != nil {
		return err
	}
	rating := 0.0
	if stats.Avg != nil {
		rating = pricing.RoundRating(*stats.Avg)
	}
	return tx.Model(&models.Restaurant{}).Where("id = ?", restaurantID).
		Updates(map[string]interface{}{
			"rating":        rating,
			"total_reviews": stats.Cnt,
		}).Error
}
