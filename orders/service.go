// Package orders is the order pipeline: checkout from the cart,
// history and detail reads with the tracking log, and customer
// cancellation.
package orders

import (
	"errors"
	"time"

	"food-ordering-api/ident"
	"food-ordering-api/models"
	"food-ordering-api/pricing"

	"gorm.io/gorm"
)

const (
	placedDescription    = "Order has been placed successfully"
	cancelledDescription = "Order has been cancelled by customer"
)

// Service runs the order pipeline against an injected store handle.
// The clock and id generator are injectable so tests can pin them.
type Service struct {
	db         *gorm.DB
	taxRatePct float64
	perKmFee   float64
	now        func() time.Time
	newOrderID func() string
}

func NewService(db *gorm.DB, taxRatePct, perKmFee float64) *Service {
	return &Service{
		db:         db,
		taxRatePct: taxRatePct,
		perKmFee:   perKmFee,
		now:        time.Now,
		newOrderID: func() string { return ident.New("ORD") },
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithOrderIDs overrides the order id generator. Test hook.
func (s *Service) WithOrderIDs(gen func() string) *Service {
	s.newOrderID = gen
	return s
}

// PlacedOrder is the checkout result.
type PlacedOrder struct {
	OrderID               string             `json:"order_id"`
	TotalAmount           float64            `json:"total_amount"`
	EstimatedDeliveryTime string             `json:"estimated_delivery_time"`
	Status                models.OrderStatus `json:"status"`
}

// Create turns the user's cart into a persisted order. All effects —
// the order row, its item snapshots, the initial tracking event and
// the cart delete — commit in one transaction; any precondition
// failure leaves the cart untouched.
func (s *Service) Create(userID, addressID uint, method models.PaymentMethod, instructions string) (PlacedOrder, error) {
	var result PlacedOrder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var lines []models.CartItem
		if err := tx.Preload("MenuItem").Preload("Restaurant").
			Where("user_id = ?", userID).Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrCartEmpty
		}

		restaurant := lines[0].Restaurant
		if !restaurant.IsOpen {
			return ErrRestaurantClosed
		}

		var unavailable []string
		for _, l := range lines {
			if !l.MenuItem.IsAvailable {
				unavailable = append(unavailable, l.MenuItem.Name)
			}
		}
		if len(unavailable) > 0 {
			return &ItemUnavailableError{Names: unavailable}
		}

		var address models.Address
		if err := tx.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAddressNotFound
			}
			return err
		}

		var subtotal float64
		for _, l := range lines {
			subtotal += l.MenuItem.Price * float64(l.Quantity)
		}
		if subtotal < restaurant.MinOrderAmount {
			return &MinimumOrderError{Required: restaurant.MinOrderAmount}
		}

		distance := pricing.Distance(address.Latitude, address.Longitude, restaurant.Latitude, restaurant.Longitude)
		// The restaurant's own delivery_fee is the base fee; the global
		// default is only a seed for restaurants created without one.
		deliveryFee := pricing.DeliveryFee(distance, restaurant.DeliveryFee, s.perKmFee)
		taxAmount := pricing.Tax(subtotal, s.taxRatePct)
		totalAmount := subtotal + deliveryFee + taxAmount
		eta := pricing.EstimatedDelivery(restaurant.AvgPreparationTime, distance, s.now())

		order := models.Order{
			OrderID:               s.newOrderID(),
			UserID:                userID,
			RestaurantID:          restaurant.ID,
			AddressID:             address.ID,
			Status:                models.StatusPlaced,
			Subtotal:              subtotal,
			DeliveryFee:           deliveryFee,
			TaxAmount:             taxAmount,
			TotalAmount:           totalAmount,
			PaymentMethod:         method,
			PaymentStatus:         models.PaymentPending,
			SpecialInstructions:   instructions,
			EstimatedDeliveryTime: eta.EstimatedAt,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, l := range lines {
			item := models.OrderItem{
				OrderID:             order.ID,
				MenuItemID:          l.MenuItemID,
				ItemName:            l.MenuItem.Name,
				Quantity:            l.Quantity,
				UnitPrice:           l.MenuItem.Price,
				TotalPrice:          l.MenuItem.Price * float64(l.Quantity),
				SpecialInstructions: l.SpecialInstructions,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		track := models.OrderTracking{
			OrderID:     order.ID,
			Status:      models.StatusPlaced,
			Description: placedDescription,
		}
		if err := tx.Create(&track).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		result = PlacedOrder{
			OrderID:               order.OrderID,
			TotalAmount:           totalAmount,
			EstimatedDeliveryTime: eta.TimeRange,
			Status:                models.StatusPlaced,
		}
		return nil
	})
	if err != nil {
		return PlacedOrder{}, err
	}
	return result, nil
}

// Summary is one row of the order history list.
type Summary struct {
	OrderID        string             `json:"order_id"`
	RestaurantName string             `json:"restaurant_name"`
	Items          int                `json:"items"`
	TotalAmount    float64            `json:"total_amount"`
	Status         models.OrderStatus `json:"status"`
	OrderedAt      time.Time          `json:"ordered_at"`
	DeliveredAt    *time.Time         `json:"delivered_at"`
}

// List returns the user's orders newest first, optionally filtered by
// status, with pagination metadata.
func (s *Service) List(userID uint, status string, page, limit int) ([]Summary, pricing.Pagination, error) {
	query := s.db.Model(&models.Order{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, pricing.Pagination{}, err
	}
	p := pricing.Paginate(page, limit, int(total))

	var rows []models.Order
	if err := query.Preload("Restaurant").Preload("Items").
		Order("created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return nil, pricing.Pagination{}, err
	}

	summaries := make([]Summary, 0, len(rows))
	for _, o := range rows {
		count := 0
		for _, it := range o.Items {
			count += it.Quantity
		}
		summaries = append(summaries, Summary{
			OrderID:        o.OrderID,
			RestaurantName: o.Restaurant.Name,
			Items:          count,
			TotalAmount:    o.TotalAmount,
			Status:         o.Status,
			OrderedAt:      o.CreatedAt,
			DeliveredAt:    o.DeliveredAt,
		})
	}
	return summaries, p, nil
}

// DetailItem is one snapshotted line of an order.
type DetailItem struct {
	Name                string  `json:"name"`
	Quantity            int     `json:"quantity"`
	Price               float64 `json:"price"`
	Total               float64 `json:"total"`
	SpecialInstructions string  `json:"special_instructions"`
}

// TrackingEvent is one entry of the order's status log.
type TrackingEvent struct {
	Status      models.OrderStatus `json:"status"`
	Label       string             `json:"label"`
	Description string             `json:"description"`
	Timestamp   time.Time          `json:"timestamp"`
}

// Contact is a name/phone pair for the restaurant or delivery partner.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Detail is the full order read model.
type Detail struct {
	OrderID               string               `json:"order_id"`
	Restaurant            Contact              `json:"restaurant"`
	Items                 []DetailItem         `json:"items"`
	DeliveryAddress       string               `json:"delivery_address"`
	Status                models.OrderStatus   `json:"status"`
	Tracking              []TrackingEvent      `json:"tracking"`
	DeliveryPartner       *Contact             `json:"delivery_partner"`
	Subtotal              float64              `json:"subtotal"`
	DeliveryFee           float64              `json:"delivery_fee"`
	TaxAmount             float64              `json:"tax_amount"`
	TotalAmount           float64              `json:"total_amount"`
	PaymentMethod         models.PaymentMethod `json:"payment_method"`
	PaymentStatus         models.PaymentStatus `json:"payment_status"`
	SpecialInstructions   string               `json:"special_instructions"`
	OrderedAt             time.Time            `json:"ordered_at"`
	EstimatedDeliveryTime time.Time            `json:"estimated_delivery_time"`
	DeliveredAt           *time.Time           `json:"delivered_at"`
}

// Get reconstructs the detail read model for one of the user's orders.
func (s *Service) Get(userID uint, orderID string) (Detail, error) {
	var order models.Order
	err := s.db.Preload("Restaurant").Preload("Address").
		Preload("Items").
		Preload("Tracking", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("order_id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Detail{}, ErrOrderNotFound
		}
		return Detail{}, err
	}

	detail := Detail{
		OrderID:               order.OrderID,
		Restaurant:            Contact{Name: order.Restaurant.Name, Phone: order.Restaurant.Phone},
		DeliveryAddress:       order.Address.FormattedLine(),
		Status:                order.Status,
		Subtotal:              order.Subtotal,
		DeliveryFee:           order.DeliveryFee,
		TaxAmount:             order.TaxAmount,
		TotalAmount:           order.TotalAmount,
		PaymentMethod:         order.PaymentMethod,
		PaymentStatus:         order.PaymentStatus,
		SpecialInstructions:   order.SpecialInstructions,
		OrderedAt:             order.CreatedAt,
		EstimatedDeliveryTime: order.EstimatedDeliveryTime,
		DeliveredAt:           order.DeliveredAt,
	}
	for _, it := range order.Items {
		detail.Items = append(detail.Items, DetailItem{
			Name:                it.ItemName,
			Quantity:            it.Quantity,
			Price:               it.UnitPrice,
			Total:               it.TotalPrice,
			SpecialInstructions: it.SpecialInstructions,
		})
	}
	for _, tr := range order.Tracking {
		detail.Tracking = append(detail.Tracking, TrackingEvent{
			Status:      tr.Status,
			Label:       Label(tr.Status),
			Description: tr.Description,
			Timestamp:   tr.CreatedAt,
		})
	}
	if order.DeliveryPartnerName != "" {
		detail.DeliveryPartner = &Contact{
			Name:  order.DeliveryPartnerName,
			Phone: order.DeliveryPartnerPhone,
		}
	}
	return detail, nil
}

// Cancel moves one of the user's orders to cancelled and appends the
// tracking event. Only placed or confirmed orders qualify.
func (s *Service) Cancel(userID uint, orderID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Where("order_id = ? AND user_id = ?", orderID, userID).First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if !Cancellable(order.Status) {
			return ErrOrderCannotBeCancelled
		}

		if err := tx.Model(&order).Update("status", models.StatusCancelled).Error; err != nil {
			return err
		}
		track := models.OrderTracking{
			OrderID:     order.ID,
			Status:      models.StatusCancelled,
			Description: cancelledDescription,
		}
		return tx.Create(&track).Error
	})
}
