// Package payments simulates payment processing. The success decision
// sits behind the Gateway interface so production can keep the random
// outcome while tests force deterministic ones.
package payments

import (
	"errors"
	"math/rand"
	"time"

	"food-ordering-api/ident"
	"food-ordering-api/models"
	"food-ordering-api/pricing"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrAlreadyPaid         = errors.New("payment already completed for this order")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrNotRefundable       = errors.New("only completed payments can be refunded")
	ErrRefundWindowExpired = errors.New("refund can only be requested within 24 hours of order")
)

// Gateway decides payment and refund outcomes.
type Gateway interface {
	Charge(amount float64) bool
	Refund(amount float64) bool
}

// RandomGateway approves 90% of charges and 95% of refunds, matching
// the simulated processor this service fronts.
type RandomGateway struct{}

func (RandomGateway) Charge(float64) bool { return rand.Float64() > 0.1 }
func (RandomGateway) Refund(float64) bool { return rand.Float64() > 0.05 }

type Service struct {
	db           *gorm.DB
	gateway      Gateway
	refundWindow time.Duration
	now          func() time.Time
}

func NewService(db *gorm.DB, gateway Gateway, refundWindow time.Duration) *Service {
	return &Service{
		db:           db,
		gateway:      gateway,
		refundWindow: refundWindow,
		now:          time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CardDetails is optional masked card metadata supplied on card
// payments. Only the last four digits and the network are stored.
type CardDetails struct {
	LastFour string
	CardType string
}

// Receipt is the outcome of a charge attempt.
type Receipt struct {
	PaymentID     string               `json:"payment_id"`
	Status        models.PaymentStatus `json:"status"`
	TransactionID string               `json:"transaction_id,omitempty"`
	Amount        float64              `json:"amount"`
}

// Process charges the full amount of one of the user's orders. A
// successful charge also advances a placed order to confirmed.
func (s *Service) Process(userID uint, orderID string, method models.PaymentMethod, card *CardDetails) (Receipt, error) {
	var receipt Receipt
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Where("order_id = ? AND user_id = ?", orderID, userID).First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.PaymentStatus == models.PaymentCompleted {
			return ErrAlreadyPaid
		}

		ok := s.gateway.Charge(order.TotalAmount)
		status := models.PaymentFailed
		txnID := ""
		if ok {
			status = models.PaymentCompleted
			txnID = ident.NewTransactionID()
		}

		payment := models.Payment{
			PaymentID:     ident.New("PAY"),
			OrderID:       order.ID,
			UserID:        userID,
			Amount:        order.TotalAmount,
			PaymentMethod: method,
			PaymentStatus: status,
			TransactionID: txnID,
		}
		if card != nil {
			payment.CardLastFour = card.LastFour
			payment.CardType = card.CardType
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"payment_status": status}
		if ok && order.Status == models.StatusPlaced {
			updates["status"] = models.StatusConfirmed
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}

		receipt = Receipt{
			PaymentID:     payment.PaymentID,
			Status:        status,
			TransactionID: txnID,
			Amount:        payment.Amount,
		}
		return nil
	})
	if err != nil {
		return Receipt{}, err
	}
	return receipt, nil
}

// RefundResult is the outcome of a refund attempt.
type RefundResult struct {
	RefundID string               `json:"refund_id,omitempty"`
	Status   models.PaymentStatus `json:"status"`
	Amount   float64              `json:"amount"`
}

// Refund reverses a completed payment within the refund window. The
// refund is a second negative-amount payment row against the same
// order; the order itself moves to cancelled. Cancellation never calls
// this — refunds are always an explicit request.
func (s *Service) Refund(userID uint, paymentID, reason string) (RefundResult, error) {
	var result RefundResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		err := tx.Preload("Order").Where("payment_id = ? AND user_id = ?", paymentID, userID).
			First(&payment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if payment.PaymentStatus != models.PaymentCompleted {
			return ErrNotRefundable
		}
		if s.now().Sub(payment.Order.CreatedAt) > s.refundWindow {
			return ErrRefundWindowExpired
		}

		if !s.gateway.Refund(payment.Amount) {
			result = RefundResult{Status: models.PaymentFailed, Amount: payment.Amount}
			return nil
		}

		if err := tx.Model(&payment).Update("payment_status", models.PaymentRefunded).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", payment.OrderID).
			Updates(map[string]interface{}{
				"status":         models.StatusCancelled,
				"payment_status": models.PaymentRefunded,
			}).Error; err != nil {
			return err
		}

		refund := models.Payment{
			PaymentID:     ident.New("REF"),
			OrderID:       payment.OrderID,
			UserID:        userID,
			Amount:        -payment.Amount,
			PaymentMethod: payment.PaymentMethod,
			PaymentStatus: models.PaymentRefunded,
			TransactionID: ident.NewTransactionID(),
			RefundReason:  reason,
		}
		if err := tx.Create(&refund).Error; err != nil {
			return err
		}

		result = RefundResult{
			RefundID: refund.PaymentID,
			Status:   models.PaymentRefunded,
			Amount:   payment.Amount,
		}
		return nil
	})
	if err != nil {
		return RefundResult{}, err
	}
	return result, nil
}

// HistoryEntry is one row of the payment history list.
type HistoryEntry struct {
	PaymentID      string               `json:"payment_id"`
	OrderID        string               `json:"order_id"`
	RestaurantName string               `json:"restaurant_name"`
	Amount         float64              `json:"amount"`
	PaymentMethod  models.PaymentMethod `json:"payment_method"`
	PaymentStatus  models.PaymentStatus `json:"payment_status"`
	TransactionID  string               `json:"transaction_id,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

// History lists the user's payments newest first.
func (s *Service) History(userID uint, page, limit int) ([]HistoryEntry, pricing.Pagination, error) {
	var total int64
	if err := s.db.Model(&models.Payment{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, pricing.Pagination{}, err
	}
	p := pricing.Paginate(page, limit, int(total))

	var rows []models.Payment
	if err := s.db.Preload("Order.Restaurant").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return nil, pricing.Pagination{}, err
	}

	entries := make([]HistoryEntry, 0, len(rows))
	for _, pay := range rows {
		entries = append(entries, HistoryEntry{
			PaymentID:      pay.PaymentID,
			OrderID:        pay.Order.OrderID,
			RestaurantName: pay.Order.Restaurant.Name,
			Amount:         pay.Amount,
			PaymentMethod:  pay.PaymentMethod,
			PaymentStatus:  pay.PaymentStatus,
			TransactionID:  pay.TransactionID,
			CreatedAt:      pay.CreatedAt,
		})
	}
	return entries, p, nil
}

// Get returns one of the user's payments.
func (s *Service) Get(userID uint, paymentID string) (models.Payment, error) {
	var payment models.Payment
	err := s.db.Preload("Order.Restaurant").
		Where("payment_id = ? AND user_id = ?", paymentID, userID).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Payment{}, ErrPaymentNotFound
	}
	return payment, err
}

// Methods lists the accepted payment methods.
func Methods() []models.PaymentMethod {
	return []models.PaymentMethod{
		models.PaymentCash,
		models.PaymentCard,
		models.PaymentUPI,
		models.PaymentWallet,
	}
}
