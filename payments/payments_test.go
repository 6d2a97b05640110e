package payments

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"food-ordering-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubGateway forces a fixed outcome for both charges and refunds.
type stubGateway struct {
	approve bool
}

func (g stubGateway) Charge(float64) bool { return g.approve }
func (g stubGateway) Refund(float64) bool { return g.approve }

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Address{}, &models.Restaurant{}, &models.MenuItem{},
		&models.Order{}, &models.OrderItem{}, &models.OrderTracking{}, &models.Payment{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	db    *gorm.DB
	user  models.User
	rest  models.Restaurant
	order models.Order
}

func seed(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	f := &fixture{db: db}

	f.user = models.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "x"}
	mustCreate(t, db, &f.user)

	f.rest = models.Restaurant{Name: "Spice Route", IsOpen: true}
	mustCreate(t, db, &f.rest)

	f.order = models.Order{
		OrderID:       "ORDPAYTEST01",
		UserID:        f.user.ID,
		RestaurantID:  f.rest.ID,
		Status:        models.StatusPlaced,
		TotalAmount:   465,
		PaymentMethod: models.PaymentCard,
		PaymentStatus: models.PaymentPending,
	}
	mustCreate(t, db, &f.order)
	return f
}

func mustCreate(t *testing.T, db *gorm.DB, v interface{}) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func (f *fixture) reloadOrder(t *testing.T) models.Order {
	t.Helper()
	var o models.Order
	if err := f.db.First(&o, f.order.ID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	return o
}

func TestProcessSuccess(t *testing.T) {
	f := seed(t, testDB(t))
	svc := NewService(f.db, stubGateway{approve: true}, 24*time.Hour)

	receipt, err := svc.Process(f.user.ID, f.order.OrderID, models.PaymentCard, &CardDetails{
		LastFour: "4242", CardType: "visa",
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if receipt.Status != models.PaymentCompleted {
		t.Errorf("expected completed, got %s", receipt.Status)
	}
	if receipt.Amount != 465 {
		t.Errorf("expected amount 465, got %v", receipt.Amount)
	}
	if !strings.HasPrefix(receipt.PaymentID, "PAY") {
		t.Errorf("unexpected payment id %q", receipt.PaymentID)
	}
	if !strings.HasPrefix(receipt.TransactionID, "TXN") {
		t.Errorf("unexpected transaction id %q", receipt.TransactionID)
	}

	order := f.reloadOrder(t)
	if order.PaymentStatus != models.PaymentCompleted {
		t.Errorf("order payment status not updated: %s", order.PaymentStatus)
	}
	if order.Status != models.StatusConfirmed {
		t.Errorf("placed order must advance to confirmed, got %s", order.Status)
	}

	payment, err := svc.Get(f.user.ID, receipt.PaymentID)
	if err != nil {
		t.Fatalf("get payment: %v", err)
	}
	if payment.CardLastFour != "4242" || payment.CardType != "visa" {
		t.Errorf("card details not stored: %+v", payment)
	}
}

func TestProcessDeclined(t *testing.T) {
	f := seed(t, testDB(t))
	svc := NewService(f.db, stubGateway{approve: false}, 24*time.Hour)

	receipt, err := svc.Process(f.user.ID, f.order.OrderID, models.PaymentUPI, nil)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if receipt.Status != models.PaymentFailed {
		t.Errorf("expected failed, got %s", receipt.Status)
	}
	if receipt.TransactionID != "" {
		t.Errorf("declined charge must not mint a transaction id, got %q", receipt.TransactionID)
	}

	order := f.reloadOrder(t)
	if order.PaymentStatus != models.PaymentFailed {
		t.Errorf("order payment status: %s", order.PaymentStatus)
	}
	if order.Status != models.StatusPlaced {
		t.Errorf("declined charge must not advance the order, got %s", order.Status)
	}

	// A failed attempt can be retried
	svc = NewService(f.db, stubGateway{approve: true}, 24*time.Hour)
	retry, err := svc.Process(f.user.ID, f.order.OrderID, models.PaymentUPI, nil)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if retry.Status != models.PaymentCompleted {
		t.Errorf("retry should succeed, got %s", retry.Status)
	}
}

func TestProcessAlreadyPaid(t *testing.T) {
	f := seed(t, testDB(t))
	svc := NewService(f.db, stubGateway{approve: true}, 24*time.Hour)

	if _, err := svc.Process(f.user.ID, f.order.OrderID, models.PaymentCard, nil); err != nil {
		t.Fatalf("first charge: %v", err)
	}
	_, err := svc.Process(f.user.ID, f.order.OrderID, models.PaymentCard, nil)
	if !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}
}

func TestProcessOrderNotFound(t *testing.T) {
	f := seed(t, testDB(t))
	svc := NewService(f.db, stubGateway{approve: true}, 24*time.Hour)

	if _, err := svc.Process(f.user.ID, "ORDMISSING", models.PaymentCash, nil); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	other := models.User{Name: "Ravi", Email: "ravi@example.com", PasswordHash: "x"}
	mustCreate(t, f.db, &other)
	if _, err := svc.Process(other.ID, f.order.OrderID, models.PaymentCash, nil); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for foreign order, got %v", err)
	}
}

func TestRefundSuccess(t *testing.T) {
	f := seed(t, testDB(t))
	svc := NewService(f.db, stubGateway{approve: true}, 24*time.Hour)

	receipt, err := svc.Process(f.user.ID, f.order.OrderID, models.PaymentCard, nil)
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	result, err := svc.Refund(f.user.ID, receipt.PaymentID, "changed my mind")
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if result.Status != models.PaymentRefunded || result.Amount != 465 {
		t.Errorf("unexpected result %+v", result)
	}
	if !strings.HasPrefix(result.RefundID, "REF") {
		t.Errorf("unexpected refund id %q", result.RefundID)
	}

	original, _ := svc.Get(f.user.ID, receipt.PaymentID)
	if original.PaymentStatus != models.PaymentRefunded {
		t.Errorf("original payment not marked refunded: %s", original.PaymentStatus)
	}
	refundRow, err := svc.Get(f.user.ID, result.RefundID)
	if err != nil {
		t.Fatalf("get refund row: %v", err)
	}
	if refundRow.Amount != -465 || refundRow.RefundReason != "changed my mind" {
		t.Errorf("bad refund row: %+v", refundRow)
	}

	order := f.reloadOrder(t)
	if order.Status != models.StatusCancelled || order.PaymentStatus != models.PaymentRefunded {
		t.Errorf("order not cancelled+refunded: status=%s payment=%s", order.Status, order.PaymentStatus)
	}
}

func TestRefundGatewayDecline(t *testing.T) {
	f := seed(t, testDB(t))
	charge := NewService(f.db, stubGateway{approve: true}, 24*time.Hour)
	receipt, err := charge.Process(f.user.ID, f.order.OrderID, models.PaymentCard, nil)
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	svc := NewService(f.db, stubGateway{approve: false}, 24*time.Hour)
	result, err := svc.Refund(f.user.ID, receipt.PaymentID, "late delivery")
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if result.Status != models.PaymentFailed || result.RefundID != "" {
		t.Errorf("declined refund must report failed with no refund id, got %+v", result)
	}

	// Nothing may change on a declined refund
	original, _ := svc.Get(f.user.ID, receipt.PaymentID)
	if original.PaymentStatus != models.PaymentCompleted {
		t.Errorf("payment status must stay completed, got %s", original.PaymentStatus)
	}
	order := f.reloadOrder(t)
	if order.Status == models.StatusCancelled {
		t.Error("order must not be cancelled on a declined refund")
	}
	var n int64
	f.db.Model(&models.Payment{}).Where("user_id = ?", f.user.ID).Count(&n)
	if n != 1 {
		t.Errorf("no refund row may be created, got %d payments", n)
	}
}

func TestRefundWindowExpired(t *testing.T) {
	f := seed(t, testDB(t))
	svc := NewService(f.db, stubGateway{approve: true}, 24*time.Hour)
	receipt, err := svc.Process(f.user.ID, f.order.OrderID, models.PaymentCard, nil)
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	svc.WithClock(func() time.Time { return f.order.CreatedAt.Add(25 * time.Hour) })
	_, err = svc.Refund(f.user.ID, receipt.PaymentID, "too late")
	if !errors.Is(err, ErrRefundWindowExpired) {
		t.Fatalf("expected ErrRefundWindowExpired, got %v", err)
	}
}

func TestRefundOnlyCompleted(t *testing.T) {
	f := seed(t, testDB(t))
	svc := NewService(f.db, stubGateway{approve: false}, 24*time.Hour)
	receipt, err := svc.Process(f.user.ID, f.order.OrderID, models.PaymentCard, nil)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	// The failed payment row exists, but only completed ones refund
	_, err = svc.Refund(f.user.ID, receipt.PaymentID, "never charged")
	if !errors.Is(err, ErrNotRefundable) {
		t.Fatalf("expected ErrNotRefundable, got %v", err)
	}
}

func TestHistory(t *testing.T) {
	f := seed(t, testDB(t))
	svc := NewService(f.db, stubGateway{approve: true}, 24*time.Hour)

	receipt, err := svc.Process(f.user.ID, f.order.OrderID, models.PaymentCard, nil)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if _, err := svc.Refund(f.user.ID, receipt.PaymentID, "changed my mind"); err != nil {
		t.Fatalf("refund: %v", err)
	}

	entries, p, err := svc.History(f.user.ID, 1, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if p.Total != 2 || len(entries) != 2 {
		t.Fatalf("expected charge and refund rows, got total=%d rows=%d", p.Total, len(entries))
	}
	for _, e := range entries {
		if e.OrderID != f.order.OrderID || e.RestaurantName != "Spice Route" {
			t.Errorf("bad history entry %+v", e)
		}
	}
}

func TestMethods(t *testing.T) {
	methods := Methods()
	want := []models.PaymentMethod{
		models.PaymentCash, models.PaymentCard, models.PaymentUPI, models.PaymentWallet,
	}
	if len(methods) != len(want) {
		t.Fatalf("expected %d methods, got %d", len(want), len(methods))
	}
	for i, m := range want {
		if methods[i] != m {
			t.Errorf("method %d: expected %s, got %s", i, m, methods[i])
		}
	}
}
