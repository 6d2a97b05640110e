package reviews

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
		&models.User{}, &models.Restaurant{}, &models.Order{}, &models.Review{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	db   *gorm.DB
	svc  *Service
	user models.User
	rest models.Restaurant
}

func seed(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	f := &fixture{db: db, svc: NewService(db, 24*time.Hour)}

	f.user = models.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "x"}
	mustCreate(t, db, &f.user)
	f.rest = models.Restaurant{Name: "Spice Route", IsOpen: true}
	mustCreate(t, db, &f.rest)
	return f
}

// deliveredOrder creates an order in delivered state for the fixture
// user at the fixture restaurant.
func (f *fixture) deliveredOrder(t *testing.T, externalID string) models.Order {
	t.Helper()
	o := models.Order{
		OrderID:      externalID,
		UserID:       f.user.ID,
		RestaurantID: f.rest.ID,
		Status:       models.StatusDelivered,
		TotalAmount:  465,
	}
	mustCreate(t, f.db, &o)
	return o
}

func mustCreate(t *testing.T, db *gorm.DB, v interface{}) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func (f *fixture) restaurantRating(t *testing.T) (float64, int) {
	t.Helper()
	var r models.Restaurant
	if err := f.db.First(&r, f.rest.ID).Error; err != nil {
		t.Fatalf("reload restaurant: %v", err)
	}
	return r.Rating, r.TotalReviews
}

func TestCreateReview(t *testing.T) {
	f := seed(t, testDB(t))
	f.deliveredOrder(t, "ORDREV001")

	review, err := f.svc.Create(f.user.ID, Input{
		RestaurantID: f.rest.ID,
		OrderID:      "ORDREV001",
		Rating:       4,
		Comment:      "great biryani",
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if !strings.HasPrefix(review.ReviewID, "REV") {
		t.Errorf("unexpected review id %q", review.ReviewID)
	}
	// Omitted sub-ratings default to the overall rating
	if review.FoodRating != 4 || review.DeliveryRating != 4 {
		t.Errorf("sub-ratings should default to 4, got food=%d delivery=%d", review.FoodRating, review.DeliveryRating)
	}

	rating, total := f.restaurantRating(t)
	if rating != 4 || total != 1 {
		t.Errorf("expected rating 4 from 1 review, got %v/%d", rating, total)
	}
}

func TestCreateReviewRequiresDelivery(t *testing.T) {
	f := seed(t, testDB(t))
	o := models.Order{
		OrderID:      "ORDREV002",
		UserID:       f.user.ID,
		RestaurantID: f.rest.ID,
		Status:       models.StatusOutForDelivery,
	}
	mustCreate(t, f.db, &o)

	_, err := f.svc.Create(f.user.ID, Input{RestaurantID: f.rest.ID, OrderID: "ORDREV002", Rating: 5})
	if !errors.Is(err, ErrOrderNotEligible) {
		t.Fatalf("expected ErrOrderNotEligible for undelivered order, got %v", err)
	}

	_, err = f.svc.Create(f.user.ID, Input{RestaurantID: f.rest.ID, OrderID: "ORDMISSING", Rating: 5})
	if !errors.Is(err, ErrOrderNotEligible) {
		t.Fatalf("expected ErrOrderNotEligible for unknown order, got %v", err)
	}
}

func TestCreateReviewOnePerOrder(t *testing.T) {
	f := seed(t, testDB(t))
	f.deliveredOrder(t, "ORDREV003")

	in := Input{RestaurantID: f.rest.ID, OrderID: "ORDREV003", Rating: 5}
	if _, err := f.svc.Create(f.user.ID, in); err != nil {
		t.Fatalf("first review: %v", err)
	}
	_, err := f.svc.Create(f.user.ID, in)
	if !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}
}

func TestCreateReviewRatingBounds(t *testing.T) {
	f := seed(t, testDB(t))
	f.deliveredOrder(t, "ORDREV004")

	for _, rating := range []int{0, 6, -1} {
		_, err := f.svc.Create(f.user.ID, Input{RestaurantID: f.rest.ID, OrderID: "ORDREV004", Rating: rating})
		if !errors.Is(err, ErrInvalidRating) {
			t.Errorf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}
}

func TestAggregateRatingAcrossReviews(t *testing.T) {
	f := seed(t, testDB(t))

	ratings := []int{5, 4, 3}
	for i, r := range ratings {
		id := fmt.Sprintf("ORDAGG%03d", i)
		f.deliveredOrder(t, id)
		if _, err := f.svc.Create(f.user.ID, Input{RestaurantID: f.rest.ID, OrderID: id, Rating: r}); err != nil {
			t.Fatalf("review %d: %v", i, err)
		}
	}

	rating, total := f.restaurantRating(t)
	if rating != 4 || total != 3 {
		t.Errorf("expected rating 4.0 from 3 reviews, got %v/%d", rating, total)
	}

	// (5+4)/2 = 4.5 after deleting the 3-star review
	var last models.Review
	if err := f.db.Where("rating = ?", 3).First(&last).Error; err != nil {
		t.Fatalf("find review: %v", err)
	}
	if err := f.svc.Delete(f.user.ID, last.ReviewID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rating, total = f.restaurantRating(t)
	if rating != 4.5 || total != 2 {
		t.Errorf("expected rating 4.5 from 2 reviews, got %v/%d", rating, total)
	}
}

func TestEditReview(t *testing.T) {
	f := seed(t, testDB(t))
	f.deliveredOrder(t, "ORDEDIT01")
	review, err := f.svc.Create(f.user.ID, Input{RestaurantID: f.rest.ID, OrderID: "ORDEDIT01", Rating: 2, Comment: "cold"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rating := 5
	comment := "they made it right"
	if err := f.svc.Edit(f.user.ID, review.ReviewID, Update{Rating: &rating, Comment: &comment}); err != nil {
		t.Fatalf("edit: %v", err)
	}

	var got models.Review
	if err := f.db.Where("review_id = ?", review.ReviewID).First(&got).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Rating != 5 || got.Comment != "they made it right" {
		t.Errorf("edit not applied: %+v", got)
	}
	// Untouched fields survive a partial update
	if got.FoodRating != 2 {
		t.Errorf("food rating should be unchanged, got %d", got.FoodRating)
	}

	agg, total := f.restaurantRating(t)
	if agg != 5 || total != 1 {
		t.Errorf("aggregate not recomputed after edit: %v/%d", agg, total)
	}
}

func TestEditWindowExpired(t *testing.T) {
	f := seed(t, testDB(t))
	f.deliveredOrder(t, "ORDEDIT02")
	review, err := f.svc.Create(f.user.ID, Input{RestaurantID: f.rest.ID, OrderID: "ORDEDIT02", Rating: 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	f.svc.WithClock(func() time.Time { return review.CreatedAt.Add(25 * time.Hour) })

	rating := 1
	if err := f.svc.Edit(f.user.ID, review.ReviewID, Update{Rating: &rating}); !errors.Is(err, ErrWindowExpired) {
		t.Fatalf("expected ErrWindowExpired on edit, got %v", err)
	}
	if err := f.svc.Delete(f.user.ID, review.ReviewID); !errors.Is(err, ErrWindowExpired) {
		t.Fatalf("expected ErrWindowExpired on delete, got %v", err)
	}
}

func TestEditForeignReview(t *testing.T) {
	f := seed(t, testDB(t))
	f.deliveredOrder(t, "ORDEDIT03")
	review, err := f.svc.Create(f.user.ID, Input{RestaurantID: f.rest.ID, OrderID: "ORDEDIT03", Rating: 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	other := models.User{Name: "Ravi", Email: "ravi@example.com", PasswordHash: "x"}
	mustCreate(t, f.db, &other)

	rating := 1
	if err := f.svc.Edit(other.ID, review.ReviewID, Update{Rating: &rating}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign edit, got %v", err)
	}
	if err := f.svc.Delete(other.ID, review.ReviewID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign delete, got %v", err)
	}
}

func TestListForRestaurantSorting(t *testing.T) {
	f := seed(t, testDB(t))
	ratings := []int{2, 5, 3}
	for i, r := range ratings {
		id := fmt.Sprintf("ORDLIST%02d", i)
		f.deliveredOrder(t, id)
		if _, err := f.svc.Create(f.user.ID, Input{RestaurantID: f.rest.ID, OrderID: id, Rating: r}); err != nil {
			t.Fatalf("review %d: %v", i, err)
		}
	}

	rows, p, summary, err := f.svc.ListForRestaurant(f.rest.ID, 1, 10, "rating_high")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if p.Total != 3 || len(rows) != 3 {
		t.Fatalf("expected 3 reviews, got total=%d rows=%d", p.Total, len(rows))
	}
	if rows[0].Rating != 5 || rows[2].Rating != 2 {
		t.Errorf("rating_high order wrong: %d, %d, %d", rows[0].Rating, rows[1].Rating, rows[2].Rating)
	}
	if summary.TotalReviews != 3 {
		t.Errorf("summary total: %d", summary.TotalReviews)
	}
	// (2+5+3)/3 = 3.3 after rounding to one decimal
	if summary.AverageRating != 3.3 {
		t.Errorf("expected average 3.3, got %v", summary.AverageRating)
	}

	rows, _, _, err = f.svc.ListForRestaurant(f.rest.ID, 1, 10, "rating_low")
	if err != nil {
		t.Fatalf("list low: %v", err)
	}
	if rows[0].Rating != 2 {
		t.Errorf("rating_low should start at 2, got %d", rows[0].Rating)
	}
}

func TestListForRestaurantEmpty(t *testing.T) {
	f := seed(t, testDB(t))
	rows, p, summary, err := f.svc.ListForRestaurant(f.rest.ID, 1, 10, "newest")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 0 || p.Total != 0 {
		t.Errorf("expected no reviews, got %d", len(rows))
	}
	if summary.AverageRating != 0 || summary.TotalReviews != 0 {
		t.Errorf("empty summary expected, got %+v", summary)
	}
}

func TestListForUser(t *testing.T) {
	f := seed(t, testDB(t))
	f.deliveredOrder(t, "ORDMINE01")
	if _, err := f.svc.Create(f.user.ID, Input{RestaurantID: f.rest.ID, OrderID: "ORDMINE01", Rating: 4}); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, p, err := f.svc.ListForUser(f.user.ID, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if p.Total != 1 || len(rows) != 1 || rows[0].Restaurant.Name != "Spice Route" {
		t.Errorf("unexpected result total=%d rows=%+v", p.Total, rows)
	}
}
