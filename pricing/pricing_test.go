package pricing

import (
	"testing"
	"time"
)

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][4]float64{
		{12.9716, 77.5946, 13.0827, 80.2707}, // Bangalore - Chennai
		{28.7041, 77.1025, 19.0760, 72.8777}, // Delhi - Mumbai
		{0, 0, 0, 0},
		{-33.8688, 151.2093, 51.5074, -0.1278},
	}
	for _, p := range pairs {
		ab := Distance(p[0], p[1], p[2], p[3])
		ba := Distance(p[2], p[3], p[0], p[1])
		if ab != ba {
			t.Errorf("distance not symmetric: %v vs %v", ab, ba)
		}
	}
}

func TestDistanceIdenticalPoints(t *testing.T) {
	if d := Distance(12.9716, 77.5946, 12.9716, 77.5946); d != 0 {
		t.Errorf("expected 0 for identical points, got %v", d)
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// Bangalore to Chennai is roughly 290 km as the crow flies
	d := Distance(12.9716, 77.5946, 13.0827, 80.2707)
	if d < 280 || d > 300 {
		t.Errorf("unexpected Bangalore-Chennai distance: %v", d)
	}
}

func TestDeliveryFeeWithinFreeRadius(t *testing.T) {
	for _, d := range []float64{0, 0.5, 1.99, 2} {
		if fee := DeliveryFee(d, 40, 5); fee != 40 {
			t.Errorf("distance %v: expected base fee 40, got %v", d, fee)
		}
	}
}

func TestDeliveryFeeSteps(t *testing.T) {
	cases := []struct {
		distance float64
		want     float64
	}{
		{2.01, 45}, // ceil(0.01) = 1 extra km
		{3, 45},
		{3.5, 50},
		{4, 50},
		{7, 65},
	}
	for _, c := range cases {
		if fee := DeliveryFee(c.distance, 40, 5); fee != c.want {
			t.Errorf("distance %v: expected %v, got %v", c.distance, c.want, fee)
		}
	}
}

func TestDeliveryFeeMonotonic(t *testing.T) {
	prev := 0.0
	for d := 0.0; d <= 15; d += 0.25 {
		fee := DeliveryFee(d, 40, 5)
		if fee < prev {
			t.Fatalf("fee decreased at distance %v: %v < %v", d, fee, prev)
		}
		prev = fee
	}
}

func TestTax(t *testing.T) {
	if got := Tax(400, 5); got != 20 {
		t.Errorf("expected tax 20, got %v", got)
	}
	if got := Tax(0, 5); got != 0 {
		t.Errorf("expected tax 0, got %v", got)
	}
}

func TestEstimatedDelivery(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	// 3 km at 20 km/h = 9 minutes travel, plus 25 prep
	eta := EstimatedDelivery(25, 3, now)
	if eta.TotalMinutes != 34 {
		t.Errorf("expected 34 total minutes, got %d", eta.TotalMinutes)
	}
	if eta.TimeRange != "34-39 minutes" {
		t.Errorf("unexpected time range %q", eta.TimeRange)
	}
	want := now.Add(34 * time.Minute)
	if !eta.EstimatedAt.Equal(want) {
		t.Errorf("expected %v, got %v", want, eta.EstimatedAt)
	}
}

func TestEstimatedDeliveryZeroDistance(t *testing.T) {
	now := time.Now()
	eta := EstimatedDelivery(20, 0, now)
	if eta.TotalMinutes != 20 {
		t.Errorf("expected prep time only, got %d", eta.TotalMinutes)
	}
}

func TestOpenNow(t *testing.T) {
	noon := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	midnight := time.Date(2024, 6, 1, 0, 30, 0, 0, time.UTC)
	cases := []struct {
		opening, closing string
		now              time.Time
		want             bool
	}{
		{"09:00", "22:00", noon, true},
		{"13:00", "22:00", noon, false},
		{"18:00", "02:00", midnight, true}, // closes past midnight
		{"18:00", "02:00", noon, false},
		{"bad", "22:00", noon, false},
	}
	for _, c := range cases {
		if got := OpenNow(c.opening, c.closing, c.now); got != c.want {
			t.Errorf("OpenNow(%q, %q, %v) = %v, want %v", c.opening, c.closing, c.now, got, c.want)
		}
	}
}

func TestPaginate(t *testing.T) {
	p := Paginate(1, 10, 25)
	if p.TotalPages != 3 || !p.HasNext || p.HasPrev {
		t.Errorf("page 1 of 25/10: %+v", p)
	}
	p = Paginate(2, 10, 25)
	if !p.HasNext || !p.HasPrev || p.Offset != 10 {
		t.Errorf("page 2 of 25/10: %+v", p)
	}
	p = Paginate(3, 10, 25)
	if p.HasNext || !p.HasPrev {
		t.Errorf("page 3 of 25/10: %+v", p)
	}
	p = Paginate(0, 0, 0)
	if p.Page != 1 || p.Limit != 10 || p.TotalPages != 0 {
		t.Errorf("defaults: %+v", p)
	}
}

func TestRoundRating(t *testing.T) {
	if got := RoundRating(4.26); got != 4.3 {
		t.Errorf("expected 4.3, got %v", got)
	}
	if got := RoundRating(0); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}
