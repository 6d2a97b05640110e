// Package pricing holds the pure geo, fee and time calculations used
// by checkout and restaurant discovery. Everything here is
// deterministic given its inputs; callers pass the clock in.
package pricing

import (
	"fmt"
	"math"
	"time"
)

const (
	earthRadiusKm  = 6371
	freeRadiusKm   = 2  // distance covered by the base fee alone
	avgSpeedKmh    = 20 // assumed delivery speed
	etaWindowExtra = 5  // minutes added to the upper bound of the display range
)

// Distance returns the great-circle distance between two coordinates
// in kilometers, rounded to 2 decimal places.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return math.Round(earthRadiusKm*c*100) / 100
}

// DeliveryFee returns the base fee for distances within the free
// radius, then adds perKmFee for every started kilometer beyond it.
func DeliveryFee(distanceKm, baseFee, perKmFee float64) float64 {
	if distanceKm <= freeRadiusKm {
		return baseFee
	}
	return baseFee + math.Ceil(distanceKm-freeRadiusKm)*perKmFee
}

// Tax applies a percentage rate to a subtotal.
func Tax(subtotal, ratePct float64) float64 {
	return subtotal * ratePct / 100
}

// ETA is the estimated delivery time for an order.
type ETA struct {
	TotalMinutes int       `json:"total_minutes"`
	EstimatedAt  time.Time `json:"estimated_at"`
	TimeRange    string    `json:"time_range"` // e.g. "35-40 minutes"
}

// EstimatedDelivery combines preparation time with travel time at the
// assumed average speed.
func EstimatedDelivery(preparationMinutes int, distanceKm float64, now time.Time) ETA {
	travel := int(math.Ceil(distanceKm / avgSpeedKmh * 60))
	total := preparationMinutes + travel
	return ETA{
		TotalMinutes: total,
		EstimatedAt:  now.Add(time.Duration(total) * time.Minute),
		TimeRange:    fmt.Sprintf("%d-%d minutes", total, total+etaWindowExtra),
	}
}

// OpenNow reports whether a restaurant's operating window covers now.
// Windows that close past midnight (closing < opening) roll the close
// time into the next day.
func OpenNow(opening, closing string, now time.Time) bool {
	open, err := parseClock(opening, now)
	if err != nil {
		return false
	}
	closed, err := parseClock(closing, now)
	if err != nil {
		return false
	}
	if closed.Before(open) {
		closed = closed.Add(24 * time.Hour)
		if now.Before(open) {
			now = now.Add(24 * time.Hour)
		}
	}
	return !now.Before(open) && !now.After(closed)
}

func parseClock(hhmm string, day time.Time) (time.Time, error) {
	t, err := time.ParseInLocation("15:04", hhmm, day.Location())
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

// RoundRating rounds an average rating to one decimal place.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

// Pagination describes one page of a list result.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	Offset     int  `json:"-"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Paginate computes page metadata for a list of total items.
func Paginate(page, limit, total int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		Offset:     (page - 1) * limit,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
