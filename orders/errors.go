package orders

import (
	"errors"
	"fmt"
	"strings"
)

// Business failures returned by the order pipeline. They are
// deterministic given current state; callers map them to responses and
// never retry. Store-level failures pass through as ordinary errors.
var (
	ErrCartEmpty              = errors.New("cart is empty")
	ErrRestaurantClosed       = errors.New("restaurant is currently closed")
	ErrAddressNotFound        = errors.New("delivery address not found")
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderCannotBeCancelled = errors.New("order cannot be cancelled at this stage")
)

// ItemUnavailableError reports cart lines whose menu items went
// unavailable between add-to-cart and checkout.
type ItemUnavailableError struct {
	Names []string
}

func (e *ItemUnavailableError) Error() string {
	return "item is currently unavailable: " + strings.Join(e.Names, ", ")
}

// MinimumOrderError reports a subtotal below the restaurant's minimum.
type MinimumOrderError struct {
	Required float64
}

func (e *MinimumOrderError) Error() string {
	return fmt.Sprintf("order amount is below minimum requirement of %.2f", e.Required)
}
