package orders

import "food-ordering-api/models"

// cancellable is the set of states a customer may still cancel from.
// Everything at preparing or later is committed kitchen work.
var cancellable = map[models.OrderStatus]bool{
	models.StatusPlaced:    true,
	models.StatusConfirmed: true,
}

// Cancellable reports whether an order in the given state can still be
// cancelled by the customer.
func Cancellable(status models.OrderStatus) bool {
	return cancellable[status]
}

var statusLabels = map[models.OrderStatus]string{
	models.StatusPlaced:         "Order Placed",
	models.StatusConfirmed:      "Order Confirmed",
	models.StatusPreparing:      "Preparing Your Order",
	models.StatusReady:          "Ready for Pickup",
	models.StatusOutForDelivery: "Out for Delivery",
	models.StatusDelivered:      "Delivered",
	models.StatusCancelled:      "Cancelled",
}

// Label returns the human-readable form of a status for display.
func Label(status models.OrderStatus) string {
	if l, ok := statusLabels[status]; ok {
		return l
	}
	return string(status)
}
