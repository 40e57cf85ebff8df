package enums

import "fmt"

// OrderStatus tracks the lifecycle of a customer order.
type OrderStatus string

const (
	OrderStatusAwaitingForPayment OrderStatus = "AWAITING_FOR_PAYMENT"
	OrderStatusPaymentReceived    OrderStatus = "PAYMENT_RECEIVED"
	OrderStatusShipped            OrderStatus = "SHIPPED"
	OrderStatusDelivered          OrderStatus = "DELIVERED"
)

// OrderStatusInitial is the status every new order starts in.
const OrderStatusInitial = OrderStatusAwaitingForPayment

var validOrderStatuses = []OrderStatus{
	OrderStatusAwaitingForPayment,
	OrderStatusPaymentReceived,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is permitted out of s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered
}

// CanTransition reports whether an order currently in s may move to another
// status. Any non-terminal status may move anywhere, including straight to
// DELIVERED; a delivered order never moves again.
func (s OrderStatus) CanTransition() bool {
	return s.IsValid() && !s.IsTerminal()
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
