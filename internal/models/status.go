package models

// nextStatuses is the manual transition table offered to operators.
// UNASSIGNED moves forward only through assignment; the server remains the
// enforcement point for every transition.
var nextStatuses = map[OrderStatus][]OrderStatus{
	OrderUnassigned:     {},
	OrderAssigned:       {OrderPickedUp, OrderFailed},
	OrderPickedUp:       {OrderOutForDelivery, OrderFailed},
	OrderOutForDelivery: {OrderDelivered, OrderFailed},
	OrderDelivered:      {},
	OrderFailed:         {},
}

// NextStatuses returns the manual transitions offered from a given status
func NextStatuses(s OrderStatus) []OrderStatus {
	next, ok := nextStatuses[s]
	if !ok {
		return nil
	}
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether a manual transition is offered to operators
func CanTransition(from, to OrderStatus) bool {
	for _, s := range nextStatuses[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are permitted
func IsTerminal(s OrderStatus) bool {
	return s == OrderDelivered || s == OrderFailed
}

// ValidStatus reports whether s is a known order status
func ValidStatus(s OrderStatus) bool {
	_, ok := nextStatuses[s]
	return ok
}
