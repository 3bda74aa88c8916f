package models

// OrderStatus represents a state in the order lifecycle
type OrderStatus string

const (
	StatusPending          OrderStatus = "pending"
	StatusAdminApproved    OrderStatus = "admin_approved"
	StatusSellerApproved   OrderStatus = "seller_approved"
	StatusInProgress       OrderStatus = "in_progress"
	StatusReadyForDelivery OrderStatus = "ready_for_delivery"
	StatusOutForDelivery   OrderStatus = "out_for_delivery"
	StatusDelivered        OrderStatus = "delivered"
	StatusCompleted        OrderStatus = "completed"
	StatusCancelled        OrderStatus = "cancelled"
	StatusSuspended        OrderStatus = "suspended"
)

// allowedTransitions defines the directed graph of permitted status changes.
// Suspension is handled separately: any non-terminal status may move to
// suspended, and a suspended order may only resume to its previous status
// or be cancelled.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:          {StatusAdminApproved, StatusCancelled},
	StatusAdminApproved:    {StatusSellerApproved, StatusCancelled},
	StatusSellerApproved:   {StatusInProgress, StatusCancelled},
	StatusInProgress:       {StatusReadyForDelivery, StatusCancelled},
	StatusReadyForDelivery: {StatusOutForDelivery},
	StatusOutForDelivery:   {StatusDelivered},
	StatusDelivered:        {StatusCompleted},
	StatusCompleted:        {},
	StatusCancelled:        {},
}

// ValidStatuses returns every known order status
func ValidStatuses() []OrderStatus {
	return []OrderStatus{
		StatusPending,
		StatusAdminApproved,
		StatusSellerApproved,
		StatusInProgress,
		StatusReadyForDelivery,
		StatusOutForDelivery,
		StatusDelivered,
		StatusCompleted,
		StatusCancelled,
		StatusSuspended,
	}
}

// IsValidStatus checks whether a status string names a known status
func IsValidStatus(status OrderStatus) bool {
	for _, s := range ValidStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the edge s -> target is in the allowed
// graph. Suspend/resume edges are not covered here; they depend on the
// order's saved previous status.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	allowed, ok := allowedTransitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}
