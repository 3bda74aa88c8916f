package models

import "time"

// Action types recorded in the order history log.
const (
	ActionStatusChange     = "status_change"
	ActionPickupAssigned   = "pickup_assigned"
	ActionDeliveryAssigned = "delivery_assigned"
)

// OrderHistory is an append-only audit record of an order event. Rows are
// only ever inserted; there is no update or delete path.
type OrderHistory struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	OrderID    uint        `gorm:"not null;index" json:"order_id"`
	Order      Order       `gorm:"foreignKey:OrderID" json:"-"`
	FromStatus OrderStatus `gorm:"not null" json:"from_status"`
	ToStatus   OrderStatus `gorm:"not null" json:"to_status"`
	ActorID    *uint       `gorm:"index" json:"actor_id"` // nil for system actions
	Actor      *User       `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	ActionType string      `gorm:"not null;default:'status_change'" json:"action_type"`
	Note       string      `gorm:"type:text" json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}

// TableName specifies the table name for the OrderHistory model
func (OrderHistory) TableName() string {
	return "order_histories"
}
