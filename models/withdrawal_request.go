package models

import (
	"time"

	"gorm.io/gorm"
)

// Withdrawal request states. Requests only ever move pending -> approved
// or pending -> rejected, never back.
const (
	WithdrawalPending  = "pending"
	WithdrawalApproved = "approved"
	WithdrawalRejected = "rejected"
)

// WithdrawalRequest represents a seller's request to pay out earned funds
type WithdrawalRequest struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	SellerID       uint           `gorm:"not null;index" json:"seller_id"`
	Seller         User           `gorm:"foreignKey:SellerID" json:"seller"`
	Amount         float64        `gorm:"not null" json:"amount"`
	PaymentMethod  string         `gorm:"not null" json:"payment_method"`
	PaymentDetails string         `gorm:"type:text" json:"payment_details"`
	Status         string         `gorm:"not null;default:'pending';index" json:"status"` // pending, approved, rejected
	ProcessedByID  *uint          `json:"processed_by_id"`
	ProcessedBy    *User          `gorm:"foreignKey:ProcessedByID" json:"processed_by,omitempty"`
	ProcessedAt    *time.Time     `json:"processed_at"`
	AdminNotes     *string        `json:"admin_notes,omitempty"`
	RejectionReason *string       `json:"rejection_reason,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the WithdrawalRequest model
func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}
