package models

import (
	"time"

	"gorm.io/gorm"
)

// Deposit states for service orders that require an upfront payment.
const (
	DepositNone    = "none"
	DepositPending = "pending"
	DepositPaid    = "paid"
)

// Order represents a handcrafted-goods order in the system
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null" json:"order_number"`

	BuyerID  uint  `gorm:"not null;index" json:"buyer_id"`
	Buyer    User  `gorm:"foreignKey:BuyerID" json:"buyer"`
	SellerID uint  `gorm:"not null;index" json:"seller_id"`
	Seller   User  `gorm:"foreignKey:SellerID" json:"seller"`
	CityID   *uint `gorm:"index" json:"city_id"`
	City     *City `gorm:"foreignKey:CityID" json:"city,omitempty"`

	Status OrderStatus `gorm:"not null;default:'pending';index" json:"status"`
	// PreviousStatus holds the status the order was suspended from, so an
	// admin resume can restore it. Only set while Status is suspended.
	PreviousStatus   *OrderStatus `json:"previous_status,omitempty"`
	SuspendedAt      *time.Time   `json:"suspended_at,omitempty"`
	SuspensionReason *string      `json:"suspension_reason,omitempty"`

	TotalPrice    float64 `gorm:"not null;check:total_price >= 0" json:"total_price"`
	PaymentMethod string  `json:"payment_method"`
	PaymentStatus string  `gorm:"default:'unpaid'" json:"payment_status"`

	IsServiceOrder  bool     `gorm:"default:false" json:"is_service_order"`
	RequiresDeposit bool     `gorm:"default:false" json:"requires_deposit"`
	DepositAmount   float64  `json:"deposit_amount"`
	DepositStatus   string   `gorm:"default:'none'" json:"deposit_status"` // none, pending, paid
	DepositImageKey *string  `json:"deposit_image_key,omitempty"`
	DepositImageURL *string  `gorm:"-" json:"deposit_image_url,omitempty"` // computed, presigned URL
	// RemainingPaymentProofKey must only be set once DepositStatus is paid.
	RemainingPaymentProofKey *string `json:"remaining_payment_proof_key,omitempty"`
	RemainingPaymentProofURL *string `gorm:"-" json:"remaining_payment_proof_url,omitempty"` // computed, presigned URL

	PickupPersonID   *uint              `gorm:"index" json:"pickup_person_id"`
	PickupPerson     *DeliveryPersonnel `gorm:"foreignKey:PickupPersonID;constraint:OnDelete:SET NULL" json:"pickup_person,omitempty"`
	DeliveryPersonID *uint              `gorm:"index" json:"delivery_person_id"`
	DeliveryPerson   *DeliveryPersonnel `gorm:"foreignKey:DeliveryPersonID;constraint:OnDelete:SET NULL" json:"delivery_person,omitempty"`

	// Commission fields are computed once, when the order completes.
	PlatformCommissionPercent float64 `json:"platform_commission_percent"`
	PlatformCommissionAmount  float64 `json:"platform_commission_amount"`
	BuyerTotal                float64 `json:"buyer_total"`
	SellerNetAmount           float64 `json:"seller_net_amount"`

	// Stage timestamps, set the first time the order reaches each stage.
	AdminApprovedAt  *time.Time `json:"admin_approved_at,omitempty"`
	SellerApprovedAt *time.Time `json:"seller_approved_at,omitempty"`
	WorkStartedAt    *time.Time `json:"work_started_at,omitempty"`
	WorkCompletedAt  *time.Time `json:"work_completed_at,omitempty"`
	DeliveredAt      *time.Time `json:"delivered_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
