package models

import (
	"time"

	"gorm.io/gorm"
)

// Delivery personnel lifecycle states.
const (
	PersonnelActive    = "active"
	PersonnelInactive  = "inactive"
	PersonnelSuspended = "suspended"
)

// DeliveryPersonnel represents a courier who picks up goods from sellers
// and hands them off to buyers. Records are soft-deleted only; historical
// orders keep their references via SET NULL foreign keys.
type DeliveryPersonnel struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Phone       string `gorm:"not null" json:"phone"`
	Email       string `json:"email"`
	Status      string `gorm:"not null;default:'active'" json:"status"` // active, inactive, suspended
	IsAvailable bool   `gorm:"default:true" json:"is_available"`
	// UserID links the personnel record to its platform login, when one exists
	UserID      *uint          `gorm:"index" json:"user_id,omitempty"`
	CreatedByID uint           `gorm:"not null" json:"created_by_id"` // admin who registered them
	CreatedBy   User           `gorm:"foreignKey:CreatedByID" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the DeliveryPersonnel model
func (DeliveryPersonnel) TableName() string {
	return "delivery_personnel"
}

// IsValidPersonnelStatus checks whether a status string is a known
// personnel lifecycle state
func IsValidPersonnelStatus(status string) bool {
	switch status {
	case PersonnelActive, PersonnelInactive, PersonnelSuspended:
		return true
	}
	return false
}
