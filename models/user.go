package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles a user can hold on the platform.
const (
	RoleBuyer    = "buyer"
	RoleSeller   = "seller"
	RoleAdmin    = "admin"
	RoleDelivery = "delivery"
)

// User represents a platform user (buyer, seller, admin, or delivery person)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Auth0ID   string         `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string         `json:"phone"`
	Role      string         `gorm:"not null;default:'buyer'" json:"role"` // buyer, seller, admin, delivery
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsValidRole checks whether a role string is one of the known roles
func IsValidRole(role string) bool {
	switch role {
	case RoleBuyer, RoleSeller, RoleAdmin, RoleDelivery:
		return true
	}
	return false
}
