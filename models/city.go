package models

import (
	"time"

	"gorm.io/gorm"
)

// City holds per-city delivery and commission configuration. The commission
// percent is snapshotted into PlatformProfit at calculation time, so editing
// a city never rewrites historical profit records.
type City struct {
	ID                        uint           `gorm:"primaryKey" json:"id"`
	Name                      string         `gorm:"uniqueIndex;not null" json:"name"`
	DeliveryFee               float64        `gorm:"not null;default:0" json:"delivery_fee"`
	PlatformCommissionPercent float64        `gorm:"not null;default:0;check:platform_commission_percent >= 0 AND platform_commission_percent <= 100" json:"platform_commission_percent"`
	CreatedAt                 time.Time      `json:"created_at"`
	UpdatedAt                 time.Time      `json:"updated_at"`
	DeletedAt                 gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the City model
func (City) TableName() string {
	return "cities"
}
