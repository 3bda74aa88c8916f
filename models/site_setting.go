package models

import "time"

// Setting keys used by the platform. Values are stored as strings and read
// through the typed services.Settings struct rather than ad hoc lookups.
const (
	SettingMinWithdrawalAmount = "min_withdrawal_amount"
	SettingMaxWithdrawalAmount = "max_withdrawal_amount"
)

// SiteSetting is a single key/value configuration row
type SiteSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the SiteSetting model
func (SiteSetting) TableName() string {
	return "site_settings"
}
