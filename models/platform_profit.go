package models

import "time"

// PlatformProfit records the commission the platform earned on a completed
// order. Created exactly once per order (unique OrderID) and never mutated.
// CommissionPercent is a snapshot of the city's percent at calculation time.
type PlatformProfit struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	OrderID           uint      `gorm:"uniqueIndex;not null" json:"order_id"`
	Order             Order     `gorm:"foreignKey:OrderID" json:"-"`
	CityID            *uint     `gorm:"index" json:"city_id"`
	SellerID          *uint     `gorm:"index" json:"seller_id"`
	Amount            float64   `gorm:"not null" json:"amount"`
	CommissionPercent float64   `gorm:"not null" json:"commission_percent"`
	CalculatedOn      time.Time `gorm:"not null" json:"calculated_on"`
}

// TableName specifies the table name for the PlatformProfit model
func (PlatformProfit) TableName() string {
	return "platform_profits"
}
