package services

import (
	"fmt"
	"math"
	"time"

	"github.com/craftyard/craftyard-api/models"
	"gorm.io/gorm"
)

// CalculateCommission computes the platform's cut for a completed order and
// records an immutable PlatformProfit snapshot. It must run inside the same
// transaction as the completing status change; the unique index on
// platform_profits.order_id guarantees at most one record per order.
//
// Allocation model: the delivery fee is charged to the buyer on top of the
// order total, so the seller's net is the total minus commission only.
func CalculateCommission(tx *gorm.DB, order *models.Order) error {
	var percent, deliveryFee float64

	if order.CityID != nil {
		var city models.City
		if err := tx.First(&city, *order.CityID).Error; err != nil {
			return fmt.Errorf("failed to load city %d: %w", *order.CityID, err)
		}
		percent = city.PlatformCommissionPercent
		deliveryFee = city.DeliveryFee
	}

	amount := roundCurrency(order.TotalPrice * percent / 100)

	order.PlatformCommissionPercent = percent
	order.PlatformCommissionAmount = amount
	order.SellerNetAmount = roundCurrency(order.TotalPrice - amount)
	order.BuyerTotal = roundCurrency(order.TotalPrice + deliveryFee)

	sellerID := order.SellerID
	profit := models.PlatformProfit{
		OrderID:           order.ID,
		CityID:            order.CityID,
		SellerID:          &sellerID,
		Amount:            amount,
		CommissionPercent: percent,
		CalculatedOn:      time.Now(),
	}

	if err := tx.Create(&profit).Error; err != nil {
		return fmt.Errorf("failed to record platform profit: %w", err)
	}

	return nil
}

// roundCurrency rounds to two decimal places
func roundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}
