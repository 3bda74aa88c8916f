package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/craftyard/craftyard-api/models"
	"gorm.io/gorm"
)

// WithdrawalService handles seller payout requests: submission within the
// configured bounds and admin approval or rejection. Requests only move
// pending -> approved or pending -> rejected, never back.
type WithdrawalService interface {
	Submit(sellerID uint, amount float64, method, details string) (*models.WithdrawalRequest, error)
	Approve(requestID, adminID uint, notes string) (*models.WithdrawalRequest, error)
	Reject(requestID, adminID uint, reason string) (*models.WithdrawalRequest, error)
}

type withdrawalService struct {
	db *gorm.DB
}

// NewWithdrawalService creates a withdrawal service bound to a database
func NewWithdrawalService(db *gorm.DB) WithdrawalService {
	return &withdrawalService{db: db}
}

func (s *withdrawalService) Submit(sellerID uint, amount float64, method, details string) (*models.WithdrawalRequest, error) {
	settingsService := GetSettingsService()
	if settingsService == nil {
		return nil, errors.New("settings service not initialized")
	}
	settings, err := settingsService.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	// Out-of-range amounts are rejected before anything is persisted.
	if amount < settings.MinWithdrawalAmount || amount > settings.MaxWithdrawalAmount {
		return nil, ErrAmountOutOfRange(settings.MinWithdrawalAmount, settings.MaxWithdrawalAmount)
	}
	if method == "" {
		return nil, ErrValidation("payment method is required")
	}

	request := models.WithdrawalRequest{
		SellerID:       sellerID,
		Amount:         amount,
		PaymentMethod:  method,
		PaymentDetails: details,
		Status:         models.WithdrawalPending,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, fmt.Errorf("failed to create withdrawal request: %w", err)
	}

	return &request, nil
}

func (s *withdrawalService) Approve(requestID, adminID uint, notes string) (*models.WithdrawalRequest, error) {
	return s.process(requestID, adminID, models.WithdrawalApproved, notes)
}

func (s *withdrawalService) Reject(requestID, adminID uint, reason string) (*models.WithdrawalRequest, error) {
	if reason == "" {
		return nil, ErrValidation("rejecting a withdrawal requires a reason")
	}
	return s.process(requestID, adminID, models.WithdrawalRejected, reason)
}

// process applies the pending -> target transition with a conditional
// update, so a request can never be processed twice
func (s *withdrawalService) process(requestID, adminID uint, target, note string) (*models.WithdrawalRequest, error) {
	var request models.WithdrawalRequest

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("withdrawal request")
			}
			return err
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":          target,
			"processed_by_id": adminID,
			"processed_at":    now,
		}
		if target == models.WithdrawalApproved {
			updates["admin_notes"] = note
		} else {
			updates["rejection_reason"] = note
		}

		res := tx.Model(&models.WithdrawalRequest{}).
			Where("id = ? AND status = ?", requestID, models.WithdrawalPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed(request.Status)
		}

		return tx.First(&request, requestID).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	return &request, nil
}
