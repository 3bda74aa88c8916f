package services

import (
	"testing"

	"github.com/craftyard/craftyard-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupWithdrawalTest(t *testing.T) (*gorm.DB, WithdrawalService) {
	db := setupServiceTestDB(t)
	InitSettingsService(db, nil)

	require.NoError(t, db.Create(&models.SiteSetting{
		Key: models.SettingMinWithdrawalAmount, Value: "50",
	}).Error)
	require.NoError(t, db.Create(&models.SiteSetting{
		Key: models.SettingMaxWithdrawalAmount, Value: "500",
	}).Error)

	return db, NewWithdrawalService(db)
}

func TestWithdrawalSubmit(t *testing.T) {
	db, svc := setupWithdrawalTest(t)
	seller := createTestUser(t, db, models.RoleSeller)

	tests := []struct {
		name         string
		amount       float64
		method       string
		expectedCode string
	}{
		{"within bounds", 100, "bank_transfer", ""},
		{"at minimum", 50, "bank_transfer", ""},
		{"at maximum", 500, "bank_transfer", ""},
		{"below minimum", 49.99, "bank_transfer", CodeAmountOutOfRange},
		{"above maximum", 500.01, "bank_transfer", CodeAmountOutOfRange},
		{"zero amount", 0, "bank_transfer", CodeAmountOutOfRange},
		{"missing method", 100, "", CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var before int64
			db.Model(&models.WithdrawalRequest{}).Count(&before)

			request, err := svc.Submit(seller.ID, tt.amount, tt.method, "RIB 012345")

			if tt.expectedCode == "" {
				require.NoError(t, err)
				assert.Equal(t, models.WithdrawalPending, request.Status)
				assert.Equal(t, seller.ID, request.SellerID)
				assert.Equal(t, tt.amount, request.Amount)
				return
			}

			var svcErr *ServiceError
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, tt.expectedCode, svcErr.Code)

			// Rejected submissions persist nothing.
			var after int64
			db.Model(&models.WithdrawalRequest{}).Count(&after)
			assert.Equal(t, before, after)
		})
	}
}

func TestWithdrawalApprove(t *testing.T) {
	db, svc := setupWithdrawalTest(t)
	seller := createTestUser(t, db, models.RoleSeller)
	admin := createTestUser(t, db, models.RoleAdmin)

	request, err := svc.Submit(seller.ID, 120, "bank_transfer", "RIB 012345")
	require.NoError(t, err)

	approved, err := svc.Approve(request.ID, admin.ID, "paid via batch 42")
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalApproved, approved.Status)
	require.NotNil(t, approved.AdminNotes)
	assert.Equal(t, "paid via batch 42", *approved.AdminNotes)
	require.NotNil(t, approved.ProcessedByID)
	assert.Equal(t, admin.ID, *approved.ProcessedByID)
	assert.NotNil(t, approved.ProcessedAt)

	// A processed request cannot be processed again, in either direction.
	_, err = svc.Approve(request.ID, admin.ID, "again")
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeAlreadyProcessed, svcErr.Code)

	_, err = svc.Reject(request.ID, admin.ID, "changed my mind")
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeAlreadyProcessed, svcErr.Code)

	var reloaded models.WithdrawalRequest
	require.NoError(t, db.First(&reloaded, request.ID).Error)
	assert.Equal(t, models.WithdrawalApproved, reloaded.Status)
}

func TestWithdrawalReject(t *testing.T) {
	db, svc := setupWithdrawalTest(t)
	seller := createTestUser(t, db, models.RoleSeller)
	admin := createTestUser(t, db, models.RoleAdmin)

	request, err := svc.Submit(seller.ID, 120, "bank_transfer", "RIB 012345")
	require.NoError(t, err)

	// Rejection without a reason is invalid.
	_, err = svc.Reject(request.ID, admin.ID, "")
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeValidation, svcErr.Code)

	rejected, err := svc.Reject(request.ID, admin.ID, "account details do not match")
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "account details do not match", *rejected.RejectionReason)
}

func TestWithdrawalProcessNotFound(t *testing.T) {
	db, svc := setupWithdrawalTest(t)
	admin := createTestUser(t, db, models.RoleAdmin)

	_, err := svc.Approve(9999, admin.ID, "")
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeNotFound, svcErr.Code)
}
