package services

import (
	"testing"

	"github.com/craftyard/craftyard-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestPersonnel(t *testing.T, db *gorm.DB, status string, available bool) *models.DeliveryPersonnel {
	t.Helper()
	personnel := models.DeliveryPersonnel{
		Name:        "Courier " + GenerateOrderNumber(),
		Phone:       "+212600000000",
		Status:      status,
		IsAvailable: available,
	}
	require.NoError(t, db.Create(&personnel).Error)
	return &personnel
}

func TestAssignPickup(t *testing.T) {
	db := setupServiceTestDB(t)

	buyer := createTestUser(t, db, models.RoleBuyer)
	seller := createTestUser(t, db, models.RoleSeller)
	admin := createTestUser(t, db, models.RoleAdmin)
	personnel := createTestPersonnel(t, db, models.PersonnelActive, true)

	svc := NewAssignmentService(db)

	t.Run("assigns while work is in progress", func(t *testing.T) {
		order := createTestOrder(t, db, buyer, seller, models.StatusInProgress)

		updated, err := svc.AssignPickup(order.ID, personnel.ID, admin)
		require.NoError(t, err)
		require.NotNil(t, updated.PickupPersonID)
		assert.Equal(t, personnel.ID, *updated.PickupPersonID)

		var history models.OrderHistory
		require.NoError(t, db.Where("order_id = ?", order.ID).First(&history).Error)
		assert.Equal(t, models.ActionPickupAssigned, history.ActionType)
	})

	t.Run("second assignment loses", func(t *testing.T) {
		order := createTestOrder(t, db, buyer, seller, models.StatusReadyForDelivery)
		other := createTestPersonnel(t, db, models.PersonnelActive, true)

		_, err := svc.AssignPickup(order.ID, personnel.ID, admin)
		require.NoError(t, err)

		_, err = svc.AssignPickup(order.ID, other.ID, admin)
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, CodeAlreadyAssigned, svcErr.Code)

		// The first assignment survives intact.
		var reloaded models.Order
		require.NoError(t, db.First(&reloaded, order.ID).Error)
		require.NotNil(t, reloaded.PickupPersonID)
		assert.Equal(t, personnel.ID, *reloaded.PickupPersonID)
	})

	t.Run("rejects wrong order status", func(t *testing.T) {
		order := createTestOrder(t, db, buyer, seller, models.StatusPending)

		_, err := svc.AssignPickup(order.ID, personnel.ID, admin)
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, CodeInvalidTransition, svcErr.Code)
	})

	t.Run("rejects missing order", func(t *testing.T) {
		_, err := svc.AssignPickup(9999, personnel.ID, admin)
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, CodeNotFound, svcErr.Code)
	})
}

func TestAssignDelivery(t *testing.T) {
	db := setupServiceTestDB(t)

	buyer := createTestUser(t, db, models.RoleBuyer)
	seller := createTestUser(t, db, models.RoleSeller)
	admin := createTestUser(t, db, models.RoleAdmin)

	svc := NewAssignmentService(db)

	t.Run("assigns ready order to active available personnel", func(t *testing.T) {
		order := createTestOrder(t, db, buyer, seller, models.StatusReadyForDelivery)
		personnel := createTestPersonnel(t, db, models.PersonnelActive, true)

		updated, err := svc.AssignDelivery(order.ID, personnel.ID, admin)
		require.NoError(t, err)
		require.NotNil(t, updated.DeliveryPersonID)
		assert.Equal(t, personnel.ID, *updated.DeliveryPersonID)

		// Assignment does not consume the courier's availability.
		var reloaded models.DeliveryPersonnel
		require.NoError(t, db.First(&reloaded, personnel.ID).Error)
		assert.True(t, reloaded.IsAvailable)
	})

	t.Run("rejects before ready_for_delivery", func(t *testing.T) {
		order := createTestOrder(t, db, buyer, seller, models.StatusInProgress)
		personnel := createTestPersonnel(t, db, models.PersonnelActive, true)

		_, err := svc.AssignDelivery(order.ID, personnel.ID, admin)
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, CodeInvalidTransition, svcErr.Code)
	})

	t.Run("rejects inactive personnel", func(t *testing.T) {
		order := createTestOrder(t, db, buyer, seller, models.StatusReadyForDelivery)
		personnel := createTestPersonnel(t, db, models.PersonnelSuspended, true)

		_, err := svc.AssignDelivery(order.ID, personnel.ID, admin)
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, CodePersonnelUnavailable, svcErr.Code)
	})

	t.Run("rejects unavailable personnel", func(t *testing.T) {
		order := createTestOrder(t, db, buyer, seller, models.StatusReadyForDelivery)
		personnel := createTestPersonnel(t, db, models.PersonnelActive, false)

		_, err := svc.AssignDelivery(order.ID, personnel.ID, admin)
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, CodePersonnelUnavailable, svcErr.Code)
	})

	t.Run("blocks deposit-backed order without remaining payment proof", func(t *testing.T) {
		personnel := createTestPersonnel(t, db, models.PersonnelActive, true)
		order := models.Order{
			OrderNumber:     GenerateOrderNumber(),
			BuyerID:         buyer.ID,
			SellerID:        seller.ID,
			Status:          models.StatusReadyForDelivery,
			TotalPrice:      300,
			IsServiceOrder:  true,
			RequiresDeposit: true,
			DepositAmount:   100,
			DepositStatus:   models.DepositPaid,
		}
		require.NoError(t, db.Create(&order).Error)

		_, err := svc.AssignDelivery(order.ID, personnel.ID, admin)
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, CodePaymentIncomplete, svcErr.Code)

		// With the proof uploaded the same assignment goes through.
		proofKey := "payment-proofs/123_proof.png"
		require.NoError(t, db.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("remaining_payment_proof_key", proofKey).Error)

		updated, err := svc.AssignDelivery(order.ID, personnel.ID, admin)
		require.NoError(t, err)
		require.NotNil(t, updated.DeliveryPersonID)
	})
}

func TestBulkAssignDelivery(t *testing.T) {
	db := setupServiceTestDB(t)

	buyer := createTestUser(t, db, models.RoleBuyer)
	seller := createTestUser(t, db, models.RoleSeller)
	admin := createTestUser(t, db, models.RoleAdmin)
	personnel := createTestPersonnel(t, db, models.PersonnelActive, true)

	ready := createTestOrder(t, db, buyer, seller, models.StatusReadyForDelivery)
	notReady := createTestOrder(t, db, buyer, seller, models.StatusPending)
	taken := createTestOrder(t, db, buyer, seller, models.StatusReadyForDelivery)

	svc := NewAssignmentService(db)
	_, err := svc.AssignDelivery(taken.ID, personnel.ID, admin)
	require.NoError(t, err)

	results := svc.BulkAssignDelivery([]uint{ready.ID, notReady.ID, taken.ID, 9999}, personnel.ID, admin)
	require.Len(t, results, 4)

	byOrder := map[uint]BulkAssignResult{}
	for _, r := range results {
		byOrder[r.OrderID] = r
	}

	assert.True(t, byOrder[ready.ID].Assigned)
	assert.Empty(t, byOrder[ready.ID].Code)

	assert.False(t, byOrder[notReady.ID].Assigned)
	assert.Equal(t, CodeInvalidTransition, byOrder[notReady.ID].Code)

	assert.False(t, byOrder[taken.ID].Assigned)
	assert.Equal(t, CodeAlreadyAssigned, byOrder[taken.ID].Code)

	assert.False(t, byOrder[9999].Assigned)
	assert.Equal(t, CodeNotFound, byOrder[9999].Code)

	// The failures did not undo the successful item.
	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, ready.ID).Error)
	require.NotNil(t, reloaded.DeliveryPersonID)
	assert.Equal(t, personnel.ID, *reloaded.DeliveryPersonID)
}
