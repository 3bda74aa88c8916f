package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/craftyard/craftyard-api/models"
	"gorm.io/gorm"
)

// AssignmentService assigns pickup and delivery personnel to orders. Both
// single assignments rely on a conditional update (person column IS NULL)
// so that two concurrent requests can never both succeed; the loser sees
// zero rows affected and gets AlreadyAssigned.
type AssignmentService interface {
	AssignPickup(orderID, personnelID uint, assignedBy *models.User) (*models.Order, error)
	AssignDelivery(orderID, personnelID uint, assignedBy *models.User) (*models.Order, error)
	// BulkAssignDelivery applies AssignDelivery per order and reports each
	// outcome. A failure on one order never aborts the rest of the batch.
	BulkAssignDelivery(orderIDs []uint, personnelID uint, assignedBy *models.User) []BulkAssignResult
}

// BulkAssignResult is the per-order outcome of a bulk delivery assignment
type BulkAssignResult struct {
	OrderID  uint   `json:"order_id"`
	Assigned bool   `json:"assigned"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
}

type assignmentService struct {
	db *gorm.DB
}

// NewAssignmentService creates an assignment service bound to a database
func NewAssignmentService(db *gorm.DB) AssignmentService {
	return &assignmentService{db: db}
}

func (s *assignmentService) AssignPickup(orderID, personnelID uint, assignedBy *models.User) (*models.Order, error) {
	return s.assign(orderID, personnelID, assignedBy, pickupSlot)
}

func (s *assignmentService) AssignDelivery(orderID, personnelID uint, assignedBy *models.User) (*models.Order, error) {
	return s.assign(orderID, personnelID, assignedBy, deliverySlot)
}

func (s *assignmentService) BulkAssignDelivery(orderIDs []uint, personnelID uint, assignedBy *models.User) []BulkAssignResult {
	results := make([]BulkAssignResult, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		_, err := s.AssignDelivery(orderID, personnelID, assignedBy)
		result := BulkAssignResult{OrderID: orderID, Assigned: err == nil}
		if err != nil {
			var svcErr *ServiceError
			if errors.As(err, &svcErr) {
				result.Code = svcErr.Code
				result.Message = svcErr.Message
			} else {
				result.Code = CodeInfrastructure
				result.Message = err.Error()
			}
		}
		results = append(results, result)
	}
	return results
}

// assignmentSlot describes which personnel column an assignment targets
type assignmentSlot struct {
	kind       string
	column     string
	actionType string
	// statuses the order must be in for this slot to be assignable
	statuses []models.OrderStatus
}

var (
	// Pickup may be arranged while the seller is still finishing the work.
	pickupSlot = assignmentSlot{
		kind:       "pickup",
		column:     "pickup_person_id",
		actionType: models.ActionPickupAssigned,
		statuses:   []models.OrderStatus{models.StatusInProgress, models.StatusReadyForDelivery},
	}
	deliverySlot = assignmentSlot{
		kind:       "delivery",
		column:     "delivery_person_id",
		actionType: models.ActionDeliveryAssigned,
		statuses:   []models.OrderStatus{models.StatusReadyForDelivery},
	}
)

func (s *assignmentService) assign(orderID, personnelID uint, assignedBy *models.User, slot assignmentSlot) (*models.Order, error) {
	var order models.Order
	var personnel models.DeliveryPersonnel

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("order")
			}
			return err
		}

		statusOK := false
		for _, st := range slot.statuses {
			if order.Status == st {
				statusOK = true
				break
			}
		}
		if !statusOK {
			return ErrInvalidTransition(order.Status, fmt.Sprintf("%s assignment", slot.kind))
		}

		// A dispatched courier must not leave before the remaining balance
		// of a deposit-backed service order is proven paid.
		if slot.kind == "delivery" &&
			order.IsServiceOrder && order.RequiresDeposit &&
			order.DepositStatus == models.DepositPaid &&
			order.RemainingPaymentProofKey == nil {
			return ErrPaymentIncomplete("remaining payment proof is required before delivery dispatch")
		}

		if err := tx.First(&personnel, personnelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("delivery personnel")
			}
			return err
		}
		if personnel.Status != models.PersonnelActive {
			return ErrPersonnelUnavailable(fmt.Sprintf("personnel %q is %s", personnel.Name, personnel.Status))
		}
		if !personnel.IsAvailable {
			return ErrPersonnelUnavailable(fmt.Sprintf("personnel %q is not available", personnel.Name))
		}

		// Conditional update: only succeeds while the slot is still empty.
		res := tx.Model(&models.Order{}).
			Where(fmt.Sprintf("id = ? AND %s IS NULL", slot.column), orderID).
			Update(slot.column, personnelID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyAssigned(slot.kind)
		}

		history := models.OrderHistory{
			OrderID:    order.ID,
			FromStatus: order.Status,
			ToStatus:   order.Status,
			ActionType: slot.actionType,
			Note:       fmt.Sprintf("%s assigned to %s", slot.kind, personnel.Name),
		}
		if assignedBy != nil {
			actorID := assignedBy.ID
			history.ActorID = &actorID
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to append order history: %w", err)
		}

		return tx.First(&order, orderID).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	// Availability is intentionally not toggled here: personnel may carry
	// several orders at once. Admins manage availability explicitly.

	if notifier := GetNotificationService(); notifier != nil && personnel.UserID != nil {
		recipientID := *personnel.UserID
		go func() {
			payload := map[string]interface{}{
				"order_id":     order.ID,
				"order_number": order.OrderNumber,
				"role":         slot.kind,
			}
			if err := notifier.Notify(recipientID, "order_assigned", payload); err != nil {
				log.Printf("notification dispatch failed for personnel user %d on order %d: %v", recipientID, order.ID, err)
			}
		}()
	}

	return &order, nil
}
