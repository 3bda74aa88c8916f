package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/craftyard/craftyard-api/models"
	"gorm.io/gorm"
)

// TransitionService validates and applies order status changes. It is the
// sole mutator of Order.Status: every accepted change commits the status
// write, the stage timestamp, and the history row in one transaction, and
// computes commission when the order completes.
type TransitionService interface {
	// Transition moves the order to target on behalf of actor. A nil actor
	// is a system action. The note is stored on the history row; for
	// suspension it doubles as the required suspension reason.
	Transition(orderID uint, target models.OrderStatus, actor *models.User, note string) (*models.Order, error)
}

type transitionService struct {
	db *gorm.DB
}

// NewTransitionService creates a transition service bound to a database
func NewTransitionService(db *gorm.DB) TransitionService {
	return &transitionService{db: db}
}

// transitionRoles maps each target status to the roles allowed to set it.
// An empty actor (system) is treated as models.RoleAdmin-equivalent only
// where "system" appears.
var transitionRoles = map[models.OrderStatus][]string{
	models.StatusAdminApproved:    {models.RoleAdmin},
	models.StatusSellerApproved:   {models.RoleSeller},
	models.StatusInProgress:       {models.RoleSeller},
	models.StatusReadyForDelivery: {models.RoleSeller},
	models.StatusOutForDelivery:   {models.RoleDelivery, models.RoleAdmin},
	models.StatusDelivered:        {models.RoleDelivery, models.RoleAdmin},
	models.StatusCompleted:        {models.RoleAdmin, "system"},
	models.StatusCancelled:        {models.RoleAdmin},
	models.StatusSuspended:        {models.RoleAdmin},
}

func (s *transitionService) Transition(orderID uint, target models.OrderStatus, actor *models.User, note string) (*models.Order, error) {
	if !models.IsValidStatus(target) {
		return nil, ErrValidation(fmt.Sprintf("unknown status %q", target))
	}

	var order models.Order
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("order")
			}
			return err
		}

		from := order.Status

		if from.IsTerminal() {
			return ErrAlreadyTerminal(from)
		}

		if err := validateEdge(&order, target); err != nil {
			return err
		}

		if err := validateActor(tx, &order, target, actor); err != nil {
			return err
		}

		// Rejection from the review stages must explain itself.
		if target == models.StatusCancelled &&
			(from == models.StatusPending || from == models.StatusAdminApproved) && note == "" {
			return ErrValidation("cancelling an order under review requires a reason note")
		}
		if target == models.StatusSuspended && note == "" {
			return ErrValidation("suspending an order requires a reason")
		}

		now := time.Now()
		order.Status = target
		applyStageTimestamp(&order, target, now)

		switch {
		case target == models.StatusSuspended:
			prev := from
			order.PreviousStatus = &prev
			order.SuspendedAt = &now
			order.SuspensionReason = &note
		case from == models.StatusSuspended:
			// Resume or cancel clears the suspension snapshot.
			order.PreviousStatus = nil
			order.SuspendedAt = nil
			order.SuspensionReason = nil
		}

		if target == models.StatusCompleted {
			if err := CalculateCommission(tx, &order); err != nil {
				return err
			}
		}

		if err := tx.Save(&order).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		history := models.OrderHistory{
			OrderID:    order.ID,
			FromStatus: from,
			ToStatus:   target,
			ActionType: models.ActionStatusChange,
			Note:       note,
		}
		if actor != nil {
			actorID := actor.ID
			history.ActorID = &actorID
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to append order history: %w", err)
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Notifications are fire-and-forget: failures are logged, never
	// surfaced, and never roll back the committed transition.
	go notifyTransition(&order, target)

	return &order, nil
}

// validateEdge checks the requested edge against the transition graph,
// including the suspend/resume edges that depend on order state.
func validateEdge(order *models.Order, target models.OrderStatus) error {
	from := order.Status

	if from == models.StatusSuspended {
		if target == models.StatusCancelled {
			return nil
		}
		if order.PreviousStatus != nil && target == *order.PreviousStatus {
			return nil
		}
		return ErrInvalidTransition(from, target)
	}

	if target == models.StatusSuspended {
		// Any non-terminal order may be suspended; terminal states were
		// rejected before this point.
		return nil
	}

	if !from.CanTransitionTo(target) {
		return ErrInvalidTransition(from, target)
	}
	return nil
}

// validateActor enforces role gates and ownership: sellers may only act on
// their own orders, delivery personnel only on orders assigned to them.
func validateActor(tx *gorm.DB, order *models.Order, target models.OrderStatus, actor *models.User) error {
	// Resuming a suspended order is admin-only regardless of target.
	if order.Status == models.StatusSuspended {
		if actor == nil || actor.Role != models.RoleAdmin {
			return ErrUnauthorizedActor(actorRole(actor), target)
		}
		return nil
	}

	allowed, ok := transitionRoles[target]
	if !ok {
		return ErrUnauthorizedActor(actorRole(actor), target)
	}

	role := actorRole(actor)
	permitted := false
	for _, r := range allowed {
		if r == role {
			permitted = true
			break
		}
	}
	if !permitted {
		return ErrUnauthorizedActor(role, target)
	}

	switch role {
	case models.RoleSeller:
		if actor.ID != order.SellerID {
			return ErrUnauthorizedActor(role, target)
		}
	case models.RoleDelivery:
		assigned, err := actorIsAssignedPersonnel(tx, order, actor)
		if err != nil {
			return err
		}
		if !assigned {
			return ErrUnauthorizedActor(role, target)
		}
	}

	return nil
}

// actorIsAssignedPersonnel reports whether the acting delivery user is
// linked to the order's pickup or delivery personnel record
func actorIsAssignedPersonnel(tx *gorm.DB, order *models.Order, actor *models.User) (bool, error) {
	ids := make([]uint, 0, 2)
	if order.PickupPersonID != nil {
		ids = append(ids, *order.PickupPersonID)
	}
	if order.DeliveryPersonID != nil {
		ids = append(ids, *order.DeliveryPersonID)
	}
	if len(ids) == 0 {
		return false, nil
	}

	var count int64
	err := tx.Model(&models.DeliveryPersonnel{}).
		Where("id IN ? AND user_id = ?", ids, actor.ID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyStageTimestamp sets the timestamp for the stage the order just
// reached, only on first reach so a resume never rewrites history
func applyStageTimestamp(order *models.Order, target models.OrderStatus, now time.Time) {
	switch target {
	case models.StatusAdminApproved:
		if order.AdminApprovedAt == nil {
			t := now
			order.AdminApprovedAt = &t
		}
	case models.StatusSellerApproved:
		if order.SellerApprovedAt == nil {
			t := now
			order.SellerApprovedAt = &t
		}
	case models.StatusInProgress:
		if order.WorkStartedAt == nil {
			t := now
			order.WorkStartedAt = &t
		}
	case models.StatusReadyForDelivery:
		if order.WorkCompletedAt == nil {
			t := now
			order.WorkCompletedAt = &t
		}
	case models.StatusDelivered:
		if order.DeliveredAt == nil {
			t := now
			order.DeliveredAt = &t
		}
	case models.StatusCompleted:
		if order.CompletedAt == nil {
			t := now
			order.CompletedAt = &t
		}
	case models.StatusCancelled:
		if order.CancelledAt == nil {
			t := now
			order.CancelledAt = &t
		}
	}
}

// notifyTransition dispatches status-change notifications to the order's
// parties. Runs outside the transaction; errors are logged only.
func notifyTransition(order *models.Order, target models.OrderStatus) {
	notifier := GetNotificationService()
	if notifier == nil {
		return
	}

	payload := map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"status":       target,
	}

	recipients := []uint{order.BuyerID, order.SellerID}
	for _, recipientID := range recipients {
		if err := notifier.Notify(recipientID, "order_status_changed", payload); err != nil {
			log.Printf("notification dispatch failed for user %d on order %d: %v", recipientID, order.ID, err)
		}
	}
}

// actorRole returns the actor's role, or "system" for nil actors
func actorRole(actor *models.User) string {
	if actor == nil {
		return "system"
	}
	return actor.Role
}
