package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/craftyard/craftyard-api/config"
	"github.com/craftyard/craftyard-api/models"
	"github.com/craftyard/craftyard-api/services"
)

// AssignPersonnelRequest represents the request body for an assignment
type AssignPersonnelRequest struct {
	PersonnelID uint `json:"personnel_id" binding:"required"`
}

// BulkAssignRequest represents the request body for bulk delivery assignment
type BulkAssignRequest struct {
	OrderIDs    []uint `json:"order_ids" binding:"required,min=1"`
	PersonnelID uint   `json:"personnel_id" binding:"required"`
}

// AssignPickup handles POST /api/v1/orders/:id/assign-pickup (admins only)
func AssignPickup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	var req AssignPersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	var orderID uint
	if !bindOrderID(c, &orderID) {
		return
	}

	service := services.NewAssignmentService(config.GetDB())
	order, err := service.AssignPickup(orderID, req.PersonnelID, user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// AssignDelivery handles POST /api/v1/orders/:id/assign-delivery (admins only)
func AssignDelivery(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	var req AssignPersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	var orderID uint
	if !bindOrderID(c, &orderID) {
		return
	}

	service := services.NewAssignmentService(config.GetDB())
	order, err := service.AssignDelivery(orderID, req.PersonnelID, user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// BulkAssignDelivery handles POST /api/v1/orders/bulk-assign-delivery
// (admins only). Failures are reported per order; the batch never aborts.
func BulkAssignDelivery(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	var req BulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	service := services.NewAssignmentService(config.GetDB())
	results := service.BulkAssignDelivery(req.OrderIDs, req.PersonnelID, user)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    results,
	})
}
