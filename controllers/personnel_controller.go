package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/craftyard/craftyard-api/config"
	"github.com/craftyard/craftyard-api/models"
)

// CreatePersonnelRequest represents the request body for registering a courier
type CreatePersonnelRequest struct {
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone" binding:"required"`
	Email  string `json:"email" binding:"omitempty,email"`
	UserID *uint  `json:"user_id"`
}

// UpdatePersonnelStatusRequest represents the status-change body
type UpdatePersonnelStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePersonnelAvailabilityRequest represents the availability-toggle body
type UpdatePersonnelAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// ListPersonnel handles GET /api/v1/delivery-personnel (admins only)
func ListPersonnel(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	query := config.GetDB().Order("name ASC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var personnel []models.DeliveryPersonnel
	if err := query.Find(&personnel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list delivery personnel",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    personnel,
	})
}

// CreatePersonnel handles POST /api/v1/delivery-personnel (admins only)
func CreatePersonnel(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	var req CreatePersonnelRequest
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

	personnel := models.DeliveryPersonnel{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Status:      models.PersonnelActive,
		IsAvailable: true,
		UserID:      req.UserID,
		CreatedByID: user.ID,
	}
	if err := config.GetDB().Create(&personnel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create delivery personnel",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    personnel,
	})
}

// UpdatePersonnelStatus handles PATCH /api/v1/delivery-personnel/:id/status
// (admins only). Personnel are never hard-deleted; deactivate or suspend
// instead, so historical orders keep their references.
func UpdatePersonnelStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	var req UpdatePersonnelStatusRequest
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

	if !models.IsValidPersonnelStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Status must be one of: active, inactive, suspended",
			},
		})
		return
	}

	db := config.GetDB()
	var personnel models.DeliveryPersonnel
	if err := db.First(&personnel, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PERSONNEL_NOT_FOUND",
				"message": "Delivery personnel not found",
			},
		})
		return
	}

	personnel.Status = req.Status
	if err := db.Save(&personnel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update personnel status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    personnel,
	})
}

// UpdatePersonnelAvailability handles
// PATCH /api/v1/delivery-personnel/:id/availability (admins only)
func UpdatePersonnelAvailability(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	var req UpdatePersonnelAvailabilityRequest
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

	db := config.GetDB()
	var personnel models.DeliveryPersonnel
	if err := db.First(&personnel, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PERSONNEL_NOT_FOUND",
				"message": "Delivery personnel not found",
			},
		})
		return
	}

	personnel.IsAvailable = *req.IsAvailable
	if err := db.Save(&personnel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update personnel availability",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    personnel,
	})
}
