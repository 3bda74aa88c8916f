package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/craftyard/craftyard-api/models"
	"github.com/craftyard/craftyard-api/services"
)

// UpdateWithdrawalBoundsRequest represents the request body for updating
// the site-wide withdrawal limits
type UpdateWithdrawalBoundsRequest struct {
	MinWithdrawalAmount *float64 `json:"min_withdrawal_amount" binding:"required,gte=0"`
	MaxWithdrawalAmount *float64 `json:"max_withdrawal_amount" binding:"required,gt=0"`
}

// GetWithdrawalBounds handles GET /api/v1/settings/withdrawal-bounds (admins only)
func GetWithdrawalBounds(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	settings, err := services.GetSettingsService().Load()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    settings,
	})
}

// UpdateWithdrawalBounds handles PUT /api/v1/settings/withdrawal-bounds (admins only)
func UpdateWithdrawalBounds(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	var req UpdateWithdrawalBoundsRequest
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

	settings, err := services.GetSettingsService().UpdateWithdrawalBounds(
		*req.MinWithdrawalAmount, *req.MaxWithdrawalAmount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    settings,
	})
}
