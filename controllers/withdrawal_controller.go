package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/craftyard/craftyard-api/config"
	"github.com/craftyard/craftyard-api/models"
	"github.com/craftyard/craftyard-api/services"
)

// CreateWithdrawalRequest represents the request body for a withdrawal
type CreateWithdrawalRequest struct {
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod  string  `json:"payment_method" binding:"required"`
	PaymentDetails string  `json:"payment_details"`
}

// ProcessWithdrawalRequest represents the admin approve/reject body
type ProcessWithdrawalRequest struct {
	Notes  string `json:"notes"`
	Reason string `json:"reason"`
}

// CreateWithdrawal handles POST /api/v1/withdrawals - sellers request a payout
func CreateWithdrawal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleSeller) {
		return
	}

	var req CreateWithdrawalRequest
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

	service := services.NewWithdrawalService(config.GetDB())
	request, err := service.Submit(user.ID, req.Amount, req.PaymentMethod, req.PaymentDetails)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    request,
	})
}

// ListWithdrawals handles GET /api/v1/withdrawals - sellers see their own
// requests, admins see all
func ListWithdrawals(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleSeller, models.RoleAdmin) {
		return
	}

	db := config.GetDB()
	query := db.Preload("Seller").Order("created_at DESC")
	if user.Role == models.RoleSeller {
		query = query.Where("seller_id = ?", user.ID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.WithdrawalRequest
	if err := query.Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list withdrawal requests",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
	})
}

// ApproveWithdrawal handles POST /api/v1/withdrawals/:id/approve (admins only)
func ApproveWithdrawal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	var req ProcessWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
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

	var requestID uint
	if !bindOrderID(c, &requestID) {
		return
	}

	service := services.NewWithdrawalService(config.GetDB())
	request, err := service.Approve(requestID, user.ID, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    request,
	})
}

// RejectWithdrawal handles POST /api/v1/withdrawals/:id/reject (admins only)
func RejectWithdrawal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	var req ProcessWithdrawalRequest
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

	var requestID uint
	if !bindOrderID(c, &requestID) {
		return
	}

	service := services.NewWithdrawalService(config.GetDB())
	request, err := service.Reject(requestID, user.ID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    request,
	})
}
