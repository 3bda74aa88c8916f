package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/craftyard/craftyard-api/config"
	"github.com/craftyard/craftyard-api/models"
	"github.com/craftyard/craftyard-api/services"
)

// UploadDepositImage handles POST /api/v1/orders/:id/deposit-image - the
// buyer attaches proof of the upfront deposit payment
func UploadDepositImage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	// Only the order's buyer (or an admin recording an offline payment)
	// may attach the deposit image
	if user.Role != models.RoleAdmin && order.BuyerID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to modify this order",
			},
		})
		return
	}

	if !order.RequiresDeposit {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DEPOSIT_NOT_REQUIRED",
				"message": "This order does not require a deposit",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "An image file is required",
			},
		})
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "Image storage is not configured",
			},
		})
		return
	}
	key, err := imageService.UploadImage(fileHeader, services.KeyPrefixDepositImage)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	updates := map[string]interface{}{
		"deposit_image_key": key,
		"deposit_status":    models.DepositPaid,
	}
	if err := db.Model(&order).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save deposit image",
			},
		})
		return
	}

	order.DepositImageKey = &key
	order.DepositStatus = models.DepositPaid
	attachImageURLs(&order)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UploadPaymentProof handles POST /api/v1/orders/:id/payment-proof - the
// buyer attaches proof that the remaining balance was paid. Only accepted
// once the deposit itself is paid.
func UploadPaymentProof(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if user.Role != models.RoleAdmin && order.BuyerID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to modify this order",
			},
		})
		return
	}

	// The remaining balance only exists once the deposit is settled
	if order.RequiresDeposit && order.DepositStatus != models.DepositPaid {
		respondServiceError(c, services.ErrPaymentIncomplete("deposit must be paid before a remaining payment proof is accepted"))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "An image file is required",
			},
		})
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "Image storage is not configured",
			},
		})
		return
	}
	key, err := imageService.UploadImage(fileHeader, services.KeyPrefixPaymentProof)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := db.Model(&order).Update("remaining_payment_proof_key", key).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save payment proof",
			},
		})
		return
	}

	order.RemainingPaymentProofKey = &key
	attachImageURLs(&order)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
