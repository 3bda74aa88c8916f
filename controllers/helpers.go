package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/craftyard/craftyard-api/config"
	"github.com/craftyard/craftyard-api/middleware"
	"github.com/craftyard/craftyard-api/models"
	"github.com/craftyard/craftyard-api/services"
	"github.com/craftyard/craftyard-api/utils"
)

// currentUser resolves the authenticated user from the JWT subject. On
// failure it writes the error response and returns ok=false; callers just
// return.
func currentUser(c *gin.Context) (*models.User, bool) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User profile not found. Please create a profile first.",
			},
		})
		return nil, false
	}

	return &user, true
}

// requireRole checks the user's role and writes a 403 response when it
// doesn't match any of the given roles
func requireRole(c *gin.Context, user *models.User, roles ...string) bool {
	for _, role := range roles {
		if user.Role == role {
			return true
		}
	}
	c.JSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "FORBIDDEN",
			"message": "You do not have permission to perform this action",
		},
	})
	return false
}

// bindOrderID parses the :id URL parameter. On failure it writes the error
// response and returns false.
func bindOrderID(c *gin.Context, out *uint) bool {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid ID parameter",
			},
		})
		return false
	}
	*out = uint(id)
	return true
}

// respondServiceError maps a service-layer error to an HTTP response
func respondServiceError(c *gin.Context, err error) {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		c.JSON(statusForCode(svcErr.Code), gin.H{
			"success": false,
			"error": gin.H{
				"code":    svcErr.Code,
				"message": svcErr.Message,
			},
		})
		return
	}

	var uploadErr *utils.FileUploadError
	if errors.As(err, &uploadErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    uploadErr.Code,
				"message": uploadErr.Message,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    services.CodeInfrastructure,
			"message": "An internal error occurred. Please retry.",
		},
	})
}

// statusForCode maps service error codes to HTTP status codes
func statusForCode(code string) int {
	switch code {
	case services.CodeNotFound:
		return http.StatusNotFound
	case services.CodeUnauthorizedActor:
		return http.StatusForbidden
	case services.CodeValidation, services.CodeAmountOutOfRange:
		return http.StatusBadRequest
	case services.CodeInvalidTransition, services.CodeAlreadyTerminal,
		services.CodeAlreadyAssigned, services.CodePaymentIncomplete,
		services.CodeAlreadyProcessed, services.CodePersonnelUnavailable:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
