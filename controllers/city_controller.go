package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/craftyard/craftyard-api/config"
	"github.com/craftyard/craftyard-api/models"
)

// CityRequest represents the request body for creating or updating a city
type CityRequest struct {
	Name                      string   `json:"name" binding:"required"`
	DeliveryFee               *float64 `json:"delivery_fee" binding:"required,gte=0"`
	PlatformCommissionPercent *float64 `json:"platform_commission_percent" binding:"required,gte=0,lte=100"`
}

// ListCities handles GET /api/v1/cities - lists delivery cities
func ListCities(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	var cities []models.City
	if err := config.GetDB().Order("name ASC").Find(&cities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list cities",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cities,
	})
}

// CreateCity handles POST /api/v1/cities (admins only)
func CreateCity(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	var req CityRequest
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

	city := models.City{
		Name:                      req.Name,
		DeliveryFee:               *req.DeliveryFee,
		PlatformCommissionPercent: *req.PlatformCommissionPercent,
	}
	if err := config.GetDB().Create(&city).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CITY_EXISTS",
				"message": "A city with this name already exists",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    city,
	})
}

// UpdateCity handles PUT /api/v1/cities/:id (admins only). Editing a city
// never rewrites historical profit records; those carry their own snapshot.
func UpdateCity(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	var req CityRequest
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
	var city models.City
	if err := db.First(&city, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CITY_NOT_FOUND",
				"message": "City not found",
			},
		})
		return
	}

	city.Name = req.Name
	city.DeliveryFee = *req.DeliveryFee
	city.PlatformCommissionPercent = *req.PlatformCommissionPercent
	if err := db.Save(&city).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update city",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    city,
	})
}

// DeleteCity handles DELETE /api/v1/cities/:id (admins only, soft delete)
func DeleteCity(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	db := config.GetDB()
	var city models.City
	if err := db.First(&city, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CITY_NOT_FOUND",
				"message": "City not found",
			},
		})
		return
	}

	if err := db.Delete(&city).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete city",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}
