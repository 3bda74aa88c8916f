package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/craftyard/craftyard-api/config"
	"github.com/craftyard/craftyard-api/models"
	"github.com/craftyard/craftyard-api/services"
)

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	SellerID        uint    `json:"seller_id" binding:"required"`
	CityID          *uint   `json:"city_id"`
	TotalPrice      float64 `json:"total_price" binding:"required,gt=0"`
	PaymentMethod   string  `json:"payment_method" binding:"required"`
	IsServiceOrder  bool    `json:"is_service_order"`
	RequiresDeposit bool    `json:"requires_deposit"`
	DepositAmount   float64 `json:"deposit_amount"`
}

// UpdateOrderStatusRequest represents the request body for a status change
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// CreateOrder handles POST /api/v1/orders - creates a new order (buyers only)
func CreateOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleBuyer) {
		return
	}

	var req CreateOrderRequest
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

	// The seller must exist and actually be a seller
	var seller models.User
	if err := db.Where("id = ? AND role = ?", req.SellerID, models.RoleSeller).First(&seller).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SELLER_NOT_FOUND",
				"message": "Seller not found",
			},
		})
		return
	}

	if req.CityID != nil {
		var city models.City
		if err := db.First(&city, *req.CityID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CITY_NOT_FOUND",
					"message": "City not found",
				},
			})
			return
		}
	}

	depositStatus := models.DepositNone
	if req.RequiresDeposit {
		depositStatus = models.DepositPending
	}

	order := models.Order{
		OrderNumber:     services.GenerateOrderNumber(),
		BuyerID:         user.ID,
		SellerID:        req.SellerID,
		CityID:          req.CityID,
		Status:          models.StatusPending,
		TotalPrice:      req.TotalPrice,
		PaymentMethod:   req.PaymentMethod,
		IsServiceOrder:  req.IsServiceOrder,
		RequiresDeposit: req.RequiresDeposit,
		DepositAmount:   req.DepositAmount,
		DepositStatus:   depositStatus,
	}

	if err := db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	// Load the relationships to return complete data
	if err := db.Preload("Buyer").Preload("Seller").Preload("City").First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders - lists orders visible to the caller.
// Buyers see their own orders, sellers the orders placed with them, admins
// everything; delivery users see orders assigned to them.
func ListOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	query := db.Preload("Buyer").Preload("Seller").Preload("City").Order("orders.created_at DESC")

	switch user.Role {
	case models.RoleBuyer:
		query = query.Where("buyer_id = ?", user.ID)
	case models.RoleSeller:
		query = query.Where("seller_id = ?", user.ID)
	case models.RoleDelivery:
		query = query.
			Joins("LEFT JOIN delivery_personnel dp ON dp.id = orders.pickup_person_id OR dp.id = orders.delivery_person_id").
			Where("dp.user_id = ?", user.ID)
	case models.RoleAdmin:
		// admins see everything
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("orders.status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/orders/:id - fetches a single order
func GetOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.Preload("Buyer").Preload("Seller").Preload("City").
		Preload("PickupPerson").Preload("DeliveryPerson").
		First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if !canViewOrder(user, &order) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to view this order",
			},
		})
		return
	}

	attachImageURLs(&order)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status - applies a
// status transition on behalf of the caller
func UpdateOrderStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
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

	service := services.NewTransitionService(config.GetDB())
	order, err := service.Transition(orderID, req.Status, user, req.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrderHistory handles GET /api/v1/orders/:id/history - returns the
// order's audit trail
func ListOrderHistory(c *gin.Context) {
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

	if !canViewOrder(user, &order) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to view this order",
			},
		})
		return
	}

	var history []models.OrderHistory
	if err := db.Preload("Actor").Where("order_id = ?", order.ID).
		Order("created_at ASC").Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order history",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    history,
	})
}

// canViewOrder checks whether the user is a party to the order or an admin
func canViewOrder(user *models.User, order *models.Order) bool {
	switch user.Role {
	case models.RoleAdmin:
		return true
	case models.RoleBuyer:
		return order.BuyerID == user.ID
	case models.RoleSeller:
		return order.SellerID == user.ID
	case models.RoleDelivery:
		return isAssignedToOrder(user, order)
	}
	return false
}

// isAssignedToOrder checks whether the delivery user is linked to the
// order's pickup or delivery personnel
func isAssignedToOrder(user *models.User, order *models.Order) bool {
	db := config.GetDB()
	ids := make([]uint, 0, 2)
	if order.PickupPersonID != nil {
		ids = append(ids, *order.PickupPersonID)
	}
	if order.DeliveryPersonID != nil {
		ids = append(ids, *order.DeliveryPersonID)
	}
	if len(ids) == 0 {
		return false
	}

	var count int64
	if err := db.Model(&models.DeliveryPersonnel{}).
		Where("id IN ? AND user_id = ?", ids, user.ID).
		Count(&count).Error; err != nil {
		log.Printf("failed to check personnel assignment: %v", err)
		return false
	}
	return count > 0
}

// attachImageURLs fills in presigned URLs for the order's stored images
func attachImageURLs(order *models.Order) {
	imageService := services.GetImageService()
	if imageService == nil {
		return
	}

	if order.DepositImageKey != nil {
		if url, err := imageService.GetImageURL(*order.DepositImageKey); err == nil && url != "" {
			order.DepositImageURL = &url
		}
	}
	if order.RemainingPaymentProofKey != nil {
		if url, err := imageService.GetImageURL(*order.RemainingPaymentProofKey); err == nil && url != "" {
			order.RemainingPaymentProofURL = &url
		}
	}
}
