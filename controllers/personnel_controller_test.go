package controllers

import (
	"net/http"
	"testing"

	"github.com/craftyard/craftyard-api/config"
	"github.com/craftyard/craftyard-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonnelEndpoints(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	admin := seedUser(t, db, "auth0|peadmin", models.RoleAdmin)
	seller := seedUser(t, db, "auth0|peseller", models.RoleSeller)
	courier := seedUser(t, db, "auth0|pecourier", models.RoleDelivery)

	t.Run("admin registers a courier", func(t *testing.T) {
		router := setupTestRouter()
		router.POST("/delivery-personnel", mockAuthMiddleware(admin.Auth0ID), CreatePersonnel)

		w := performJSON(t, router, http.MethodPost, "/delivery-personnel", map[string]interface{}{
			"name":    "Hassan",
			"phone":   "+212633333333",
			"email":   "hassan@example.com",
			"user_id": courier.ID,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		response := parseResponse(t, w)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "Hassan", data["name"])
		assert.Equal(t, "active", data["status"])
		assert.Equal(t, true, data["is_available"])
		assert.Equal(t, float64(admin.ID), data["created_by_id"])
	})

	t.Run("phone is required", func(t *testing.T) {
		router := setupTestRouter()
		router.POST("/delivery-personnel", mockAuthMiddleware(admin.Auth0ID), CreatePersonnel)

		w := performJSON(t, router, http.MethodPost, "/delivery-personnel", map[string]interface{}{
			"name": "No Phone",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-admin cannot register couriers", func(t *testing.T) {
		router := setupTestRouter()
		router.POST("/delivery-personnel", mockAuthMiddleware(seller.Auth0ID), CreatePersonnel)

		w := performJSON(t, router, http.MethodPost, "/delivery-personnel", map[string]interface{}{
			"name":  "Sneaky",
			"phone": "+212644444444",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin lists personnel with status filter", func(t *testing.T) {
		inactive := models.DeliveryPersonnel{
			Name: "Idle", Phone: "+212655555555",
			Status: models.PersonnelInactive, CreatedByID: admin.ID,
		}
		require.NoError(t, db.Create(&inactive).Error)

		router := setupTestRouter()
		router.GET("/delivery-personnel", mockAuthMiddleware(admin.Auth0ID), ListPersonnel)

		w := performJSON(t, router, http.MethodGet, "/delivery-personnel?status=inactive", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		response := parseResponse(t, w)
		data := response["data"].([]interface{})
		require.Len(t, data, 1)
		item := data[0].(map[string]interface{})
		assert.Equal(t, "Idle", item["name"])
	})

	t.Run("admin updates status", func(t *testing.T) {
		personnel := models.DeliveryPersonnel{
			Name: "Statusful", Phone: "+212666666666",
			Status: models.PersonnelActive, IsAvailable: true, CreatedByID: admin.ID,
		}
		require.NoError(t, db.Create(&personnel).Error)

		router := setupTestRouter()
		router.PATCH("/delivery-personnel/:id/status", mockAuthMiddleware(admin.Auth0ID), UpdatePersonnelStatus)

		w := performJSON(t, router, http.MethodPatch, "/delivery-personnel/"+itoa(personnel.ID)+"/status",
			map[string]interface{}{"status": "suspended"})
		assert.Equal(t, http.StatusOK, w.Code)

		var reloaded models.DeliveryPersonnel
		require.NoError(t, db.First(&reloaded, personnel.ID).Error)
		assert.Equal(t, models.PersonnelSuspended, reloaded.Status)

		// Unknown statuses are rejected.
		w = performJSON(t, router, http.MethodPatch, "/delivery-personnel/"+itoa(personnel.ID)+"/status",
			map[string]interface{}{"status": "retired"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("admin toggles availability", func(t *testing.T) {
		personnel := models.DeliveryPersonnel{
			Name: "Toggler", Phone: "+212677777777",
			Status: models.PersonnelActive, IsAvailable: true, CreatedByID: admin.ID,
		}
		require.NoError(t, db.Create(&personnel).Error)

		router := setupTestRouter()
		router.PATCH("/delivery-personnel/:id/availability", mockAuthMiddleware(admin.Auth0ID), UpdatePersonnelAvailability)

		w := performJSON(t, router, http.MethodPatch, "/delivery-personnel/"+itoa(personnel.ID)+"/availability",
			map[string]interface{}{"is_available": false})
		assert.Equal(t, http.StatusOK, w.Code)

		var reloaded models.DeliveryPersonnel
		require.NoError(t, db.First(&reloaded, personnel.ID).Error)
		assert.False(t, reloaded.IsAvailable)

		// Omitting the flag entirely is a validation error.
		w = performJSON(t, router, http.MethodPatch, "/delivery-personnel/"+itoa(personnel.ID)+"/availability",
			map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
