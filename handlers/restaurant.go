package handlers

import (
	"net/http"

	"lunch-voting-api/models"
	"lunch-voting-api/store"

	"github.com/gin-gonic/gin"
)

// ── Restaurant Management ────────────────────────────────────────────────────

type CreateRestaurantRequest struct {
	Name      string `json:"name" binding:"required,max=255"`
	ContactNo string `json:"contact_no" binding:"max=32"`
	Address   string `json:"address"`
}

// CreateRestaurant lets staff register a restaurant that can upload menus
func (h *Handler) CreateRestaurant(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid restaurant data.", bindingErrors(err))
		return
	}

	restaurant := models.Restaurant{
		Name:      req.Name,
		ContactNo: req.ContactNo,
		Address:   req.Address,
		CreatedBy: c.GetString("username"),
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&restaurant).Error; err != nil {
		if store.IsUniqueViolation(err) {
			fail(c, http.StatusBadRequest, "restaurant with this name already exists.", gin.H{"name": "restaurant with this name already exists."})
			return
		}
		h.internalError(c, "create restaurant", err)
		return
	}
	ok(c, http.StatusCreated, "Restaurant successfully created.", restaurant)
}

// ListRestaurants returns every restaurant, newest first (public)
func (h *Handler) ListRestaurants(c *gin.Context) {
	restaurants := []models.Restaurant{}
	if err := h.db.WithContext(c.Request.Context()).Order("id DESC").Find(&restaurants).Error; err != nil {
		h.internalError(c, "list restaurants", err)
		return
	}
	ok(c, http.StatusOK, "success", restaurants)
}
