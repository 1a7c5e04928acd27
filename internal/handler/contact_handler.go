package handler

import (
	"net/http"

	"github.com/AbhishekS200607/quickaid/internal/model"
	"github.com/AbhishekS200607/quickaid/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactHandler serves the public directory and the submission form
type ContactHandler struct {
	service service.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(s service.ContactService) *ContactHandler {
	return &ContactHandler{service: s}
}

// ListNumbers handles GET /api/numbers?city=
func (h *ContactHandler) ListNumbers(c *gin.Context) {
	contacts, err := h.service.ListPublic(c.Request.Context(), c.Query("city"))
	if err != nil {
		respondError(c, err, "Failed to retrieve contacts")
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// ListCities handles GET /api/cities
func (h *ContactHandler) ListCities(c *gin.Context) {
	cities, err := h.service.ListCities(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve cities")
		return
	}
	c.JSON(http.StatusOK, cities)
}

// Submit handles POST /api/submit
func (h *ContactHandler) Submit(c *gin.Context) {
	var req model.SubmitContactRequest
	if !bindJSON(c, &req, "Invalid request body") {
		return
	}

	if _, err := h.service.Submit(c.Request.Context(), req); err != nil {
		respondError(c, err, "Failed to submit contact")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Submission received. Pending verification.",
	})
}

// RegisterContactRoutes registers the public routes. submitLimiter guards
// POST /submit only.
func (h *ContactHandler) RegisterContactRoutes(rg *gin.RouterGroup, submitLimiter gin.HandlerFunc) {
	rg.GET("/numbers", h.ListNumbers)
	rg.GET("/cities", h.ListCities)
	rg.POST("/submit", submitLimiter, h.Submit)
}
