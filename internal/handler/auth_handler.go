package handler

import (
	"net/http"

	"github.com/AbhishekS200607/quickaid/internal/model"
	"github.com/AbhishekS200607/quickaid/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles admin login and the moderation queue
type AdminHandler struct {
	auth     service.AuthService
	contacts service.ContactService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(auth service.AuthService, contacts service.ContactService) *AdminHandler {
	return &AdminHandler{auth: auth, contacts: contacts}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !bindJSON(c, &req, "Password required") {
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Password)
	if err != nil {
		respondError(c, err, "Failed to login")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// Logout is a no-op; tokens stay valid until they expire
func (h *AdminHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

func (h *AdminHandler) ListPending(c *gin.Context) {
	contacts, err := h.contacts.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve pending contacts")
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *AdminHandler) Approve(c *gin.Context) {
	if err := h.contacts.Approve(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to approve contact")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) Delete(c *gin.Context) {
	if err := h.contacts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete contact")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RegisterAdminRoutes registers /admin routes. Login has its own limiter;
// every other admin route shares adminLimiter, and pending/approve/delete
// additionally require authMW.
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup, loginLimiter, adminLimiter, authMW gin.HandlerFunc) {
	adminGroup := rg.Group("/admin")
	{
		adminGroup.POST("/login", loginLimiter, h.Login)
		adminGroup.POST("/logout", adminLimiter, h.Logout)

		protected := adminGroup.Group("", adminLimiter, authMW)
		protected.GET("/pending", h.ListPending)
		protected.POST("/approve/:id", h.Approve)
		protected.DELETE("/delete/:id", h.Delete)
	}
}
