package handler

import (
	"net/http"

	"github.com/AbhishekS200607/quickaid/internal/middleware"
	"github.com/AbhishekS200607/quickaid/internal/service"
	"github.com/AbhishekS200607/quickaid/internal/utils"

	"github.com/gin-gonic/gin"
)

// RouterDeps carries everything the HTTP layer needs. Limiters are created
// by the caller so their state outlives any single router.
type RouterDeps struct {
	Contacts       service.ContactService
	Auth           service.AuthService
	JWT            *utils.JWTUtil
	AllowedOrigins []string
	TrustedProxies []string
	SubmitLimiter  *middleware.RateLimiter
	LoginLimiter   *middleware.RateLimiter
	AdminLimiter   *middleware.RateLimiter
	StaticDir      string
	MaxBodyBytes   int64 // zero means middleware.DefaultMaxBodyBytes
}

// NewRouter builds the gin engine with middleware and all routes
func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(deps.TrustedProxies); err != nil {
		return nil, err
	}
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS(deps.AllowedOrigins))

	contactHandler := NewContactHandler(deps.Contacts)
	adminHandler := NewAdminHandler(deps.Auth, deps.Contacts)

	apiGroup := router.Group("/api", middleware.BodyLimit(deps.MaxBodyBytes))
	contactHandler.RegisterContactRoutes(apiGroup, deps.SubmitLimiter.Middleware())
	adminHandler.RegisterAdminRoutes(apiGroup,
		deps.LoginLimiter.Middleware(),
		deps.AdminLimiter.Middleware(),
		middleware.AdminAuthMiddleware(deps.JWT),
	)

	router.GET("/health", Health(deps.Contacts))

	if deps.StaticDir != "" {
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(deps.StaticDir))))
	}
	return router, nil
}
