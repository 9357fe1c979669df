package httpapi

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dengas/devtimetracker/internal/keycloak"
	"github.com/dengas/devtimetracker/internal/stats"
	"github.com/dengas/devtimetracker/internal/users"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	DB          *gorm.DB
	Verifier    TokenVerifier
	Keycloak    *keycloak.Client
	CORSOrigins []string
}

// RegisterRoutes mounts the full API surface under /api/v1.
func RegisterRoutes(engine *gin.Engine, deps Deps) {
	engine.Use(CORSMiddleware(deps.CORSOrigins))

	authHandler := &AuthHandler{keycloak: deps.Keycloak}
	userHandler := &UserHandler{users: users.NewService(deps.DB)}
	statsHandler := &StatsHandler{service: stats.NewService(deps.DB)}
	healthHandler := &HealthHandler{db: deps.DB}

	api := engine.Group("/api/v1")
	api.GET("/health", healthHandler.Check)

	auth := api.Group("/auth")
	auth.GET("/login", authHandler.Login)
	auth.GET("/logout", authHandler.Logout)
	auth.POST("/code", authHandler.ExchangeCode)
	auth.POST("/token", authHandler.ExchangeCredentials)

	// The badge is embeddable in READMEs, so it stays public.
	api.GET("/stats/badge", statsHandler.Badge)

	protected := api.Group("", AuthMiddleware(deps.Verifier))

	user := protected.Group("/user")
	user.GET("/me", userHandler.Me)
	user.GET("/:id", userHandler.Get)

	projects := protected.Group("/stats")
	projects.GET("/projects", statsHandler.List)
	projects.POST("/projects", statsHandler.Create)
	projects.GET("/projects/:id", statsHandler.Get)
	projects.PUT("/projects/:id", statsHandler.Update)
	projects.PATCH("/projects/:id", statsHandler.Patch)
	projects.DELETE("/projects/:id", statsHandler.Delete)
	projects.GET("/projects/:id/files", statsHandler.ListFiles)
	projects.GET("/dashboard", statsHandler.Dashboard)
}
