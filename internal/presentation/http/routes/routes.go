package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robomation/roboquote-api/internal/config"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	domainRepo "github.com/robomation/roboquote-api/internal/domain/repository"
	"github.com/robomation/roboquote-api/internal/presentation/http/handler"
	"github.com/robomation/roboquote-api/internal/presentation/http/middleware"
	"github.com/robomation/roboquote-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Quotation *handler.QuotationHandler
	Component *handler.ComponentHandler
	Assembly  *handler.AssemblyHandler
	Customer  *handler.CustomerHandler
	Settings  *handler.SettingsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	TeamRepo   domainRepo.TeamRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication + team scope required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.TeamMiddleware(deps.TeamRepo))

		// Per-team rate limiter
		rateLimiter := middleware.NewTeamRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Auth/Profile routes
	protected.GET("/auth/me", h.Auth.Me)

	// Quotations
	registerQuotationRoutes(protected, h)

	// Components
	registerComponentRoutes(protected, h)

	// Assemblies
	registerAssemblyRoutes(protected, h)

	// Customers
	registerCustomerRoutes(protected, h)

	// Settings, rates, and audit
	registerSettingsRoutes(protected, h)
}

func registerQuotationRoutes(protected *gin.RouterGroup, h *Handlers) {
	quotations := protected.Group("/quotations")
	{
		quotations.GET("", h.Quotation.List)
		quotations.POST("", h.Quotation.Create)
		quotations.GET("/:id", h.Quotation.Get)
		quotations.PUT("/:id", h.Quotation.Update)
		quotations.DELETE("/:id", h.Quotation.Delete)
		quotations.PUT("/:id/status", h.Quotation.UpdateStatus)
		quotations.PUT("/:id/parameters", h.Quotation.UpdateParameters)
		quotations.POST("/:id/recalculate", h.Quotation.Recalculate)
		quotations.GET("/:id/export.xlsx", h.Quotation.Export)

		quotations.POST("/:id/systems", h.Quotation.AddSystem)
		quotations.PUT("/:id/systems/reorder", h.Quotation.ReorderSystems)
		quotations.PUT("/:id/systems/:systemId", h.Quotation.UpdateSystem)
		quotations.DELETE("/:id/systems/:systemId", h.Quotation.DeleteSystem)

		quotations.POST("/:id/systems/:systemId/items", h.Quotation.AddItem)
		quotations.PUT("/:id/items/:itemId", h.Quotation.UpdateItem)
		quotations.DELETE("/:id/items/:itemId", h.Quotation.DeleteItem)
	}
}

func registerComponentRoutes(protected *gin.RouterGroup, h *Handlers) {
	components := protected.Group("/components")
	{
		components.GET("", h.Component.List)
		components.POST("", h.Component.Create)
		components.GET("/:id", h.Component.Get)
		components.PUT("/:id", h.Component.Update)
		components.DELETE("/:id", h.Component.Delete)

		// Bulk operations run under a durable marker so the activity log
		// records one summary instead of a per-row flood
		components.POST("/bulk-delete", h.Component.BulkDelete)
		components.POST("/apply-rates", middleware.RequireRole(entity.RoleAdmin), h.Component.ApplyRates)
	}
}

func registerAssemblyRoutes(protected *gin.RouterGroup, h *Handlers) {
	assemblies := protected.Group("/assemblies")
	{
		assemblies.GET("", h.Assembly.List)
		assemblies.POST("", h.Assembly.Create)
		assemblies.GET("/:id", h.Assembly.Get)
		assemblies.PUT("/:id", h.Assembly.Update)
		assemblies.DELETE("/:id", h.Assembly.Delete)
		assemblies.GET("/:id/cost", h.Assembly.Cost)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerSettingsRoutes(protected *gin.RouterGroup, h *Handlers) {
	settings := protected.Group("/settings")
	{
		settings.GET("/rates", h.Settings.GetRates)
		settings.PUT("/rates", middleware.RequireRole(entity.RoleAdmin), h.Settings.UpdateRates)
		settings.GET("/team", h.Settings.GetTeamSettings)
		settings.PUT("/team", middleware.RequireRole(entity.RoleAdmin), h.Settings.UpdateTeamSettings)
		settings.POST("/bulk-markers/purge", middleware.RequireRole(entity.RoleAdmin), h.Settings.PurgeExpiredMarkers)
	}

	protected.GET("/activity", h.Settings.ListActivity)
}
