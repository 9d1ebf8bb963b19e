package api

import (
	"github.com/gin-gonic/gin"

	"github.com/baseplate/cms/internal/api/handlers"
	"github.com/baseplate/cms/internal/api/middleware"
	"github.com/baseplate/cms/internal/core/auth"
)

type Router struct {
	engine         *gin.Engine
	authMiddleware *middleware.AuthMiddleware
	authHandler    *handlers.AuthHandler
	modelHandler   *handlers.ModelHandler
	fieldHandler   *handlers.FieldHandler
	entryHandler   *handlers.EntryHandler
}

func NewRouter(
	authService *auth.Service,
	authHandler *handlers.AuthHandler,
	modelHandler *handlers.ModelHandler,
	fieldHandler *handlers.FieldHandler,
	entryHandler *handlers.EntryHandler,
) *Router {
	return &Router{
		authMiddleware: middleware.NewAuthMiddleware(authService),
		authHandler:    authHandler,
		modelHandler:   modelHandler,
		fieldHandler:   fieldHandler,
		entryHandler:   entryHandler,
	}
}

func (r *Router) Setup(mode string) *gin.Engine {
	gin.SetMode(mode)
	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	r.engine.Use(middleware.AuditMiddleware())
	r.engine.Use(middleware.Logger())
	r.engine.Use(middleware.ErrorHandler())

	r.setupRoutes()
	return r.engine
}

func (r *Router) setupRoutes() {
	api := r.engine.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes (public)
	api.POST("/auth/login", r.authHandler.Login)

	// Protected routes
	protected := api.Group("")
	protected.Use(r.authMiddleware.Authenticate())
	{
		protected.GET("/auth/me", r.authHandler.Me)

		// Field type catalog
		protected.GET("/field-types", r.fieldHandler.Types)
		protected.GET("/field-types/:type", r.fieldHandler.NewState)

		models := protected.Group("/models")
		{
			models.POST("", r.modelHandler.Create)
			models.GET("", r.modelHandler.List)
			models.GET("/:modelId", r.modelHandler.Get)
			models.PUT("/:modelId", r.modelHandler.Update)
			models.DELETE("/:modelId", r.modelHandler.Delete)

			// Fields
			models.POST("/:modelId/fields", r.fieldHandler.Create)
			models.GET("/:modelId/fields", r.fieldHandler.List)
			models.GET("/:modelId/fields/:fieldId", r.fieldHandler.Get)
			models.PUT("/:modelId/fields/:fieldId", r.fieldHandler.Update)
			models.DELETE("/:modelId/fields/:fieldId", r.fieldHandler.Delete)
			models.GET("/:modelId/operators/:ref", r.fieldHandler.Operators)

			// Entries
			models.POST("/:modelId/entries", r.entryHandler.Create)
			models.GET("/:modelId/entries", r.entryHandler.List)
			models.POST("/:modelId/entries/query", r.entryHandler.Query)
			models.GET("/:modelId/entries/:entryId", r.entryHandler.Get)
			models.PUT("/:modelId/entries/:entryId", r.entryHandler.Update)
			models.DELETE("/:modelId/entries/:entryId", r.entryHandler.Delete)
		}
	}
}
