package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/auth"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/database"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/logger"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/repository"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/services"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/pkg/config"
)

// Deps bundles the wiring SetupRoutes needs
type Deps struct {
	DB       *database.DB
	Config   *config.Config
	Log      logger.Logger
	Repos    *repository.Repositories
	Enrich   *services.EnrichmentService
	Announce *services.AnnouncementService
	Pipeline *services.Pipeline
}

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, deps Deps) {
	authHandler := NewAuthHandler(deps.Config)
	eventsHandler := NewEventsHandler(deps.Repos, deps.Announce)
	enrichmentHandler := NewEnrichmentHandler(deps.Enrich, deps.Announce, deps.Pipeline)

	r.GET("/health", func(c *gin.Context) {
		if err := deps.DB.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	public := r.Group("/api/v1")
	{
		public.POST("/auth/login", authHandler.Login)
		public.POST("/auth/logout", authHandler.Logout)

		public.GET("/events", eventsHandler.List)
		public.GET("/tickers/:ticker/events", eventsHandler.ByTicker)
		public.GET("/events/:id", eventsHandler.Get)
		public.GET("/events/:id/filings", eventsHandler.Filings)
		public.GET("/events/:id/announcement", eventsHandler.Announcement)
	}

	protected := r.Group("/api/v1")
	protected.Use(auth.JWTMiddleware(deps.Config.JWTSecret))
	{
		protected.POST("/events", eventsHandler.Create)
		protected.POST("/events/:id/enrich", enrichmentHandler.Enrich)
		protected.POST("/events/:id/announcement", enrichmentHandler.DecideAnnouncement)
		protected.POST("/pipeline/run", enrichmentHandler.RunPipeline)
	}
}
