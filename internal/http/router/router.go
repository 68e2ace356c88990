package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/markrenzo/portfolio-backend/internal/config"
	"github.com/markrenzo/portfolio-backend/internal/http/handlers"
	"github.com/markrenzo/portfolio-backend/internal/http/middleware"
	"github.com/markrenzo/portfolio-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	portfolioHandler *handlers.PortfolioHandler,
	chatHandler *handlers.ChatHandler,
	wsHandler *handlers.WSHandler,
	adminHandler *handlers.AdminHandler,
	adminAuth *service.AdminAuthService,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	api.GET("/health", healthHandler.Health)

	// Публичный контент портфолио
	api.GET("/identifiers", portfolioHandler.ListIdentifiers)
	api.GET("/portfolio/:identifier", portfolioHandler.GetItem)
	api.GET("/cards/:identifier", portfolioHandler.GetCard)
	api.GET("/work", portfolioHandler.ListWorkExperience)
	api.GET("/projects", portfolioHandler.ListProjects)
	api.GET("/tools", portfolioHandler.ListTools)
	api.GET("/skills", portfolioHandler.ListSkills)
	api.GET("/gallery", portfolioHandler.ListGallery)

	// Чат с ассистентом
	chatGroup := api.Group("/chat")
	chatGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		chatGroup.POST("", chatHandler.SendMessage)
		chatGroup.POST("/clear", chatHandler.ClearSession)
		chatGroup.GET("/:sessionID", chatHandler.GetTranscript)
	}
	api.GET("/ws", wsHandler.Handle)

	// Админка
	adminGroup := api.Group("/admin")
	adminGroup.POST("/login", middleware.RateLimitMiddleware(5, cfg.RateLimitPeriod), adminHandler.Login)

	protected := adminGroup.Group("")
	protected.Use(middleware.AdminAuthMiddleware(adminAuth))
	{
		protected.GET("/tables", adminHandler.ListTables)
		protected.POST("/upload", adminHandler.Upload)
		protected.GET("/:table", adminHandler.ListRows)
		protected.POST("/:table", adminHandler.CreateRow)
		protected.GET("/:table/:id", adminHandler.GetRow)
		protected.PUT("/:table/:id", adminHandler.UpdateRow)
		protected.DELETE("/:table/:id", adminHandler.DeleteRow)
	}

	return r
}
