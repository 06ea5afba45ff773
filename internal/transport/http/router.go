package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/internal/transport/http/middleware"
)

// NewRouter wires the REST endpoints and mounts ws at /ws.
func NewRouter(cfg *config.Config, sm *game.SessionManager, ws http.HandlerFunc) *gin.Engine {
	gamesHandler := NewGamesHandler(sm)
	analyzeHandler := NewAnalyzeHandler(cfg.MaxSearchDepth)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/presets", PresetsHandler(cfg))
		api.POST("/analyze", analyzeHandler.Analyze)
		api.GET("/games", gamesHandler.GetActiveGames)
	}

	// WebSocket Route
	router.GET("/ws", gin.WrapF(ws))

	return router
}
