package apihandlers

import (
	"slices"
	"time"

	"ahha/internal/app"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// NewRouter builds the gin engine with every route registered.
func NewRouter(a *app.App) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.Use(cors.New(corsConfig(a.Config.Server.AllowedOrigins)))

	h := &APIHandler{App: a}

	// Paths used by the browser extension and web frontend.
	router.GET("/ah-has/", h.ListSnippetsHandler)
	router.GET("/ah-has/:id/", h.GetSnippetHandler)
	router.POST("/suggest-tags/", h.SuggestTagsHandler)
	router.GET("/mock-chat/", h.MockChatHandler)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/snippets", h.CreateSnippetHandler)
		v1.GET("/snippets", h.ListSnippetsHandler)
		v1.GET("/snippets/:id", h.GetSnippetHandler)
		v1.DELETE("/snippets/:id", h.DeleteSnippetHandler)
		v1.POST("/suggest-tags", h.SuggestTagsHandler)
	}

	router.GET("/health", h.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// corsConfig allows credentials for the listed origins. An empty list or "*"
// allows any origin without credentials.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("HTTP request")
	}
}
