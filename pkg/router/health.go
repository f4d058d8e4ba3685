package router

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

// setupHealthRoutes registers health check endpoints
func (r *Router) setupHealthRoutes() {
	healthHandler := func(c *gin.Context) {
		dbStatus := "ok"
		if err := r.Container.DB.WithContext(c.Request.Context()).Exec("SELECT 1").Error; err != nil {
			dbStatus = err.Error()
			r.Logger.Error("database health check failed", "error", err)
		}

		assistantStatus := "ok"
		if r.Container.ModelClient == nil {
			assistantStatus = "not configured"
		}

		c.JSON(200, gin.H{
			"status":    "ok",
			"version":   os.Getenv("APP_VERSION"),
			"timestamp": time.Now().Format(time.RFC3339),
			"components": gin.H{
				"database":  dbStatus,
				"assistant": assistantStatus,
			},
		})
	}

	r.Engine.GET("/health", healthHandler)
	r.Engine.GET("/api/health", healthHandler)
}
