package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// addPingRoutes registers the unauthenticated health probe.
func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "pong"})
	})
}
