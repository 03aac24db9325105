package handlers

import (
	"net/http"
	"time"

	intconfig "busticket/internal/config"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	dbState := "connected"
	status := http.StatusOK
	if err := intconfig.EnsureDB(); err != nil {
		dbState = "disconnected"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"status":    "ok",
		"service":   "bus-ticket-api",
		"database":  dbState,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
