package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// handleHealth answers the connectivity probe. Clients measure the
// round-trip themselves; the server just echoes its clock.
func handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339Nano),
		})
	}
}
