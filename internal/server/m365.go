package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hward/assetdesk/internal/config"
	"github.com/hward/assetdesk/internal/m365"
	"github.com/hward/assetdesk/internal/models"
	"gorm.io/gorm"
)

func handleM365Usage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := m365.LatestPerAccount(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load usage"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// handleM365Refresh ingests a batch of usage snapshots and stamps a sync
// marker. The snapshot payload comes from whatever pulls the tenant
// report, typically a scheduled export job posting here.
func handleM365Refresh(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rows []models.M365Usage
		if err := c.ShouldBindJSON(&rows); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		if err := m365.Ingest(db, rows, now); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ingest snapshots"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"accounts": len(rows), "syncedAt": now})
	}
}

func handleM365LastSync(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sync, err := m365.LastSync(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load sync marker"})
			return
		}
		if sync == nil {
			c.JSON(http.StatusOK, gin.H{"synced": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"synced": true, "syncedAt": sync.SyncedAt, "accounts": sync.Accounts})
	}
}

func handleM365HighUsage(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		threshold := cfg.M365.HighUsagePercent
		if v := c.Query("threshold"); v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil || parsed <= 0 || parsed > 100 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be a percentage"})
				return
			}
			threshold = parsed
		}

		rows, err := m365.HighUsage(db, threshold)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load high usage"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"threshold": threshold, "accounts": rows})
	}
}

func handleM365Inactive(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		days := cfg.M365.InactiveDays
		if v := c.Query("days"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
				return
			}
			days = parsed
		}

		rows, err := m365.Inactive(db, days, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load inactive accounts"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"days": days, "accounts": rows})
	}
}

func handleM365Trend(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := m365.Trend(db, c.Param("upn"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load trend"})
			return
		}
		if len(rows) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "no snapshots for account"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

func handleM365TopStorage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		n := 10
		if v := c.Query("n"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
				return
			}
			n = parsed
		}

		rows, err := m365.TopStorage(db, n)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load top storage"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}
