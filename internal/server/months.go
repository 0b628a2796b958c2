package server

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/hward/assetdesk/internal/billing"
	"github.com/hward/assetdesk/internal/models"
	"gorm.io/gorm"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type monthRequest struct {
	Month       string  `json:"month" binding:"required"` // YYYY-MM
	Provider    string  `json:"provider"`
	BasePlanGB  float64 `json:"basePlanGB"`
	BaseCost    float64 `json:"baseCost"`
	TotalUsedGB float64 `json:"totalUsedGB"`
	Notes       string  `json:"notes"`
}

type addonRequest struct {
	Name string  `json:"name" binding:"required"`
	GB   float64 `json:"gb"`
	Cost float64 `json:"cost"`
}

func handleMonthList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var months []models.InternetMonth
		if err := db.Preload("Addons").Order("month DESC").Find(&months).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list months"})
			return
		}
		c.JSON(http.StatusOK, billing.SummarizeAll(months))
	}
}

func handleMonthCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req monthRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !monthPattern.MatchString(req.Month) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
			return
		}

		var count int64
		db.Model(&models.InternetMonth{}).Where("month = ?", req.Month).Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "month already exists"})
			return
		}

		m := models.InternetMonth{
			Month:       req.Month,
			Provider:    req.Provider,
			BasePlanGB:  req.BasePlanGB,
			BaseCost:    req.BaseCost,
			TotalUsedGB: req.TotalUsedGB,
			Notes:       req.Notes,
		}
		if err := db.Create(&m).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create month"})
			return
		}
		c.JSON(http.StatusCreated, billing.Summarize(m))
	}
}

func handleMonthUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req monthRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var m models.InternetMonth
		err := db.Where("id = ?", c.Param("id")).First(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "month not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get month"})
			return
		}

		err = db.Model(&m).Updates(map[string]interface{}{
			"provider":      req.Provider,
			"base_plan_gb":  req.BasePlanGB,
			"base_cost":     req.BaseCost,
			"total_used_gb": req.TotalUsedGB,
			"notes":         req.Notes,
		}).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update month"})
			return
		}

		db.Preload("Addons").Where("id = ?", m.ID).First(&m)
		c.JSON(http.StatusOK, billing.Summarize(m))
	}
}

func handleMonthDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		if err := db.Where("month_id = ?", id).Delete(&models.InternetAddon{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete addons"})
			return
		}

		result := db.Where("id = ?", id).Delete(&models.InternetMonth{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete month"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "month not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	}
}

func handleMonthAddAddon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addonRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var m models.InternetMonth
		err := db.Where("id = ?", c.Param("id")).First(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "month not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get month"})
			return
		}

		addon := models.InternetAddon{
			MonthID: m.ID,
			Name:    req.Name,
			GB:      req.GB,
			Cost:    req.Cost,
		}
		if err := db.Create(&addon).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create addon"})
			return
		}

		db.Preload("Addons").Where("id = ?", m.ID).First(&m)
		c.JSON(http.StatusCreated, billing.Summarize(m))
	}
}
