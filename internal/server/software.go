package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hward/assetdesk/internal/models"
	"gorm.io/gorm"
)

type softwareRequest struct {
	Name         string     `json:"name" binding:"required"`
	Vendor       string     `json:"vendor"`
	AssignedTo   string     `json:"assignedTo"`
	RenewalCycle string     `json:"renewalCycle"`
	AutoRenew    bool       `json:"autoRenew"`
	ExpiryDate   *time.Time `json:"expiryDate"`
	Notes        string     `json:"notes"`
}

func handleSoftwareList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var licenses []models.SoftwareLicense
		if err := db.Order("expiry_date ASC").Find(&licenses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list software"})
			return
		}
		c.JSON(http.StatusOK, licenses)
	}
}

func handleSoftwareCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req softwareRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.RenewalCycle == "" {
			req.RenewalCycle = "yearly"
		}

		lic := models.SoftwareLicense{
			ID:           uuid.NewString(),
			Name:         req.Name,
			Vendor:       req.Vendor,
			AssignedTo:   req.AssignedTo,
			RenewalCycle: req.RenewalCycle,
			AutoRenew:    req.AutoRenew,
			ExpiryDate:   req.ExpiryDate,
			Notes:        req.Notes,
		}
		if err := db.Create(&lic).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create software"})
			return
		}
		c.JSON(http.StatusCreated, lic)
	}
}

func handleSoftwareUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req softwareRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := db.Model(&models.SoftwareLicense{}).Where("id = ?", c.Param("id")).Updates(map[string]interface{}{
			"name":          req.Name,
			"vendor":        req.Vendor,
			"assigned_to":   req.AssignedTo,
			"renewal_cycle": req.RenewalCycle,
			"auto_renew":    req.AutoRenew,
			"expiry_date":   req.ExpiryDate,
			"notes":         req.Notes,
		})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update software"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "software not found"})
			return
		}

		var lic models.SoftwareLicense
		db.Where("id = ?", c.Param("id")).First(&lic)
		c.JSON(http.StatusOK, lic)
	}
}

func handleSoftwareDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ?", c.Param("id")).Delete(&models.SoftwareLicense{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete software"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "software not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
	}
}
