package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hward/assetdesk/internal/export"
	"github.com/hward/assetdesk/internal/models"
	"gorm.io/gorm"
)

type maintenanceRequest struct {
	AssetID      string    `json:"assetId" binding:"required"`
	EmployeeID   string    `json:"employeeId" binding:"required"`
	ReminderDate time.Time `json:"reminderDate" binding:"required"`
	Notes        string    `json:"notes"`
}

func handleMaintenanceList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reminders []models.MaintenanceReminder
		err := db.Preload("Asset").Preload("Employee").
			Order("reminder_date ASC").Find(&reminders).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list reminders"})
			return
		}
		c.JSON(http.StatusOK, reminders)
	}
}

func handleMaintenanceCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req maintenanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var count int64
		db.Model(&models.Asset{}).Where("id = ?", req.AssetID).Count(&count)
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
			return
		}
		db.Model(&models.Employee{}).Where("id = ?", req.EmployeeID).Count(&count)
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}

		rem := models.MaintenanceReminder{
			ID:           uuid.NewString(),
			AssetID:      req.AssetID,
			EmployeeID:   req.EmployeeID,
			ReminderDate: req.ReminderDate,
			Notes:        req.Notes,
		}
		if err := db.Create(&rem).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create reminder"})
			return
		}

		db.Preload("Asset").Preload("Employee").Where("id = ?", rem.ID).First(&rem)
		c.JSON(http.StatusCreated, rem)
	}
}

func handleMaintenanceReturn(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rem models.MaintenanceReminder
		err := db.Where("id = ?", c.Param("id")).First(&rem).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reminder not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get reminder"})
			return
		}

		if rem.Returned {
			c.JSON(http.StatusOK, gin.H{"reminder": rem, "alreadyReturned": true})
			return
		}

		err = db.Model(&rem).Updates(map[string]interface{}{
			"returned":    true,
			"returned_at": time.Now(),
		}).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "mark returned"})
			return
		}

		db.Preload("Asset").Preload("Employee").Where("id = ?", rem.ID).First(&rem)
		c.JSON(http.StatusOK, gin.H{"reminder": rem})
	}
}

func handleMaintenanceDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ?", c.Param("id")).Delete(&models.MaintenanceReminder{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete reminder"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "reminder not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
	}
}

// handleMaintenanceReport summarizes open and overdue reminders.
func handleMaintenanceReport(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var open, overdue, returned int64
		now := time.Now()

		if err := db.Model(&models.MaintenanceReminder{}).Where("returned = ?", false).Count(&open).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "count open"})
			return
		}
		db.Model(&models.MaintenanceReminder{}).
			Where("returned = ? AND reminder_date < ?", false, now).Count(&overdue)
		db.Model(&models.MaintenanceReminder{}).Where("returned = ?", true).Count(&returned)

		var pending []models.MaintenanceReminder
		db.Preload("Asset").Preload("Employee").
			Where("returned = ?", false).Order("reminder_date ASC").Find(&pending)

		c.JSON(http.StatusOK, gin.H{
			"open":     open,
			"overdue":  overdue,
			"returned": returned,
			"pending":  pending,
		})
	}
}

func handleMaintenanceExport(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reminders []models.MaintenanceReminder
		err := db.Preload("Asset").Preload("Employee").
			Order("reminder_date ASC").Find(&reminders).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list reminders"})
			return
		}

		f, err := export.Maintenance(reminders)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "build workbook"})
			return
		}
		buf, err := f.WriteToBuffer()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "write workbook"})
			return
		}

		c.Header("Content-Disposition", `attachment; filename="maintenance.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	}
}
