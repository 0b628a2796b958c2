package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hward/assetdesk/internal/models"
	"github.com/hward/assetdesk/internal/notify"
	"gorm.io/gorm"
)

type fingerprintRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Device     string `json:"device"`
	Location   string `json:"location"`
}

// handleFingerprintNotify records a fingerprint-device enrollment and
// sends the employee an attendance notice.
func handleFingerprintNotify(db *gorm.DB, notifier *notify.Multi) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req fingerprintRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var emp models.Employee
		err := db.Where("id = ?", req.EmployeeID).First(&emp).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get employee"})
			return
		}

		now := time.Now()
		assignment := models.FingerprintAssignment{
			EmployeeID: emp.ID,
			Device:     req.Device,
			Location:   req.Location,
			NotifiedAt: &now,
		}
		if err := db.Create(&assignment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "record assignment"})
			return
		}

		notifier.Send(notify.Notice{
			Subject: fmt.Sprintf("Fingerprint enrollment for %s", emp.Name),
			Body:    fmt.Sprintf("%s has been enrolled on %s at %s.", emp.Name, req.Device, req.Location),
		})

		db.Preload("Employee").Where("id = ?", assignment.ID).First(&assignment)
		c.JSON(http.StatusCreated, assignment)
	}
}
