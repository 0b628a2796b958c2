package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hward/assetdesk/internal/config"
	"github.com/hward/assetdesk/internal/models"
	"github.com/hward/assetdesk/internal/notify"
	"github.com/hward/assetdesk/internal/remind"
	"gorm.io/gorm"
)

type billRequest struct {
	Name         string    `json:"name" binding:"required"`
	Amount       float64   `json:"amount"`
	ReminderDate time.Time `json:"reminderDate" binding:"required"`
	Recurring    string    `json:"recurring"`
	Priority     string    `json:"priority"`
}

func handleBillList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bills []models.Bill
		if err := db.Order("reminder_date ASC").Find(&bills).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list bills"})
			return
		}
		c.JSON(http.StatusOK, bills)
	}
}

func handleBillCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req billRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Recurring == "" {
			req.Recurring = "none"
		}
		if req.Priority == "" {
			req.Priority = "normal"
		}

		bill := models.Bill{
			ID:           uuid.NewString(),
			Name:         req.Name,
			Amount:       req.Amount,
			ReminderDate: req.ReminderDate,
			Recurring:    req.Recurring,
			Priority:     req.Priority,
			Status:       "pending",
		}
		if err := db.Create(&bill).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create bill"})
			return
		}
		c.JSON(http.StatusCreated, bill)
	}
}

// handleBillPay marks a bill paid. A recurring bill immediately respawns
// as pending at the next cycle date.
func handleBillPay(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bill models.Bill
		if err := db.Where("id = ?", c.Param("id")).First(&bill).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "bill not found"})
			return
		}

		now := time.Now()
		err := db.Model(&bill).Updates(map[string]interface{}{
			"status":  "paid",
			"paid_at": now,
		}).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "pay bill"})
			return
		}

		var next *models.Bill
		switch bill.Recurring {
		case "monthly":
			next = respawnBill(bill, bill.ReminderDate.AddDate(0, 1, 0))
		case "yearly":
			next = respawnBill(bill, bill.ReminderDate.AddDate(1, 0, 0))
		}
		if next != nil {
			if err := db.Create(next).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "respawn recurring bill"})
				return
			}
		}

		db.Where("id = ?", bill.ID).First(&bill)
		resp := gin.H{"bill": bill}
		if next != nil {
			resp["next"] = next
		}
		c.JSON(http.StatusOK, resp)
	}
}

func respawnBill(b models.Bill, due time.Time) *models.Bill {
	return &models.Bill{
		ID:           uuid.NewString(),
		Name:         b.Name,
		Amount:       b.Amount,
		ReminderDate: due,
		Recurring:    b.Recurring,
		Priority:     b.Priority,
		Status:       "pending",
	}
}

func handleBillDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ?", c.Param("id")).Delete(&models.Bill{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete bill"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "bill not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
	}
}

func handleBillPendingCount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var count int64
		if err := db.Model(&models.Bill{}).Where("status = ?", "pending").Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "count pending"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"pending": count})
	}
}

// handleBillReports aggregates bill totals by status and priority.
func handleBillReports(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		type bucket struct {
			Key   string  `json:"key"`
			Count int64   `json:"count"`
			Total float64 `json:"total"`
		}

		var byStatus []bucket
		err := db.Model(&models.Bill{}).
			Select("status as key, COUNT(*) as count, COALESCE(SUM(amount),0) as total").
			Group("status").Order("status ASC").Scan(&byStatus).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "aggregate by status"})
			return
		}

		var byPriority []bucket
		err = db.Model(&models.Bill{}).Where("status = ?", "pending").
			Select("priority as key, COUNT(*) as count, COALESCE(SUM(amount),0) as total").
			Group("priority").Order("priority ASC").Scan(&byPriority).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "aggregate by priority"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"byStatus": byStatus, "byPriority": byPriority})
	}
}

// handleBillSendReminders triggers the reminder sweep on demand, outside
// the cron schedule.
func handleBillSendReminders(db *gorm.DB, cfg *config.Config, notifier *notify.Multi) gin.HandlerFunc {
	return func(c *gin.Context) {
		sweeper := &remind.Sweeper{DB: db, Notifier: notifier, LeadDays: cfg.Reminders.LeadDays}
		sent, err := sweeper.Run(time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "reminder sweep failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"sent": sent})
	}
}
