package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hward/assetdesk/internal/config"
	"github.com/hward/assetdesk/internal/models"
	"github.com/hward/assetdesk/internal/qr"
	"gorm.io/gorm"
)

type repairRequest struct {
	AssetID string `json:"assetId" binding:"required"`
	Vendor  string `json:"vendor" binding:"required"`
	Reason  string `json:"reason"`
	Notes   string `json:"notes"`
}

func handleRepairList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Model(&models.Repair{})
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}

		var repairs []models.Repair
		if err := q.Order("dispatch_date DESC").Find(&repairs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list repairs"})
			return
		}
		c.JSON(http.StatusOK, repairs)
	}
}

func handleRepairGet(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var repair models.Repair
		err := db.Where("id = ?", c.Param("id")).First(&repair).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "repair not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get repair"})
			return
		}
		c.JSON(http.StatusOK, repair)
	}
}

// handleRepairCreate dispatches an asset for repair: mints the record ID,
// gate-pass number and QR payload, and moves the asset into repair status.
func handleRepairCreate(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req repairRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var asset models.Asset
		err := db.Where("id = ?", req.AssetID).First(&asset).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get asset"})
			return
		}

		id, err := qr.GenerateRepairID()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "mint repair id"})
			return
		}
		now := time.Now()
		gatePass, err := qr.GatePassNumber(now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "mint gate pass"})
			return
		}
		qrURI, err := qr.DataURI(qr.ReturnURL(cfg.Server.PublicURL, id))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "encode qr"})
			return
		}

		repair := models.Repair{
			ID:             id,
			AssetID:        asset.ID,
			AssetName:      asset.Name,
			Vendor:         req.Vendor,
			Reason:         req.Reason,
			Status:         "dispatched",
			GatePassNumber: gatePass,
			QRCode:         qrURI,
			DispatchDate:   now,
			Notes:          req.Notes,
		}
		if err := db.Create(&repair).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create repair"})
			return
		}

		if err := db.Model(&asset).Update("status", "repair").Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update asset status"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"repair": repair})
	}
}

// handleRepairReturn marks a dispatched record returned. The transition
// is one-way: repeating the call on a returned record succeeds without
// changing anything, so scan and manual paths can safely race the
// operator's retries.
func handleRepairReturn(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var repair models.Repair
		err := db.Where("id = ?", c.Param("id")).First(&repair).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "repair not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get repair"})
			return
		}

		if repair.Status == "returned" {
			c.JSON(http.StatusOK, gin.H{"repair": repair, "alreadyReturned": true})
			return
		}

		updates := map[string]interface{}{
			"status":      "returned",
			"return_date": time.Now(),
		}
		if notes := c.PostForm("notes"); notes != "" {
			updates["notes"] = notes
		}

		if file, err := c.FormFile("proofImage"); err == nil && file != nil {
			dir := filepath.Join(cfg.Storage.UploadDir, "repairs")
			if err := os.MkdirAll(dir, 0o755); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "prepare upload dir"})
				return
			}
			dest := filepath.Join(dir, fmt.Sprintf("%s%s", repair.ID, filepath.Ext(file.Filename)))
			if err := c.SaveUploadedFile(file, dest); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "save proof image"})
				return
			}
			updates["proof_image"] = dest
		}

		if err := db.Model(&repair).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "mark returned"})
			return
		}

		// The asset comes back into circulation unless someone holds it.
		err = db.Model(&models.Asset{}).
			Where("id = ? AND assigned_to_id IS NULL", repair.AssetID).
			Update("status", "available").Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update asset status"})
			return
		}

		db.Where("id = ?", repair.ID).First(&repair)
		c.JSON(http.StatusOK, gin.H{"repair": repair})
	}
}

func handleRepairDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ?", c.Param("id")).Delete(&models.Repair{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete repair"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "repair not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
	}
}
