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

type assetRequest struct {
	Name           string     `json:"name" binding:"required"`
	AssetTag       string     `json:"assetTag"`
	Category       string     `json:"category"`
	Brand          string     `json:"brand"`
	Model          string     `json:"model"`
	SerialNumber   string     `json:"serialNumber"`
	Location       string     `json:"location"`
	Status         string     `json:"status"`
	PurchaseDate   *time.Time `json:"purchaseDate"`
	WarrantyExpiry *time.Time `json:"warrantyExpiry"`
	Remarks        string     `json:"remarks"`
}

func handleAssetList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Preload("AssignedTo").Model(&models.Asset{})
		if cat := c.Query("category"); cat != "" {
			q = q.Where("category = ?", cat)
		}
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}

		var assets []models.Asset
		if err := q.Order("created_at DESC").Find(&assets).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list assets"})
			return
		}
		c.JSON(http.StatusOK, assets)
	}
}

func handleAssetGet(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var asset models.Asset
		err := db.Preload("AssignedTo").Where("id = ?", c.Param("id")).First(&asset).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get asset"})
			return
		}
		c.JSON(http.StatusOK, asset)
	}
}

func handleAssetCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req assetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Status == "" {
			req.Status = "available"
		}

		asset := models.Asset{
			ID:             uuid.NewString(),
			Name:           req.Name,
			AssetTag:       req.AssetTag,
			Category:       req.Category,
			Brand:          req.Brand,
			Model:          req.Model,
			SerialNumber:   req.SerialNumber,
			Location:       req.Location,
			Status:         req.Status,
			PurchaseDate:   req.PurchaseDate,
			WarrantyExpiry: req.WarrantyExpiry,
			Remarks:        req.Remarks,
		}
		if err := db.Create(&asset).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create asset"})
			return
		}
		c.JSON(http.StatusCreated, asset)
	}
}

func handleAssetUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req assetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var asset models.Asset
		err := db.Where("id = ?", c.Param("id")).First(&asset).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get asset"})
			return
		}

		updates := map[string]interface{}{
			"name":            req.Name,
			"asset_tag":       req.AssetTag,
			"category":        req.Category,
			"brand":           req.Brand,
			"model":           req.Model,
			"serial_number":   req.SerialNumber,
			"location":        req.Location,
			"remarks":         req.Remarks,
			"purchase_date":   req.PurchaseDate,
			"warranty_expiry": req.WarrantyExpiry,
		}
		if req.Status != "" {
			updates["status"] = req.Status
		}
		if err := db.Model(&asset).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update asset"})
			return
		}

		db.Preload("AssignedTo").Where("id = ?", asset.ID).First(&asset)
		c.JSON(http.StatusOK, asset)
	}
}

func handleAssetDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ?", c.Param("id")).Delete(&models.Asset{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete asset"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
	}
}

func handleAssetExport(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var assets []models.Asset
		if err := db.Preload("AssignedTo").Order("name ASC").Find(&assets).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list assets"})
			return
		}

		f, err := export.Assets(assets)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "build workbook"})
			return
		}
		buf, err := f.WriteToBuffer()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "write workbook"})
			return
		}

		c.Header("Content-Disposition", `attachment; filename="assets.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	}
}
