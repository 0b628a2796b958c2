package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hward/assetdesk/internal/models"
	"gorm.io/gorm"
)

type tagRequest struct {
	Username     string     `json:"username" binding:"required"`
	AssetCode    string     `json:"assetCode" binding:"required"`
	SerialNumber string     `json:"serialNumber"`
	PurchaseDate *time.Time `json:"purchaseDate"`
}

func handleTagList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Model(&models.Tag{})
		if code := c.Query("assetCode"); code != "" {
			q = q.Where("asset_code = ?", code)
		}

		var tags []models.Tag
		if err := q.Order("created_at DESC").Find(&tags).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list tags"})
			return
		}
		c.JSON(http.StatusOK, tags)
	}
}

func handleTagCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tagRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		tag := models.Tag{
			Username:     req.Username,
			AssetCode:    req.AssetCode,
			SerialNumber: req.SerialNumber,
			PurchaseDate: req.PurchaseDate,
		}
		if err := db.Create(&tag).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create tag"})
			return
		}
		c.JSON(http.StatusCreated, tag)
	}
}

func handleTagDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ?", c.Param("id")).Delete(&models.Tag{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete tag"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "tag not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
	}
}
