package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hward/assetdesk/internal/config"
	"github.com/hward/assetdesk/internal/models"
	"gorm.io/gorm"
)

func handleReportList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var attachments []models.ReportAttachment
		if err := db.Order("created_at DESC").Find(&attachments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list attachments"})
			return
		}
		c.JSON(http.StatusOK, attachments)
	}
}

// handleReportUpload stores an uploaded document under the configured
// upload dir and indexes it. Filenames are disambiguated with a
// timestamp so repeated uploads never clobber each other.
func handleReportUpload(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}

		dir := filepath.Join(cfg.Storage.UploadDir, "reports")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "prepare upload dir"})
			return
		}

		base := filepath.Base(file.Filename)
		dest := filepath.Join(dir, fmt.Sprintf("%d_%s", time.Now().UnixMilli(), base))
		if err := c.SaveUploadedFile(file, dest); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save file"})
			return
		}

		attachment := models.ReportAttachment{
			FileName:   base,
			FilePath:   dest,
			FileType:   strings.TrimPrefix(filepath.Ext(base), "."),
			FileSize:   file.Size,
			UploadedBy: currentUsername(c),
		}
		if err := db.Create(&attachment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "index attachment"})
			return
		}
		c.JSON(http.StatusCreated, attachment)
	}
}
