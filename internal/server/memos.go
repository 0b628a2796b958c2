package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hward/assetdesk/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type memoRequest struct {
	Subject    string   `json:"subject" binding:"required"`
	Recipient  string   `json:"recipient"`
	Department string   `json:"department"`
	Body       string   `json:"body"`
	CC         []string `json:"cc"`
}

var memoTemplate = template.Must(template.New("memo").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.RefNumber}}</title></head>
<body>
<h1>Office Memo</h1>
<p><strong>Ref:</strong> {{.RefNumber}}</p>
<p><strong>Date:</strong> {{.Date}}</p>
<p><strong>To:</strong> {{.Recipient}}</p>
<p><strong>Department:</strong> {{.Department}}</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<hr>
<p>{{.Body}}</p>
{{if .CC}}<p><strong>CC:</strong> {{range $i, $n := .CC}}{{if $i}}, {{end}}{{$n}}{{end}}</p>{{end}}
<p>Issued by {{.CreatedBy}}</p>
</body>
</html>
`))

func handleMemoList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var memos []models.Memo
		if err := db.Order("created_at DESC").Find(&memos).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list memos"})
			return
		}
		c.JSON(http.StatusOK, memos)
	}
}

func handleMemoGet(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var memo models.Memo
		err := db.Where("id = ?", c.Param("id")).First(&memo).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "memo not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get memo"})
			return
		}
		c.JSON(http.StatusOK, memo)
	}
}

// handleMemoDocument renders the memo as a printable HTML document.
func handleMemoDocument(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var memo models.Memo
		err := db.Where("id = ?", c.Param("id")).First(&memo).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "memo not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get memo"})
			return
		}

		var cc []string
		if len(memo.CC) > 0 {
			if err := json.Unmarshal(memo.CC, &cc); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "decode cc list"})
				return
			}
		}

		data := struct {
			RefNumber  string
			Date       string
			Recipient  string
			Department string
			Subject    string
			Body       string
			CC         []string
			CreatedBy  string
		}{
			RefNumber:  memo.RefNumber,
			Date:       memo.CreatedAt.Format("2 January 2006"),
			Recipient:  memo.Recipient,
			Department: memo.Department,
			Subject:    memo.Subject,
			Body:       memo.Body,
			CC:         cc,
			CreatedBy:  memo.CreatedBy,
		}

		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		if err := memoTemplate.Execute(c.Writer, data); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "render memo"})
		}
	}
}

func handleMemoCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req memoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ccJSON, err := json.Marshal(req.CC)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "encode cc list"})
			return
		}

		memo := models.Memo{
			RefNumber:  nextMemoRef(db, time.Now()),
			Subject:    req.Subject,
			Recipient:  req.Recipient,
			Department: req.Department,
			Body:       req.Body,
			CC:         datatypes.JSON(ccJSON),
			CreatedBy:  currentUsername(c),
		}
		if err := db.Create(&memo).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create memo"})
			return
		}
		c.JSON(http.StatusCreated, memo)
	}
}

// nextMemoRef mints a yearly sequential reference, MEMO-YYYY-NNNN.
func nextMemoRef(db *gorm.DB, now time.Time) string {
	prefix := fmt.Sprintf("MEMO-%d-", now.Year())
	var count int64
	db.Model(&models.Memo{}).Where("ref_number LIKE ?", prefix+"%").Count(&count)
	return fmt.Sprintf("%s%04d", prefix, count+1)
}

func handleMemoDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ?", c.Param("id")).Delete(&models.Memo{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete memo"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "memo not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
	}
}
