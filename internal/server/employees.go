package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hward/assetdesk/internal/export"
	"github.com/hward/assetdesk/internal/models"
	"github.com/hward/assetdesk/internal/notify"
	"gorm.io/gorm"
)

type employeeRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type assignRequest struct {
	AssetIDs []string `json:"assetIds" binding:"required"`
	Type     string   `json:"type"`   // assigned or temporary
	Notify   bool     `json:"notify"` // send a notice naming the assets
}

func handleEmployeeList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var employees []models.Employee
		if err := db.Preload("Assets").Order("name ASC").Find(&employees).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list employees"})
			return
		}
		c.JSON(http.StatusOK, employees)
	}
}

func handleEmployeeGet(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var emp models.Employee
		err := db.Preload("Assets").Where("id = ?", c.Param("id")).First(&emp).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get employee"})
			return
		}
		c.JSON(http.StatusOK, emp)
	}
}

func handleEmployeeCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req employeeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		emp := models.Employee{
			ID:         uuid.NewString(),
			Name:       req.Name,
			Email:      req.Email,
			Department: req.Department,
		}
		if err := db.Create(&emp).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create employee"})
			return
		}
		c.JSON(http.StatusCreated, emp)
	}
}

func handleEmployeeUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req employeeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := db.Model(&models.Employee{}).Where("id = ?", c.Param("id")).Updates(map[string]interface{}{
			"name":       req.Name,
			"email":      req.Email,
			"department": req.Department,
		})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update employee"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}

		var emp models.Employee
		db.Preload("Assets").Where("id = ?", c.Param("id")).First(&emp)
		c.JSON(http.StatusOK, emp)
	}
}

func handleEmployeeDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		// Release any held assets before removing the holder.
		err := db.Model(&models.Asset{}).Where("assigned_to_id = ?", id).Updates(map[string]interface{}{
			"assigned_to_id":  nil,
			"assignment_type": "",
			"status":          "available",
		}).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "release assets"})
			return
		}

		result := db.Where("id = ?", id).Delete(&models.Employee{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete employee"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	}
}

// handleEmployeeAssign hands a set of assets to an employee and marks
// them assigned. Already-assigned assets are rejected rather than moved
// silently between holders.
func handleEmployeeAssign(db *gorm.DB, notifier *notify.Multi) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req assignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Type == "" {
			req.Type = "assigned"
		}

		var emp models.Employee
		err := db.Where("id = ?", c.Param("id")).First(&emp).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get employee"})
			return
		}

		var assets []models.Asset
		if err := db.Where("id IN ?", req.AssetIDs).Find(&assets).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get assets"})
			return
		}
		if len(assets) != len(req.AssetIDs) {
			c.JSON(http.StatusNotFound, gin.H{"error": "one or more assets not found"})
			return
		}
		for _, a := range assets {
			if a.AssignedToID != nil {
				c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("asset %s is already assigned", a.Name)})
				return
			}
		}

		err = db.Model(&models.Asset{}).Where("id IN ?", req.AssetIDs).Updates(map[string]interface{}{
			"assigned_to_id":  emp.ID,
			"assignment_type": req.Type,
			"status":          "assigned",
		}).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "assign assets"})
			return
		}

		if req.Notify {
			names := make([]string, len(assets))
			for i, a := range assets {
				names[i] = a.Name
			}
			notifier.Send(notify.Notice{
				Subject: fmt.Sprintf("Assets assigned to %s", emp.Name),
				Body:    strings.Join(names, ", "),
			})
		}

		db.Preload("Assets").Where("id = ?", emp.ID).First(&emp)
		c.JSON(http.StatusOK, emp)
	}
}

func handleEmployeeUnassign(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req assignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := db.Model(&models.Asset{}).
			Where("id IN ? AND assigned_to_id = ?", req.AssetIDs, c.Param("id")).
			Updates(map[string]interface{}{
				"assigned_to_id":  nil,
				"assignment_type": "",
				"status":          "available",
			})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unassign assets"})
			return
		}

		var emp models.Employee
		if err := db.Preload("Assets").Where("id = ?", c.Param("id")).First(&emp).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"employee": emp, "released": result.RowsAffected})
	}
}

func handleEmployeeExport(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var employees []models.Employee
		if err := db.Preload("Assets").Order("name ASC").Find(&employees).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list employees"})
			return
		}

		f, err := export.Employees(employees)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "build workbook"})
			return
		}
		buf, err := f.WriteToBuffer()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "write workbook"})
			return
		}

		c.Header("Content-Disposition", `attachment; filename="employees.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	}
}
