package server

import (
	"github.com/gin-gonic/gin"
	"github.com/hward/assetdesk/internal/config"
	"github.com/hward/assetdesk/internal/notify"
	"gorm.io/gorm"
)

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, notifier *notify.Multi) {
	// Public routes.
	router.GET("/api/health", handleHealth())
	router.POST("/api/auth/register", handleRegister(db))
	router.POST("/api/auth/login", handleLogin(db, cfg))

	api := router.Group("/api", requireAuth(cfg.Auth.JWTSecret))

	api.GET("/auth/profile", handleProfile(db))

	asset := api.Group("/asset")
	asset.GET("", handleAssetList(db))
	asset.GET("/export/excel", handleAssetExport(db))
	asset.GET("/:id", handleAssetGet(db))
	asset.POST("", handleAssetCreate(db))
	asset.PUT("/:id", handleAssetUpdate(db))
	asset.DELETE("/:id", handleAssetDelete(db))

	employee := api.Group("/employee")
	employee.GET("", handleEmployeeList(db))
	employee.GET("/export-excel", handleEmployeeExport(db))
	employee.GET("/:id", handleEmployeeGet(db))
	employee.POST("", handleEmployeeCreate(db))
	employee.PUT("/assign/:id", handleEmployeeAssign(db, notifier))
	employee.PUT("/unassign/:id", handleEmployeeUnassign(db))
	employee.PUT("/:id", handleEmployeeUpdate(db))
	employee.DELETE("/:id", handleEmployeeDelete(db))

	software := api.Group("/software")
	software.GET("", handleSoftwareList(db))
	software.POST("", handleSoftwareCreate(db))
	software.PUT("/:id", handleSoftwareUpdate(db))
	software.DELETE("/:id", handleSoftwareDelete(db))

	repair := api.Group("/repair")
	repair.GET("", handleRepairList(db))
	repair.GET("/:id", handleRepairGet(db))
	repair.POST("", handleRepairCreate(db, cfg))
	repair.PUT("/:id/return", handleRepairReturn(db, cfg))
	repair.DELETE("/:id", handleRepairDelete(db))

	maintenance := api.Group("/maintenance")
	maintenance.GET("", handleMaintenanceList(db))
	maintenance.GET("/report", handleMaintenanceReport(db))
	maintenance.GET("/report/export", handleMaintenanceExport(db))
	maintenance.POST("", handleMaintenanceCreate(db))
	maintenance.PUT("/return/:id", handleMaintenanceReturn(db))
	maintenance.DELETE("/:id", handleMaintenanceDelete(db))

	bill := api.Group("/bill")
	bill.GET("", handleBillList(db))
	bill.GET("/pending-count", handleBillPendingCount(db))
	bill.GET("/reports", handleBillReports(db))
	bill.GET("/send-reminders", handleBillSendReminders(db, cfg, notifier))
	bill.POST("", handleBillCreate(db))
	bill.PATCH("/pay/:id", handleBillPay(db))
	bill.DELETE("/:id", handleBillDelete(db))

	month := api.Group("/month")
	month.GET("", handleMonthList(db))
	month.POST("", handleMonthCreate(db))
	month.PUT("/:id", handleMonthUpdate(db))
	month.DELETE("/:id", handleMonthDelete(db))
	month.POST("/:id/addon", handleMonthAddAddon(db))

	tag := api.Group("/tag")
	tag.GET("", handleTagList(db))
	tag.POST("", handleTagCreate(db))
	tag.DELETE("/:id", handleTagDelete(db))

	memo := api.Group("/memo")
	memo.GET("", handleMemoList(db))
	memo.GET("/:id", handleMemoGet(db))
	memo.GET("/:id/document", handleMemoDocument(db))
	memo.POST("", handleMemoCreate(db))
	memo.DELETE("/:id", handleMemoDelete(db))

	m365grp := api.Group("/m365")
	m365grp.GET("/usage", handleM365Usage(db))
	m365grp.POST("/refresh", handleM365Refresh(db))
	m365grp.GET("/lastSync", handleM365LastSync(db))
	m365grp.GET("/alerts/high-usage", handleM365HighUsage(db, cfg))
	m365grp.GET("/alerts/inactive", handleM365Inactive(db, cfg))
	m365grp.GET("/analytics/trends/:upn", handleM365Trend(db))
	m365grp.GET("/analytics/top-storage", handleM365TopStorage(db))

	api.POST("/attendance/notify", handleFingerprintNotify(db, notifier))

	report := api.Group("/report")
	report.GET("", handleReportList(db))
	report.POST("/upload", handleReportUpload(db, cfg))
}
