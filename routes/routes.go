package routes

import (
	"github.com/gin-gonic/gin"

	"lab_asset_ledger/app"
	"lab_asset_ledger/controllers"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	itemCtl := controllers.NewItemController(s)
	viewCtl := controllers.NewViewController(s)

	// ------------------------------
	// Inventory mutations
	// ------------------------------
	items := r.Group("/api/items")
	{
		items.GET("", itemCtl.ListItems)
		items.POST("", itemCtl.RegisterItem)
		items.DELETE("/:id", itemCtl.DeregisterItem)
		items.POST("/:id/borrow", itemCtl.Borrow)
		items.POST("/:id/return", itemCtl.Return)
		items.POST("/:id/report", itemCtl.ReportIssue)
		items.POST("/:id/restore", itemCtl.Restore)
	}

	// Bulk CSV import and scan-result resolution
	r.POST("/api/imports", itemCtl.BulkImport)
	r.POST("/api/scan", itemCtl.Scan)

	// ------------------------------
	// Read views
	// ------------------------------
	views := r.Group("/api")
	{
		views.GET("/students", viewCtl.Students)
		views.GET("/stats", viewCtl.Stats)
		views.GET("/overdue", viewCtl.Overdue)
		views.GET("/history", viewCtl.History)
	}
	r.POST("/api/overdue/:itemId/notice", viewCtl.Notice)
}
