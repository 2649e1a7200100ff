// controllers/item_controller.go
package controllers

import (
	"io"
	"net/http"

	"lab_asset_ledger/app"
	"lab_asset_ledger/engine"
	"lab_asset_ledger/models"
)

type ItemController struct{ *Srv }

func NewItemController(s *Srv) *ItemController { return &ItemController{Srv: s} }

// List inventory, optionally restricted to one status.
func (ic *ItemController) ListItems(c *app.Ctx) {
	var pred func(models.Item) bool
	if raw := c.Query("status"); raw != "" {
		status, err := models.ParseStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
			return
		}
		pred = func(it models.Item) bool { return it.Status == status }
	}
	c.JSON(http.StatusOK, app.H{"items": ic.Engine.ListItems(pred)})
}

// Register a single new item.
func (ic *ItemController) RegisterItem(c *app.Ctx) {
	var in struct {
		ItemID string `json:"itemId" binding:"required"`
		Group  string `json:"group" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	it, err := ic.Engine.RegisterItem(c.Request.Context(), in.ItemID, in.Group)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

// Remove an item that is not currently borrowed.
func (ic *ItemController) DeregisterItem(c *app.Ctx) {
	tx, err := ic.Engine.DeregisterItem(c.Request.Context(), c.Param("id"), c.Query("note"))
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (ic *ItemController) Borrow(c *app.Ctx) {
	var in struct {
		StudentID string `json:"studentId" binding:"required"`
		Note      string `json:"note"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	tx, err := ic.Engine.Borrow(c.Request.Context(), in.StudentID, c.Param("id"), in.Note)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (ic *ItemController) Return(c *app.Ctx) {
	var in struct {
		Note string `json:"note"`
	}
	_ = c.ShouldBindJSON(&in)
	tx, err := ic.Engine.Return(c.Request.Context(), c.Param("id"), in.Note)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// Mark an item lost or damaged.
func (ic *ItemController) ReportIssue(c *app.Ctx) {
	var in struct {
		Type string `json:"type" binding:"required"`
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	tx, err := ic.Engine.ReportIssue(c.Request.Context(), c.Param("id"), in.Type, in.Note)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (ic *ItemController) Restore(c *app.Ctx) {
	var in struct {
		Note string `json:"note"`
	}
	_ = c.ShouldBindJSON(&in)
	tx, err := ic.Engine.Restore(c.Request.Context(), c.Param("id"), in.Note)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// BulkImport accepts CSV rows as a multipart "file" field or as the raw
// request body and registers every valid, non-colliding row.
func (ic *ItemController) BulkImport(c *app.Ctx) {
	var text string
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
			return
		}
		defer f.Close()
		b, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
			return
		}
		text = string(b)
	} else {
		b, _ := c.GetRawData()
		text = string(b)
	}

	rows, err := engine.ParseImportCSV(text)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	added := ic.Engine.BulkRegister(c.Request.Context(), rows)
	c.JSON(http.StatusOK, app.H{"added": added, "rows": len(rows)})
}

// Scan resolves a decoded barcode/QR string as a plain item identifier.
func (ic *ItemController) Scan(c *app.Ctx) {
	var in struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	res, err := ic.Engine.ResolveScan(in.Code)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
