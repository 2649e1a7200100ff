// controllers/view_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"lab_asset_ledger/app"
	"lab_asset_ledger/engine"
	"lab_asset_ledger/notify"
)

type ViewController struct{ *Srv }

func NewViewController(s *Srv) *ViewController { return &ViewController{Srv: s} }

func (vc *ViewController) overdueDays(c *app.Ctx) int {
	if v := c.Query("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	if vc.Cfg.OverdueDays > 0 {
		return vc.Cfg.OverdueDays
	}
	return engine.DefaultOverdueDays
}

func (vc *ViewController) Students(c *app.Ctx) {
	c.JSON(http.StatusOK, app.H{"students": vc.Engine.Students()})
}

// Stats returns status counts plus the top-incident ranking.
func (vc *ViewController) Stats(c *app.Ctx) {
	c.JSON(http.StatusOK, app.H{
		"stats":     vc.Engine.Stats(),
		"topIssues": vc.Engine.TopIssues(3),
	})
}

func (vc *ViewController) Overdue(c *app.Ctx) {
	c.JSON(http.StatusOK, app.H{"overdue": vc.Engine.OverdueList(vc.overdueDays(c))})
}

// History returns the filtered ledger view. ?studentId=&itemId=
func (vc *ViewController) History(c *app.Ctx) {
	f := engine.TxFilter{
		StudentID: c.Query("studentId"),
		ItemID:    c.Query("itemId"),
	}
	c.JSON(http.StatusOK, app.H{"entries": vc.Engine.History(f, vc.overdueDays(c))})
}

// Notice generates an overdue reminder message for one overdue item,
// addressed by item identifier. Generator failures fall back to the local
// template and never touch engine state.
func (vc *ViewController) Notice(c *app.Ctx) {
	itemID := c.Param("itemId")

	var in struct {
		Hint string `json:"hint"`
	}
	_ = c.ShouldBindJSON(&in)

	var entry *engine.OverdueEntry
	for _, e := range vc.Engine.OverdueList(vc.overdueDays(c)) {
		if e.Item.ItemID == itemID {
			entry = &e
			break
		}
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, app.H{"error": "item " + itemID + " is not overdue"})
		return
	}

	n := notify.Notice{
		Student: entry.Student,
		Item:    entry.Item,
		Days:    entry.Days,
		Hint:    in.Hint,
	}
	msg, err := vc.Notifier.Generate(c.Request.Context(), n)
	if err != nil {
		msg, _ = notify.Fallback{}.Generate(c.Request.Context(), n)
	}
	c.JSON(http.StatusOK, app.H{"message": msg, "days": entry.Days, "itemId": itemID})
}
