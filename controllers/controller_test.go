package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"lab_asset_ledger/config"
	"lab_asset_ledger/engine"
	"lab_asset_ledger/models"
	"lab_asset_ledger/notify"
	"lab_asset_ledger/persist"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *Srv) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	eng, err := engine.New(context.Background(), persist.NewMemory())
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	s := &Srv{Engine: eng, Notifier: notify.Fallback{}, Cfg: config.Config{OverdueDays: 3}}
	itemCtl := NewItemController(s)
	viewCtl := NewViewController(s)

	r := gin.New()
	r.GET("/api/items", itemCtl.ListItems)
	r.POST("/api/items", itemCtl.RegisterItem)
	r.DELETE("/api/items/:id", itemCtl.DeregisterItem)
	r.POST("/api/items/:id/borrow", itemCtl.Borrow)
	r.POST("/api/items/:id/return", itemCtl.Return)
	r.POST("/api/items/:id/report", itemCtl.ReportIssue)
	r.POST("/api/items/:id/restore", itemCtl.Restore)
	r.POST("/api/imports", itemCtl.BulkImport)
	r.POST("/api/scan", itemCtl.Scan)
	r.GET("/api/students", viewCtl.Students)
	r.GET("/api/stats", viewCtl.Stats)
	r.GET("/api/overdue", viewCtl.Overdue)
	r.GET("/api/history", viewCtl.History)
	r.POST("/api/overdue/:itemId/notice", viewCtl.Notice)
	return r, s
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBorrowAndReturnFlow(t *testing.T) {
	r, s := setupTestRouter(t)

	w := doJSON(t, r, "POST", "/api/items/E001-01/borrow", map[string]string{"studentId": "101"})
	if w.Code != http.StatusCreated {
		t.Fatalf("borrow status = %d, body %s", w.Code, w.Body.String())
	}
	var tx models.Transaction
	json.Unmarshal(w.Body.Bytes(), &tx)
	if tx.Action != models.ActionBorrow || tx.ItemID != "E001-01" {
		t.Errorf("unexpected tx: %+v", tx)
	}

	it, _ := s.Engine.FindItem("E001-01")
	if it.Status != models.StatusBorrowed {
		t.Errorf("status = %s", it.Status)
	}

	w = doJSON(t, r, "POST", "/api/items/E001-01/return", map[string]string{"note": "ok"})
	if w.Code != http.StatusOK {
		t.Fatalf("return status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestErrorStatusMapping(t *testing.T) {
	r, _ := setupTestRouter(t)

	// Unknown student.
	w := doJSON(t, r, "POST", "/api/items/E001-01/borrow", map[string]string{"studentId": "777"})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown student: status = %d", w.Code)
	}

	// Double borrow.
	doJSON(t, r, "POST", "/api/items/E001-01/borrow", map[string]string{"studentId": "101"})
	w = doJSON(t, r, "POST", "/api/items/E001-01/borrow", map[string]string{"studentId": "102"})
	if w.Code != http.StatusConflict {
		t.Errorf("double borrow: status = %d", w.Code)
	}

	// Deregistering a borrowed item.
	w = doJSON(t, r, "DELETE", "/api/items/E001-01", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("deregister borrowed: status = %d", w.Code)
	}

	// Duplicate registration.
	w = doJSON(t, r, "POST", "/api/items", map[string]string{"itemId": "E001-02", "group": "Oscilloscope"})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register: status = %d", w.Code)
	}

	// Unknown item.
	w = doJSON(t, r, "POST", "/api/items/NOPE/return", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown item: status = %d", w.Code)
	}

	// Bad issue type.
	w = doJSON(t, r, "POST", "/api/items/E001-02/report", map[string]string{"type": "stolen"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad issue type: status = %d", w.Code)
	}
}

func TestRegisterAndListByStatus(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, "POST", "/api/items", map[string]string{"itemId": "Z300-01", "group": "Signal Generator"})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}

	doJSON(t, r, "POST", "/api/items/Z300-01/report", map[string]string{"type": "damage", "note": "bent"})

	w = doJSON(t, r, "GET", "/api/items?status=damaged", nil)
	var out struct {
		Items []models.Item `json:"items"`
	}
	json.Unmarshal(w.Body.Bytes(), &out)
	if len(out.Items) != 1 || out.Items[0].ItemID != "Z300-01" {
		t.Errorf("damaged filter: %+v", out.Items)
	}

	w = doJSON(t, r, "GET", "/api/items?status=bogus", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bogus status filter: %d", w.Code)
	}
}

func TestBulkImportEndpoint(t *testing.T) {
	r, s := setupTestRouter(t)

	csv := strings.Join([]string{
		"itemId,group",
		"Z400-01,Spectrum Analyzer",
		"Z400-02,Spectrum Analyzer",
		"E001-01,Oscilloscope", // duplicate of seed inventory
		"Z400-03,",             // blank label
		"Z400-04,Spectrum Analyzer",
	}, "\n")

	req, _ := http.NewRequest("POST", "/api/imports", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("import status = %d, body %s", w.Code, w.Body.String())
	}
	var out struct {
		Added int `json:"added"`
	}
	json.Unmarshal(w.Body.Bytes(), &out)
	if out.Added != 3 {
		t.Errorf("added = %d, want 3", out.Added)
	}
	if _, err := s.Engine.FindItem("Z400-04"); err != nil {
		t.Errorf("imported item missing: %v", err)
	}

	// Structurally empty input is the one hard failure.
	req, _ = http.NewRequest("POST", "/api/imports", strings.NewReader("\n\n"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty import: status = %d", w.Code)
	}
}

func TestScanEndpoint(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, "POST", "/api/scan", map[string]string{"code": " E001-01 "})
	if w.Code != http.StatusOK {
		t.Fatalf("scan status = %d", w.Code)
	}
	var res engine.ScanResult
	json.Unmarshal(w.Body.Bytes(), &res)
	if res.Item.ItemID != "E001-01" || res.Suggest != "borrow" {
		t.Errorf("unexpected scan result: %+v", res)
	}

	w = doJSON(t, r, "POST", "/api/scan", map[string]string{"code": "NOPE"})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown code: status = %d", w.Code)
	}
}

func TestStatsAndStudentsEndpoints(t *testing.T) {
	r, _ := setupTestRouter(t)

	doJSON(t, r, "POST", "/api/items/E001-01/report", map[string]string{"type": "loss"})

	w := doJSON(t, r, "GET", "/api/stats", nil)
	var out struct {
		Stats     engine.Stats        `json:"stats"`
		TopIssues []engine.IssueCount `json:"topIssues"`
	}
	json.Unmarshal(w.Body.Bytes(), &out)
	if out.Stats.Total != 50 || out.Stats.Lost != 1 {
		t.Errorf("stats: %+v", out.Stats)
	}
	if len(out.TopIssues) != 1 || out.TopIssues[0].ItemID != "E001-01" {
		t.Errorf("topIssues: %+v", out.TopIssues)
	}

	w = doJSON(t, r, "GET", "/api/students", nil)
	var students struct {
		Students []models.Student `json:"students"`
	}
	json.Unmarshal(w.Body.Bytes(), &students)
	if len(students.Students) != 60 {
		t.Errorf("students = %d, want 60", len(students.Students))
	}
}

func TestHistoryEndpoint(t *testing.T) {
	r, _ := setupTestRouter(t)

	doJSON(t, r, "POST", "/api/items/E001-01/borrow", map[string]string{"studentId": "101"})
	doJSON(t, r, "POST", "/api/items/E002-01/borrow", map[string]string{"studentId": "102"})

	w := doJSON(t, r, "GET", "/api/history?studentId=101", nil)
	var out struct {
		Entries []engine.HistoryEntry `json:"entries"`
	}
	json.Unmarshal(w.Body.Bytes(), &out)
	if len(out.Entries) != 1 || out.Entries[0].ItemID != "E001-01" {
		t.Errorf("filtered history: %+v", out.Entries)
	}
}

func TestNoticeEndpoint(t *testing.T) {
	r, _ := setupTestRouter(t)

	// Nothing is overdue yet.
	w := doJSON(t, r, "POST", "/api/overdue/E001-01/notice", map[string]string{"hint": "return today"})
	if w.Code != http.StatusNotFound {
		t.Errorf("notice for non-overdue item: status = %d", w.Code)
	}
}
