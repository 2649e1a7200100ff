package engine

import (
	"sort"
	"time"

	"lab_asset_ledger/models"
)

// DefaultOverdueDays is the whole-day threshold used when a caller passes
// no explicit one.
const DefaultOverdueDays = 3

// HistoryWindow caps the filtered history view. A presentation limit, not
// a ledger mutation.
const HistoryWindow = 80

// Stats counts items by status in a single scan of the inventory.
type Stats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Borrowed  int `json:"borrowed"`
	Lost      int `json:"lost"`
	Damaged   int `json:"damaged"`
}

func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	st := Stats{Total: len(e.items)}
	for _, it := range e.items {
		switch it.Status {
		case models.StatusAvailable:
			st.Available++
		case models.StatusBorrowed:
			st.Borrowed++
		case models.StatusLost:
			st.Lost++
		case models.StatusDamaged:
			st.Damaged++
		}
	}
	return st
}

// IssueCount is one row of the top-incident ranking. Group is "Unknown"
// when the item has since been deregistered.
type IssueCount struct {
	ItemID string `json:"itemId"`
	Group  string `json:"group"`
	Count  int    `json:"count"`
}

// TopIssues tallies loss and damage entries by item identifier and returns
// the limit highest counts, descending. Ties keep the order in which items
// were first encountered during the ledger scan.
func (e *Engine) TopIssues(limit int) []IssueCount {
	if limit <= 0 {
		limit = 3
	}
	e.mu.RLock()
	defer e.mu.RUnlock()

	counts := map[string]int{}
	var order []string
	for _, t := range e.tx {
		if t.Action != models.ActionLoss && t.Action != models.ActionDamage {
			continue
		}
		if _, seen := counts[t.ItemID]; !seen {
			order = append(order, t.ItemID)
		}
		counts[t.ItemID]++
	}

	out := make([]IssueCount, 0, len(order))
	for _, id := range order {
		group := "Unknown"
		if it := e.findItemLocked(id); it != nil {
			group = it.Group
		}
		out = append(out, IssueCount{ItemID: id, Group: group, Count: counts[id]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// OverdueEntry carries everything a notice needs: the item, its anchoring
// borrow transaction, the resolved student (absent when the id no longer
// resolves) and the elapsed whole days.
type OverdueEntry struct {
	Item    models.Item        `json:"item"`
	Tx      models.Transaction `json:"tx"`
	Student *models.Student    `json:"student,omitempty"`
	Days    int                `json:"days"`
}

// OverdueList reports every currently borrowed item whose most recent
// borrow entry is at least minDays old. The newest borrow anchors the
// elapsed-time calculation; earlier borrow cycles for the same item are
// ignored. Borrowed items with no borrow entry in the retained ledger are
// skipped.
func (e *Engine) OverdueList(minDays int) []OverdueEntry {
	if minDays <= 0 {
		minDays = DefaultOverdueDays
	}
	now := e.now()

	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []OverdueEntry
	for _, it := range e.items {
		if it.Status != models.StatusBorrowed {
			continue
		}
		var borrow *models.Transaction
		for i := range e.tx {
			if e.tx[i].ItemID == it.ItemID && e.tx[i].Action == models.ActionBorrow {
				borrow = &e.tx[i]
				break
			}
		}
		if borrow == nil {
			continue
		}
		days := elapsedDays(now, borrow.TS)
		if days < minDays {
			continue
		}
		entry := OverdueEntry{Item: it, Tx: *borrow, Days: days}
		if s := e.findStudentLocked(borrow.StudentID); s != nil {
			cp := *s
			entry.Student = &cp
		}
		out = append(out, entry)
	}
	return out
}

// HistoryEntry is a ledger entry plus its display-time overdue flag.
type HistoryEntry struct {
	models.Transaction
	Overdue     bool `json:"overdue"`
	OverdueDays int  `json:"overdueDays,omitempty"`
}

// History applies the optional filters to the ledger and caps the result
// to the display window. A borrow entry is flagged overdue when its item
// is still borrowed and the entry's own timestamp is at least minDays old.
// The flag intentionally uses each entry's own age, so a superseded borrow
// entry for a re-borrowed item is flagged independently of the anchoring
// one used by OverdueList.
func (e *Engine) History(f TxFilter, minDays int) []HistoryEntry {
	if minDays <= 0 {
		minDays = DefaultOverdueDays
	}
	now := e.now()

	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]HistoryEntry, 0, HistoryWindow)
	for _, t := range e.tx {
		if !f.match(t) {
			continue
		}
		entry := HistoryEntry{Transaction: t}
		if t.Action == models.ActionBorrow {
			if it := e.findItemLocked(t.ItemID); it != nil && it.Status == models.StatusBorrowed {
				if days := elapsedDays(now, t.TS); days >= minDays {
					entry.Overdue = true
					entry.OverdueDays = days
				}
			}
		}
		out = append(out, entry)
		if len(out) == HistoryWindow {
			break
		}
	}
	return out
}

// elapsedDays is the floor of (now - ts) in whole days.
func elapsedDays(now time.Time, ts models.Timestamp) int {
	d := now.Sub(ts.Time)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
