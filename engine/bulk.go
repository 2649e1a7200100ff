package engine

import (
	"context"
	"fmt"
	"strings"

	"lab_asset_ledger/models"
)

// ImportRow is one candidate identifier/label pair from a bulk source.
type ImportRow struct {
	ItemID string
	Group  string
}

// ParseImportCSV parses tabular text into candidate rows. Fields are
// separated by commas or tabs, cells are trimmed, and a first line whose
// first cell contains "item" is treated as a header. Rows with fewer than
// two non-blank cells are dropped. The only hard failure is structurally
// empty input.
func ParseImportCSV(text string) ([]ImportRow, error) {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(strings.TrimSuffix(l, "\r")); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: import content is empty", ErrInvalidInput)
	}

	var rows []ImportRow
	for i, line := range lines {
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == '\t' })
		if len(fields) < 2 {
			continue
		}
		id := strings.TrimSpace(fields[0])
		group := strings.TrimSpace(fields[1])
		if id == "" || group == "" {
			continue
		}
		if i == 0 && strings.Contains(strings.ToLower(id), "item") {
			continue
		}
		rows = append(rows, ImportRow{ItemID: id, Group: group})
	}
	return rows, nil
}

// BulkRegister validates each candidate independently and registers the
// ones that pass; blank or colliding entries are skipped without aborting
// the batch. Returns the count actually added. Bulk registration, like
// single registration, writes no ledger entries.
func (e *Engine) BulkRegister(ctx context.Context, rows []ImportRow) int {
	e.mu.Lock()
	added := 0
	for _, r := range rows {
		id := strings.TrimSpace(r.ItemID)
		group := strings.TrimSpace(r.Group)
		if id == "" || group == "" {
			continue
		}
		if e.findItemLocked(id) != nil {
			continue
		}
		e.items = append(e.items, models.Item{ItemID: id, Group: group, Status: models.StatusAvailable})
		added++
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	if added > 0 {
		e.persistSnap(ctx, snap)
		e.emit(Event{Kind: EventImport})
	}
	return added
}
