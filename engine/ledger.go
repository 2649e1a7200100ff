package engine

import (
	"github.com/google/uuid"

	"lab_asset_ledger/models"
)

// LedgerCap bounds the ledger length. Truncation is a retention policy,
// not a correctness requirement; callers must not rely on full history.
const LedgerCap = 400

// appendTxLocked assigns an id and the current timestamp, inserts at the
// head and truncates the tail past the retention cap. Caller holds e.mu.
func (e *Engine) appendTxLocked(studentID, itemID string, action models.Action, note string) models.Transaction {
	t := models.Transaction{
		ID:        uuid.NewString(),
		TS:        models.NewTimestamp(e.now()),
		StudentID: studentID,
		ItemID:    itemID,
		Action:    action,
		Note:      note,
	}
	e.tx = append([]models.Transaction{t}, e.tx...)
	if len(e.tx) > LedgerCap {
		e.tx = e.tx[:LedgerCap]
	}
	return t
}

// TxFilter restricts ledger reads. Empty fields mean no restriction;
// present fields must match exactly.
type TxFilter struct {
	StudentID string
	ItemID    string
}

func (f TxFilter) match(t models.Transaction) bool {
	if f.StudentID != "" && t.StudentID != f.StudentID {
		return false
	}
	if f.ItemID != "" && t.ItemID != f.ItemID {
		return false
	}
	return true
}

// Ledger returns matching entries in ledger order, newest first.
func (e *Engine) Ledger(f TxFilter) []models.Transaction {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]models.Transaction, 0, len(e.tx))
	for _, t := range e.tx {
		if f.match(t) {
			out = append(out, t)
		}
	}
	return out
}
