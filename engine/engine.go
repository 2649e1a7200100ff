package engine

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"lab_asset_ledger/models"
	"lab_asset_ledger/persist"
)

// Engine owns the roster, the inventory and the transaction ledger as a
// single in-memory snapshot, constructed with an injected persistence
// adapter. Lifecycle: construct (load-or-seed) -> operate -> save after
// every successful mutation.
//
// Mutations are single-actor by contract; the lock exists because the HTTP
// surface serves requests concurrently.
type Engine struct {
	mu        sync.RWMutex
	students  []models.Student
	items     []models.Item
	tx        []models.Transaction
	persister persist.Adapter
	listeners []func(Event)

	now func() time.Time
}

// New loads the last snapshot from the adapter. When the adapter has
// nothing usable, a fresh roster and inventory are seeded and persisted
// immediately.
func New(ctx context.Context, p persist.Adapter) (*Engine, error) {
	e := &Engine{persister: p, now: time.Now}

	snap, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil {
		snap = seedSnapshot()
		if err := p.Save(ctx, snap); err != nil {
			return nil, fmt.Errorf("persist seed snapshot: %w", err)
		}
		log.Printf("seeded fresh snapshot: %d students, %d items", len(snap.Students), len(snap.Items))
	}
	e.students = snap.Students
	e.items = snap.Items
	e.tx = snap.Tx
	return e, nil
}

// Snapshot returns an independent copy of the current state.
func (e *Engine) Snapshot() *models.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() *models.Snapshot {
	s := models.Snapshot{Students: e.students, Items: e.items, Tx: e.tx}
	return s.Clone()
}

// persistSnap is fire-and-forget: a failing adapter never unwinds a
// completed mutation.
func (e *Engine) persistSnap(ctx context.Context, snap *models.Snapshot) {
	if e.persister == nil {
		return
	}
	if err := e.persister.Save(ctx, snap); err != nil {
		log.Printf("persist snapshot: %v", err)
	}
}

// --- Entity store ---

func (e *Engine) findStudentLocked(id string) *models.Student {
	for i := range e.students {
		if e.students[i].StudentID == id {
			return &e.students[i]
		}
	}
	return nil
}

func (e *Engine) findItemLocked(id string) *models.Item {
	for i := range e.items {
		if e.items[i].ItemID == id {
			return &e.items[i]
		}
	}
	return nil
}

// FindStudent looks a roster entry up by exact identifier after trimming
// surrounding whitespace.
func (e *Engine) FindStudent(id string) (*models.Student, error) {
	id = strings.TrimSpace(id)
	e.mu.RLock()
	defer e.mu.RUnlock()
	if s := e.findStudentLocked(id); s != nil {
		cp := *s
		return &cp, nil
	}
	return nil, fmt.Errorf("%w: student %s", ErrNotFound, id)
}

// FindItem looks an item up by exact identifier after trimming surrounding
// whitespace.
func (e *Engine) FindItem(id string) (*models.Item, error) {
	id = strings.TrimSpace(id)
	e.mu.RLock()
	defer e.mu.RUnlock()
	if it := e.findItemLocked(id); it != nil {
		cp := *it
		return &cp, nil
	}
	return nil, fmt.Errorf("%w: item %s", ErrNotFound, id)
}

// ListItems returns the items matching pred, in registration order. A nil
// predicate matches everything.
func (e *Engine) ListItems(pred func(models.Item) bool) []models.Item {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]models.Item, 0, len(e.items))
	for _, it := range e.items {
		if pred == nil || pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// Students returns the full roster.
func (e *Engine) Students() []models.Student {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]models.Student, len(e.students))
	copy(out, e.students)
	return out
}

// --- State machine ---

// Borrow moves an available item to borrowed on behalf of a known student.
func (e *Engine) Borrow(ctx context.Context, studentID, itemID, note string) (*models.Transaction, error) {
	studentID = strings.TrimSpace(studentID)
	itemID = strings.TrimSpace(itemID)
	note = strings.TrimSpace(note)
	if studentID == "" || itemID == "" {
		return nil, fmt.Errorf("%w: student and item identifiers are required", ErrInvalidInput)
	}

	e.mu.Lock()
	if e.findStudentLocked(studentID) == nil {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownStudent, studentID)
	}
	it := e.findItemLocked(itemID)
	if it == nil {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: item %s", ErrNotFound, itemID)
	}
	if it.Status != models.StatusAvailable {
		cur := it.Status
		e.mu.Unlock()
		return nil, invalidState(itemID, cur, models.StatusAvailable)
	}
	it.Status = models.StatusBorrowed
	tx := e.appendTxLocked(studentID, itemID, models.ActionBorrow, note)
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.persistSnap(ctx, snap)
	e.emit(Event{Kind: string(tx.Action), ItemID: itemID, Tx: &tx})
	return &tx, nil
}

// transition covers the item-only edges of the status table.
func (e *Engine) transition(ctx context.Context, itemID, note string, from []models.Status, to models.Status, action models.Action) (*models.Transaction, error) {
	itemID = strings.TrimSpace(itemID)
	note = strings.TrimSpace(note)
	if itemID == "" {
		return nil, fmt.Errorf("%w: item identifier is required", ErrInvalidInput)
	}

	e.mu.Lock()
	it := e.findItemLocked(itemID)
	if it == nil {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: item %s", ErrNotFound, itemID)
	}
	legal := false
	for _, s := range from {
		if it.Status == s {
			legal = true
			break
		}
	}
	if !legal {
		cur := it.Status
		e.mu.Unlock()
		return nil, invalidState(itemID, cur, from...)
	}
	it.Status = to
	tx := e.appendTxLocked("", itemID, action, note)
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.persistSnap(ctx, snap)
	e.emit(Event{Kind: string(tx.Action), ItemID: itemID, Tx: &tx})
	return &tx, nil
}

// Return moves a borrowed item back to available.
func (e *Engine) Return(ctx context.Context, itemID, note string) (*models.Transaction, error) {
	return e.transition(ctx, itemID, note,
		[]models.Status{models.StatusBorrowed}, models.StatusAvailable, models.ActionReturn)
}

// ReportIssue marks an available or borrowed item lost or damaged. kind
// must be "loss" or "damage".
func (e *Engine) ReportIssue(ctx context.Context, itemID, kind, note string) (*models.Transaction, error) {
	var action models.Action
	var to models.Status
	switch kind {
	case string(models.ActionLoss):
		action, to = models.ActionLoss, models.StatusLost
	case string(models.ActionDamage):
		action, to = models.ActionDamage, models.StatusDamaged
	default:
		return nil, fmt.Errorf("%w: issue type must be loss or damage, got %q", ErrInvalidInput, kind)
	}
	return e.transition(ctx, itemID, note,
		[]models.Status{models.StatusAvailable, models.StatusBorrowed}, to, action)
}

// Restore moves a lost or damaged item back to available.
func (e *Engine) Restore(ctx context.Context, itemID, note string) (*models.Transaction, error) {
	return e.transition(ctx, itemID, note,
		[]models.Status{models.StatusLost, models.StatusDamaged}, models.StatusAvailable, models.ActionRestore)
}

// RegisterItem adds a brand-new item starting at available. Registration
// writes no ledger entry; only removal is ledgered.
func (e *Engine) RegisterItem(ctx context.Context, itemID, group string) (*models.Item, error) {
	itemID = strings.TrimSpace(itemID)
	group = strings.TrimSpace(group)
	if itemID == "" || group == "" {
		return nil, fmt.Errorf("%w: item identifier and group are required", ErrInvalidInput)
	}

	e.mu.Lock()
	if e.findItemLocked(itemID) != nil {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: item %s", ErrDuplicateIdentifier, itemID)
	}
	it := models.Item{ItemID: itemID, Group: group, Status: models.StatusAvailable}
	e.items = append(e.items, it)
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.persistSnap(ctx, snap)
	e.emit(Event{Kind: EventRegister, ItemID: itemID})
	return &it, nil
}

// DeregisterItem removes an item that is not currently borrowed and
// appends a remove entry to the ledger.
func (e *Engine) DeregisterItem(ctx context.Context, itemID, note string) (*models.Transaction, error) {
	itemID = strings.TrimSpace(itemID)
	note = strings.TrimSpace(note)
	if itemID == "" {
		return nil, fmt.Errorf("%w: item identifier is required", ErrInvalidInput)
	}

	e.mu.Lock()
	idx := -1
	for i := range e.items {
		if e.items[i].ItemID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: item %s", ErrNotFound, itemID)
	}
	if e.items[idx].Status == models.StatusBorrowed {
		e.mu.Unlock()
		return nil, invalidState(itemID, models.StatusBorrowed,
			models.StatusAvailable, models.StatusLost, models.StatusDamaged)
	}
	e.items = append(e.items[:idx], e.items[idx+1:]...)
	tx := e.appendTxLocked("", itemID, models.ActionRemove, note)
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.persistSnap(ctx, snap)
	e.emit(Event{Kind: string(tx.Action), ItemID: itemID, Tx: &tx})
	return &tx, nil
}

// ScanResult resolves a raw decoded string to an inventory item and the
// natural follow-up operation for its current status.
type ScanResult struct {
	Item    models.Item `json:"item"`
	Suggest string      `json:"suggest,omitempty"`
}

// ResolveScan accepts a scanner or manual-entry string as a plain item
// identifier.
func (e *Engine) ResolveScan(code string) (*ScanResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: empty scan result", ErrInvalidInput)
	}
	it, err := e.FindItem(code)
	if err != nil {
		return nil, err
	}
	res := &ScanResult{Item: *it}
	switch it.Status {
	case models.StatusAvailable:
		res.Suggest = string(models.ActionBorrow)
	case models.StatusBorrowed:
		res.Suggest = string(models.ActionReturn)
	}
	return res, nil
}
