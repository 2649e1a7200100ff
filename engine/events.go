package engine

import "lab_asset_ledger/models"

// Event kinds for mutations that do not write a ledger entry. Ledgered
// mutations use the action tag as their kind.
const (
	EventRegister = "register"
	EventImport   = "import"
)

// Event describes one successful mutation. Tx is nil for registration and
// bulk import, which append no ledger entry.
type Event struct {
	Kind   string
	ItemID string
	Tx     *models.Transaction
}

// Subscribe registers a listener invoked after every successful mutation.
// Listeners run synchronously on the mutating goroutine, outside the
// engine lock.
func (e *Engine) Subscribe(fn func(Event)) {
	e.mu.Lock()
	e.listeners = append(e.listeners, fn)
	e.mu.Unlock()
}

func (e *Engine) emit(ev Event) {
	e.mu.RLock()
	ls := make([]func(Event), len(e.listeners))
	copy(ls, e.listeners)
	e.mu.RUnlock()
	for _, fn := range ls {
		fn(ev)
	}
}
