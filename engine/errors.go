package engine

import (
	"errors"
	"fmt"
	"strings"

	"lab_asset_ledger/models"
)

// Error kinds surfaced by the engine. All are recoverable by the caller:
// the engine performs no partial mutation before returning any of these.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	ErrInvalidState        = errors.New("invalid state")
	ErrUnknownStudent      = errors.New("unknown student")
)

func invalidState(itemID string, current models.Status, want ...models.Status) error {
	opts := make([]string, len(want))
	for i, w := range want {
		opts[i] = string(w)
	}
	return fmt.Errorf("%w: item %s is %s, want %s",
		ErrInvalidState, itemID, current, strings.Join(opts, " or "))
}
