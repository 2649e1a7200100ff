package models

import "fmt"

// Status is the closed set of item lifecycle states. Values outside the
// four constants are rejected at parse time, not discovered at comparison
// time.
type Status string

const (
	StatusAvailable Status = "available"
	StatusBorrowed  Status = "borrowed"
	StatusLost      Status = "lost"
	StatusDamaged   Status = "damaged"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAvailable, StatusBorrowed, StatusLost, StatusDamaged:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Item is a unique piece of lab equipment. Group is a display label and is
// not necessarily unique; ItemID is unique across the store.
type Item struct {
	ItemID string `json:"itemId"`
	Group  string `json:"group"`
	Status Status `json:"status"`
}
