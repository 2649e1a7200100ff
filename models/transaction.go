package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Action tags every ledger entry with the operation that produced it.
type Action string

const (
	ActionBorrow  Action = "borrow"
	ActionReturn  Action = "return"
	ActionLoss    Action = "loss"
	ActionDamage  Action = "damage"
	ActionRestore Action = "restore"
	ActionRemove  Action = "remove"
)

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionBorrow, ActionReturn, ActionLoss, ActionDamage, ActionRestore, ActionRemove:
		return Action(s), nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// TimeLayout is the wire format for ledger timestamps: second precision,
// local wall clock.
const TimeLayout = "2006-01-02 15:04:05"

// Timestamp wraps time.Time truncated to whole seconds so snapshots
// round-trip byte for byte.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.Truncate(time.Second)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(TimeLayout))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// Transaction is one immutable ledger entry. StudentID is empty for
// item-only actions (return, loss, damage, restore, remove).
type Transaction struct {
	ID        string    `json:"id"`
	TS        Timestamp `json:"ts"`
	StudentID string    `json:"studentId"`
	ItemID    string    `json:"itemId"`
	Action    Action    `json:"action"`
	Note      string    `json:"note"`
}
