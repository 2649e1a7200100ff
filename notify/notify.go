// Package notify turns overdue-loan facts into a short human-readable
// message for the student. The remote generator is best-effort; callers
// fall back to the deterministic local template when it is unavailable.
package notify

import (
	"context"
	"fmt"

	"lab_asset_ledger/models"
)

// Notice is the overdue-result shape handed to a generator.
type Notice struct {
	Student *models.Student
	Item    models.Item
	Days    int
	Hint    string
}

type Generator interface {
	Generate(ctx context.Context, n Notice) (string, error)
}

func studentText(s *models.Student) string {
	if s == nil {
		return "the student"
	}
	return fmt.Sprintf("%s (grade %d, class %d)", s.Name, s.Grade, s.ClassNo)
}

// Fallback is the deterministic local template.
type Fallback struct{}

func (Fallback) Generate(_ context.Context, n Notice) (string, error) {
	hint := n.Hint
	if hint == "" {
		hint = "Contact the lab supervisor with any questions."
	}
	msg := fmt.Sprintf(
		"Hello %s.\nThe lab equipment %q (%s) has now been out for %d days.\nPlease return it to the lab today. (%s)",
		studentText(n.Student), n.Item.Group, n.Item.ItemID, n.Days, hint)
	return msg, nil
}
