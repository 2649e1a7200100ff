package notify

import (
	"context"
	"strings"
	"testing"

	"lab_asset_ledger/models"
)

func TestFallbackMessage(t *testing.T) {
	n := Notice{
		Student: &models.Student{StudentID: "101", Name: "Daiki Sato", Grade: 1, ClassNo: 1},
		Item:    models.Item{ItemID: "E001-01", Group: "Oscilloscope", Status: models.StatusBorrowed},
		Days:    4,
		Hint:    "The lab closes at 17:00.",
	}
	msg, err := Fallback{}.Generate(context.Background(), n)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := "Hello Daiki Sato (grade 1, class 1).\n" +
		"The lab equipment \"Oscilloscope\" (E001-01) has now been out for 4 days.\n" +
		"Please return it to the lab today. (The lab closes at 17:00.)"
	if msg != want {
		t.Errorf("message = %q, want %q", msg, want)
	}
}

func TestFallbackDefaults(t *testing.T) {
	n := Notice{
		Item: models.Item{ItemID: "M003-02", Group: "Soldering Station"},
		Days: 3,
	}
	msg, err := Fallback{}.Generate(context.Background(), n)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(msg, "Hello the student.") {
		t.Errorf("missing anonymous salutation: %q", msg)
	}
	if !strings.Contains(msg, "Contact the lab supervisor with any questions.") {
		t.Errorf("missing default hint: %q", msg)
	}
}
