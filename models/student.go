package models

// Student is an immutable roster entry. Created at seed time or by an
// external admin action, never mutated or deleted by the engine.
type Student struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	Grade     int    `json:"grade"`
	ClassNo   int    `json:"classNo"`
}
