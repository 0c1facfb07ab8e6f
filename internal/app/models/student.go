package models

import "time"

// Student represents a student record. ID is the internal numeric key used
// by every foreign key; StudentID is the external-facing identifier string.
type Student struct {
	ID        int64     `json:"id"`
	StudentID string    `json:"student_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Institute string    `json:"institute"`
	CreatedAt time.Time `json:"created_at"`
}
