package models

import "time"

// Registration links one student to one event, unique per pair. It is the
// prerequisite for attendance: an event's roster is exactly its registered
// students.
type Registration struct {
	ID           int64      `json:"id"`
	StudentID    int64      `json:"student_id"`
	EventID      int64      `json:"event_id"`
	RegisteredAt time.Time  `json:"registered_at"`
	Verified     bool       `json:"verified"`
	VerifiedAt   *time.Time `json:"verified_at,omitempty"`
}

// RegistrationInfo is a registration joined with the student and event
// fields clients need for display and removal notifications.
type RegistrationInfo struct {
	Registration
	StudentName     string `json:"student_name"`
	StudentIDString string `json:"student_id_string"`
	StudentEmail    string `json:"student_email"`
	EventTitle      string `json:"event_title"`
	EventDate       string `json:"date"`
	EventTime       string `json:"time"`
}
