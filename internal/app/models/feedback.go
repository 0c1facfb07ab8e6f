package models

import "time"

// Feedback is one submission of a rating and optional comment for an event.
// Students soft-delete feedback via deletion markers; the row itself stays
// visible to admins.
type Feedback struct {
	ID          int64     `json:"id"`
	StudentID   int64     `json:"student_id"`
	EventID     int64     `json:"event_id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// FeedbackInfo is feedback joined with student and event display fields.
type FeedbackInfo struct {
	Feedback
	StudentName     string `json:"student_name"`
	StudentIDString string `json:"student_id_string"`
	EventTitle      string `json:"event_title"`
}
