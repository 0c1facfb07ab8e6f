package models

import "time"

// AttendanceStatus is the tri-state resolved attendance value for one
// (student, event) pair.
type AttendanceStatus string

const (
	// StatusAttended means a check-in row exists, regardless of any mark.
	StatusAttended AttendanceStatus = "attended"
	// StatusAbsent means an absent mark exists and no check-in.
	StatusAbsent AttendanceStatus = "absent"
	// StatusNotMarked means the student is registered but has neither a
	// check-in nor a mark.
	StatusNotMarked AttendanceStatus = "not_marked"
)

// Valid reports whether s is one of the admin-settable statuses.
func (s AttendanceStatus) Valid() bool {
	return s == StatusAttended || s == StatusAbsent
}

// CheckIn is a student-initiated attendance record. Its presence is
// authoritative evidence of presence and always wins over a mark.
type CheckIn struct {
	ID          int64     `json:"id"`
	StudentID   int64     `json:"student_id"`
	EventID     int64     `json:"event_id"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

// AttendanceMark is an admin-entered status for a (student, event) pair,
// subordinate to a check-in under the precedence rule.
type AttendanceMark struct {
	ID        int64            `json:"id"`
	StudentID int64            `json:"student_id"`
	EventID   int64            `json:"event_id"`
	Status    AttendanceStatus `json:"status"`
	MarkedAt  time.Time        `json:"marked_at"`
}

// AttendanceRecord is one row of the resolved attendance roster for an
// event: the student's identity plus the derived tri-state status.
type AttendanceRecord struct {
	StudentID   int64            `json:"id"`
	Name        string           `json:"name"`
	ExternalID  string           `json:"student_id"`
	Email       string           `json:"email"`
	Status      AttendanceStatus `json:"attendance_status"`
	CheckedInAt *time.Time       `json:"checked_in_at,omitempty"`
	MarkedAt    *time.Time       `json:"marked_at,omitempty"`
}

// RosterEntry is one registered student's raw attendance evidence for an
// event, before the precedence rule is applied: the optional check-in
// timestamp and the optional admin mark.
type RosterEntry struct {
	StudentID   int64
	Name        string
	ExternalID  string
	Email       string
	CheckedInAt *time.Time
	MarkStatus  *AttendanceStatus
	MarkedAt    *time.Time
}

// CheckInInfo is a raw check-in joined with the student's name and external
// identifier, for the per-event check-in log.
type CheckInInfo struct {
	CheckIn
	StudentName     string `json:"student_name"`
	StudentIDString string `json:"student_id_string"`
}
