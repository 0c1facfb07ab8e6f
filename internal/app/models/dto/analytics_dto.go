package dto

// AnalyticsOverview aggregates system-wide totals. AttendanceRate follows
// the precedence rule: a student counts as attended for an event when a
// check-in or an attended mark exists.
type AnalyticsOverview struct {
	TotalEvents        int64 `json:"totalEvents"`
	TotalStudents      int64 `json:"totalStudents"`
	TotalRegistrations int64 `json:"totalRegistrations"`
	AttendanceRate     int64 `json:"attendanceRate"`
}

// StudentActivity ranks a student by registrations and attendance.
type StudentActivity struct {
	StudentID          int64   `json:"id"`
	Name               string  `json:"name"`
	ExternalID         string  `json:"student_id"`
	TotalRegistrations int64   `json:"total_registrations"`
	EventsAttended     int64   `json:"events_attended"`
	AttendanceRate     float64 `json:"attendance_rate"`
}

// EventPopularity ranks an event by registrations and attendance.
type EventPopularity struct {
	EventID           int64   `json:"id"`
	Title             string  `json:"title"`
	Date              string  `json:"date"`
	Location          string  `json:"location"`
	RegistrationCount int64   `json:"registration_count"`
	AttendanceCount   int64   `json:"attendance_count"`
	AttendanceRate    float64 `json:"attendance_rate"`
}

// EventTypeCount is one bucket of the title-based event classification.
type EventTypeCount struct {
	EventType  string  `json:"event_type"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// EventStats carries the detailed statistics for a single event.
type EventStats struct {
	EventID            int64   `json:"id"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	Date               string  `json:"date"`
	Time               string  `json:"time"`
	Location           string  `json:"location"`
	MaxCapacity        int     `json:"max_capacity"`
	TotalRegistrations int64   `json:"total_registrations"`
	TotalAttendance    int64   `json:"total_attendance"`
	TotalCheckIns      int64   `json:"total_check_ins"`
	AttendanceRate     float64 `json:"attendance_rate"`
	CheckInRate        float64 `json:"check_in_rate"`
}
