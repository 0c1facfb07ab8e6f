package dto

// CreateEventRequest carries the fields for creating or updating an event.
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Location    string `json:"location" binding:"required"`
	MaxCapacity int    `json:"max_capacity"`
	Institute   string `json:"institute"`
}

// CreateStudentRequest carries the fields for creating or updating a student.
type CreateStudentRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Institute string `json:"institute"`
}

// CreateRegistrationRequest registers a student for an event.
type CreateRegistrationRequest struct {
	StudentID int64 `json:"student_id" binding:"required"`
	EventID   int64 `json:"event_id" binding:"required"`
}

// MarkAttendanceRequest is the admin mark operation payload.
type MarkAttendanceRequest struct {
	StudentID int64  `json:"student_id" binding:"required"`
	EventID   int64  `json:"event_id" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

// CheckInRequest is the student self-check-in payload.
type CheckInRequest struct {
	StudentID int64 `json:"student_id" binding:"required"`
	EventID   int64 `json:"event_id" binding:"required"`
}

// CreateFeedbackRequest submits a rating and optional comment.
type CreateFeedbackRequest struct {
	StudentID int64  `json:"student_id" binding:"required"`
	EventID   int64  `json:"event_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// BulkDeleteFeedbackRequest deletes several feedback rows at once. When
// StudentID is set the deletion is a per-student soft delete.
type BulkDeleteFeedbackRequest struct {
	FeedbackIDs []int64 `json:"feedbackIds" binding:"required,min=1"`
	StudentID   int64   `json:"student_id"`
}
