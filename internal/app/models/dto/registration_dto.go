package dto

import "github.com/akshat/campushub/internal/app/models"

// DeletedRegistrationResponse echoes the affected student and event so the
// admin UI can notify about removals.
type DeletedRegistrationResponse struct {
	Message      string `json:"message"`
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
	EventTitle   string `json:"event_title"`
}

// BulkDeletedRegistrationsResponse reports a delete-all outcome with the
// details of every removed registration.
type BulkDeletedRegistrationsResponse struct {
	Message              string                    `json:"message"`
	DeletedRegistrations []models.RegistrationInfo `json:"deleted_registrations"`
}
