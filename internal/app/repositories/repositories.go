package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is the shared not-found sentinel for all repositories.
var ErrNotFound = errors.New("record not found")

// Repositories bundles every repository for dependency wiring.
type Repositories struct {
	EventRepository        *EventRepository
	StudentRepository      *StudentRepository
	RegistrationRepository *RegistrationRepository
	AttendanceRepository   *AttendanceRepository
	FeedbackRepository     *FeedbackRepository
	AnalyticsRepository    *AnalyticsRepository
}

// NewRepositories creates all repositories sharing one pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		EventRepository:        NewEventRepository(db),
		StudentRepository:      NewStudentRepository(db),
		RegistrationRepository: NewRegistrationRepository(db),
		AttendanceRepository:   NewAttendanceRepository(db),
		FeedbackRepository:     NewFeedbackRepository(db),
		AnalyticsRepository:    NewAnalyticsRepository(db),
	}
}
