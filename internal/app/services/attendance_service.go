package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/akshat/campushub/internal/app/models"
	"github.com/akshat/campushub/internal/app/repositories"
	"github.com/akshat/campushub/internal/pkg/apperrors"
)

// AttendanceStore is the persistence surface the attendance service needs.
// *repositories.AttendanceRepository satisfies it.
type AttendanceStore interface {
	Roster(ctx context.Context, eventID int64) ([]models.RosterEntry, error)
	InsertCheckIn(ctx context.Context, studentID, eventID int64) (int64, error)
	UpsertCheckIn(ctx context.Context, studentID, eventID int64) error
	DeleteCheckIn(ctx context.Context, studentID, eventID int64) error
	UpsertAbsentMark(ctx context.Context, studentID, eventID int64) error
	DeleteMark(ctx context.Context, studentID, eventID int64) error
	ListCheckIns(ctx context.Context, eventID int64) ([]models.CheckInInfo, error)
}

// Publisher fans state changes out to connected clients. Delivery is best
// effort; callers never block on it. *realtime.Hub satisfies it.
type Publisher interface {
	PublishAttendance(eventID int64, snapshot any)
	PublishDataChanged(kind string)
}

// AttendanceService owns the attendance write paths and roster resolution.
// Every successful mutation resolves the roster once and publishes it once.
type AttendanceService struct {
	store     AttendanceStore
	publisher Publisher
	logger    zerolog.Logger
}

// NewAttendanceService creates a new attendance service instance.
func NewAttendanceService(store AttendanceStore, publisher Publisher, logger zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// GetEventAttendance resolves the full roster for an event.
func (s *AttendanceService) GetEventAttendance(ctx context.Context, eventID int64) ([]models.AttendanceRecord, error) {
	entries, err := s.store.Roster(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for event %d: %w", eventID, err)
	}
	return ResolveRoster(entries), nil
}

// MarkAttendance applies an admin mark. Marking attended converts the pair
// to a check-in and removes any mark; marking absent records a mark and
// removes any check-in. Either way exactly one record remains for the pair.
func (s *AttendanceService) MarkAttendance(ctx context.Context, studentID, eventID int64, status models.AttendanceStatus) ([]models.AttendanceRecord, error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidAttendanceStatus
	}

	switch status {
	case models.StatusAttended:
		if err := s.store.UpsertCheckIn(ctx, studentID, eventID); err != nil {
			return nil, fmt.Errorf("failed to record attendance: %w", err)
		}
		if err := s.store.DeleteMark(ctx, studentID, eventID); err != nil {
			return nil, fmt.Errorf("failed to clear attendance mark: %w", err)
		}
	case models.StatusAbsent:
		if err := s.store.UpsertAbsentMark(ctx, studentID, eventID); err != nil {
			return nil, fmt.Errorf("failed to record absence: %w", err)
		}
		if err := s.store.DeleteCheckIn(ctx, studentID, eventID); err != nil {
			return nil, fmt.Errorf("failed to clear check-in: %w", err)
		}
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Int64("eventID", eventID).
		Str("status", string(status)).
		Msg("Attendance marked")

	return s.resolveAndPublish(ctx, eventID)
}

// SelfCheckIn records a student-initiated check-in. A second check-in for
// the same pair is a conflict; any standing absent mark is cleared.
func (s *AttendanceService) SelfCheckIn(ctx context.Context, studentID, eventID int64) ([]models.AttendanceRecord, error) {
	if _, err := s.store.InsertCheckIn(ctx, studentID, eventID); err != nil {
		if errors.Is(err, repositories.ErrCheckInExists) {
			return nil, apperrors.ErrAlreadyCheckedIn
		}
		return nil, fmt.Errorf("failed to check in: %w", err)
	}

	if err := s.store.DeleteMark(ctx, studentID, eventID); err != nil {
		return nil, fmt.Errorf("failed to clear attendance mark: %w", err)
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Int64("eventID", eventID).
		Msg("Student checked in")

	return s.resolveAndPublish(ctx, eventID)
}

// GetEventCheckIns lists the raw check-in log for an event.
func (s *AttendanceService) GetEventCheckIns(ctx context.Context, eventID int64) ([]models.CheckInInfo, error) {
	checkIns, err := s.store.ListCheckIns(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins for event %d: %w", eventID, err)
	}
	return checkIns, nil
}

// resolveAndPublish is the single publish point for attendance mutations.
func (s *AttendanceService) resolveAndPublish(ctx context.Context, eventID int64) ([]models.AttendanceRecord, error) {
	entries, err := s.store.Roster(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for event %d: %w", eventID, err)
	}
	records := ResolveRoster(entries)
	s.publisher.PublishAttendance(eventID, records)
	return records, nil
}
