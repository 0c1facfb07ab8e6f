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

// RegistrationService handles event registrations, their verification
// workflow and removal. Deletions return the joined student and event
// fields so clients can name what was removed.
type RegistrationService struct {
	registrationRepo *repositories.RegistrationRepository
	publisher        Publisher
	logger           zerolog.Logger
}

// NewRegistrationService creates a new registration service instance.
func NewRegistrationService(registrationRepo *repositories.RegistrationRepository, publisher Publisher, logger zerolog.Logger) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
		publisher:        publisher,
		logger:           logger,
	}
}

// GetAllRegistrations lists every registration with joined display fields.
func (s *RegistrationService) GetAllRegistrations(ctx context.Context) ([]models.RegistrationInfo, error) {
	registrations, err := s.registrationRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return registrations, nil
}

// CreateRegistration registers a student for an event. A second
// registration for the same pair is a conflict.
func (s *RegistrationService) CreateRegistration(ctx context.Context, studentID, eventID int64) (int64, error) {
	if studentID <= 0 || eventID <= 0 {
		return 0, apperrors.NewValidationError("student_id and event_id must be positive")
	}

	id, err := s.registrationRepo.Create(ctx, studentID, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationExists) {
			return 0, apperrors.ErrAlreadyRegistered
		}
		return 0, fmt.Errorf("failed to create registration: %w", err)
	}

	s.logger.Info().
		Int64("registrationID", id).
		Int64("studentID", studentID).
		Int64("eventID", eventID).
		Msg("Registration created")
	s.publisher.PublishDataChanged("registrations")
	return id, nil
}

// VerifyRegistration marks one registration verified.
func (s *RegistrationService) VerifyRegistration(ctx context.Context, id int64) error {
	if err := s.registrationRepo.Verify(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return apperrors.ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to verify registration %d: %w", id, err)
	}

	s.logger.Info().Int64("registrationID", id).Msg("Registration verified")
	s.publisher.PublishDataChanged("registrations")
	return nil
}

// VerifyAllRegistrations marks every unverified registration verified and
// returns how many changed.
func (s *RegistrationService) VerifyAllRegistrations(ctx context.Context) (int64, error) {
	count, err := s.registrationRepo.VerifyAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to verify registrations: %w", err)
	}

	if count > 0 {
		s.logger.Info().Int64("count", count).Msg("All registrations verified")
		s.publisher.PublishDataChanged("registrations")
	}
	return count, nil
}

// DeleteRegistration removes one registration and returns its joined info.
func (s *RegistrationService) DeleteRegistration(ctx context.Context, id int64) (*models.RegistrationInfo, error) {
	info, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, apperrors.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to get registration %d: %w", id, err)
	}

	if err := s.registrationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, apperrors.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to delete registration %d: %w", id, err)
	}

	s.logger.Info().
		Int64("registrationID", id).
		Str("student", info.StudentName).
		Str("event", info.EventTitle).
		Msg("Registration deleted")
	s.publisher.PublishDataChanged("registrations")
	return info, nil
}

// DeleteAllRegistrations removes every registration and returns the joined
// info of each removed row.
func (s *RegistrationService) DeleteAllRegistrations(ctx context.Context) ([]models.RegistrationInfo, error) {
	infos, err := s.registrationRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}

	count, err := s.registrationRepo.DeleteAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to delete registrations: %w", err)
	}

	if count > 0 {
		s.logger.Info().Int64("count", count).Msg("All registrations deleted")
		s.publisher.PublishDataChanged("registrations")
	}
	return infos, nil
}
