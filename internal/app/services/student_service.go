package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/akshat/campushub/internal/app/models"
	"github.com/akshat/campushub/internal/app/repositories"
	"github.com/akshat/campushub/internal/pkg/apperrors"
)

// StudentService handles student CRUD operations.
type StudentService struct {
	studentRepo *repositories.StudentRepository
	publisher   Publisher
	logger      zerolog.Logger
}

// NewStudentService creates a new student service instance.
func NewStudentService(studentRepo *repositories.StudentRepository, publisher Publisher, logger zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// validateStudent validates student data before database operations.
func (s *StudentService) validateStudent(student *models.Student) error {
	if student == nil {
		return apperrors.NewValidationError("student is nil")
	}
	if strings.TrimSpace(student.Name) == "" {
		return apperrors.NewValidationError("name cannot be empty")
	}
	if strings.TrimSpace(student.StudentID) == "" {
		return apperrors.NewValidationError("student ID cannot be empty")
	}
	if strings.TrimSpace(student.Email) == "" {
		return apperrors.NewValidationError("email cannot be empty")
	}
	return nil
}

// GetAllStudents returns every student ordered by name.
func (s *StudentService) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

// GetStudentByID returns one student by internal ID.
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student %d: %w", id, err)
	}
	return student, nil
}

// GetStudentByExternalID returns one student by the external identifier,
// the login key for the student app.
func (s *StudentService) GetStudentByExternalID(ctx context.Context, externalID string) (*models.Student, error) {
	student, err := s.studentRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student %q: %w", externalID, err)
	}
	return student, nil
}

// CreateStudent registers a new student. The external student ID must be
// unique.
func (s *StudentService) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	if err := s.validateStudent(student); err != nil {
		return 0, err
	}

	id, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentIDExists) {
			return 0, apperrors.ErrStudentIDAlreadyExists
		}
		return 0, fmt.Errorf("failed to create student: %w", err)
	}

	s.logger.Info().Int64("studentID", id).Str("externalID", student.StudentID).Msg("Student created")
	s.publisher.PublishDataChanged("students")
	return id, nil
}

// UpdateStudent updates an existing student.
func (s *StudentService) UpdateStudent(ctx context.Context, student *models.Student) error {
	if err := s.validateStudent(student); err != nil {
		return err
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return apperrors.ErrStudentNotFound
		}
		if errors.Is(err, repositories.ErrStudentIDExists) {
			return apperrors.ErrStudentIDAlreadyExists
		}
		return fmt.Errorf("failed to update student %d: %w", student.ID, err)
	}

	s.logger.Info().Int64("studentID", student.ID).Msg("Student updated")
	s.publisher.PublishDataChanged("students")
	return nil
}
