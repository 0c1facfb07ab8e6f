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

// FeedbackService handles feedback submission and the two deletion modes.
// A student delete writes a deletion marker and the row stays visible to
// admins; an admin delete removes the row for good.
type FeedbackService struct {
	feedbackRepo *repositories.FeedbackRepository
	publisher    Publisher
	logger       zerolog.Logger
}

// NewFeedbackService creates a new feedback service instance.
func NewFeedbackService(feedbackRepo *repositories.FeedbackRepository, publisher Publisher, logger zerolog.Logger) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// CreateFeedback stores a new feedback submission.
func (s *FeedbackService) CreateFeedback(ctx context.Context, feedback *models.Feedback) (int64, error) {
	if feedback == nil {
		return 0, apperrors.NewValidationError("feedback is nil")
	}
	if feedback.Rating < 1 || feedback.Rating > 5 {
		return 0, apperrors.ErrInvalidRating
	}
	feedback.Comment = strings.TrimSpace(feedback.Comment)

	id, err := s.feedbackRepo.Create(ctx, feedback)
	if err != nil {
		return 0, fmt.Errorf("failed to create feedback: %w", err)
	}

	s.logger.Info().
		Int64("feedbackID", id).
		Int64("studentID", feedback.StudentID).
		Int64("eventID", feedback.EventID).
		Int("rating", feedback.Rating).
		Msg("Feedback submitted")
	s.publisher.PublishDataChanged("feedback")
	return id, nil
}

// GetFeedback lists feedback. With a student ID the list is scoped to that
// student and excludes entries the student soft-deleted; without one it is
// the admin view and includes everything.
func (s *FeedbackService) GetFeedback(ctx context.Context, studentID *int64) ([]models.FeedbackInfo, error) {
	var (
		feedback []models.FeedbackInfo
		err      error
	)
	if studentID != nil {
		feedback, err = s.feedbackRepo.ListForStudent(ctx, *studentID)
	} else {
		feedback, err = s.feedbackRepo.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedback, nil
}

// GetEventFeedback lists all feedback for one event.
func (s *FeedbackService) GetEventFeedback(ctx context.Context, eventID int64) ([]models.FeedbackInfo, error) {
	feedback, err := s.feedbackRepo.ListForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback for event %d: %w", eventID, err)
	}
	return feedback, nil
}

// DeleteFeedback removes one feedback entry. studentID selects the mode:
// present means soft delete for that student, absent means hard delete.
func (s *FeedbackService) DeleteFeedback(ctx context.Context, feedbackID int64, studentID *int64) error {
	if studentID != nil {
		if err := s.feedbackRepo.SoftDelete(ctx, *studentID, feedbackID); err != nil {
			return fmt.Errorf("failed to soft delete feedback %d: %w", feedbackID, err)
		}
		s.logger.Info().
			Int64("feedbackID", feedbackID).
			Int64("studentID", *studentID).
			Msg("Feedback soft deleted")
	} else {
		if err := s.feedbackRepo.HardDelete(ctx, feedbackID); err != nil {
			if errors.Is(err, repositories.ErrFeedbackNotFound) {
				return apperrors.ErrFeedbackNotFound
			}
			return fmt.Errorf("failed to delete feedback %d: %w", feedbackID, err)
		}
		s.logger.Info().Int64("feedbackID", feedbackID).Msg("Feedback deleted")
	}

	s.publisher.PublishDataChanged("feedback")
	return nil
}

// DeleteFeedbackBulk removes a batch of feedback entries under the same
// soft/hard rule and returns how many were affected.
func (s *FeedbackService) DeleteFeedbackBulk(ctx context.Context, feedbackIDs []int64, studentID *int64) (int64, error) {
	if len(feedbackIDs) == 0 {
		return 0, apperrors.NewValidationError("feedbackIds cannot be empty")
	}

	var count int64
	if studentID != nil {
		for _, id := range feedbackIDs {
			if err := s.feedbackRepo.SoftDelete(ctx, *studentID, id); err != nil {
				return count, fmt.Errorf("failed to soft delete feedback %d: %w", id, err)
			}
			count++
		}
	} else {
		var err error
		count, err = s.feedbackRepo.HardDeleteMany(ctx, feedbackIDs)
		if err != nil {
			return 0, fmt.Errorf("failed to delete feedback: %w", err)
		}
	}

	s.logger.Info().Int64("count", count).Msg("Feedback bulk deleted")
	s.publisher.PublishDataChanged("feedback")
	return count, nil
}
