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

// EventService handles event CRUD operations.
type EventService struct {
	eventRepo *repositories.EventRepository
	publisher Publisher
	logger    zerolog.Logger
}

// NewEventService creates a new event service instance.
func NewEventService(eventRepo *repositories.EventRepository, publisher Publisher, logger zerolog.Logger) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// validateEvent validates event data before database operations.
func (s *EventService) validateEvent(event *models.Event) error {
	if event == nil {
		return apperrors.NewValidationError("event is nil")
	}
	if strings.TrimSpace(event.Title) == "" {
		return apperrors.NewValidationError("title cannot be empty")
	}
	if strings.TrimSpace(event.Date) == "" {
		return apperrors.NewValidationError("date cannot be empty")
	}
	if event.MaxCapacity < 0 {
		return apperrors.NewValidationError("max capacity cannot be negative")
	}
	return nil
}

// GetAllEvents returns every event, newest first.
func (s *EventService) GetAllEvents(ctx context.Context) ([]*models.Event, error) {
	events, err := s.eventRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// GetEventByID returns one event.
func (s *EventService) GetEventByID(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %d: %w", id, err)
	}
	return event, nil
}

// CreateEvent creates a new event and notifies clients.
func (s *EventService) CreateEvent(ctx context.Context, event *models.Event) (int64, error) {
	if err := s.validateEvent(event); err != nil {
		return 0, err
	}

	id, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}

	s.logger.Info().Int64("eventID", id).Str("title", event.Title).Msg("Event created")
	s.publisher.PublishDataChanged("events")
	return id, nil
}

// UpdateEvent updates an existing event and notifies clients.
func (s *EventService) UpdateEvent(ctx context.Context, event *models.Event) error {
	if err := s.validateEvent(event); err != nil {
		return err
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return apperrors.ErrEventNotFound
		}
		return fmt.Errorf("failed to update event %d: %w", event.ID, err)
	}

	s.logger.Info().Int64("eventID", event.ID).Msg("Event updated")
	s.publisher.PublishDataChanged("events")
	return nil
}

// DeleteEvent removes an event. Registrations, attendance records and
// feedback for the event go with it.
func (s *EventService) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return apperrors.ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}

	s.logger.Info().Int64("eventID", id).Msg("Event deleted")
	s.publisher.PublishDataChanged("events")
	return nil
}
