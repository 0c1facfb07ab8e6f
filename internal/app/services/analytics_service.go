package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/akshat/campushub/internal/app/models/dto"
	"github.com/akshat/campushub/internal/app/repositories"
	"github.com/akshat/campushub/internal/pkg/apperrors"
	"github.com/akshat/campushub/internal/pkg/cache"
)

// EventClassifier buckets an event title into a display category.
type EventClassifier func(title string) string

// DefaultEventClassifier matches keywords in the title, first hit wins.
func DefaultEventClassifier(title string) string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "workshop"):
		return "Workshop"
	case strings.Contains(lower, "seminar"):
		return "Seminar"
	case strings.Contains(lower, "conference"):
		return "Conference"
	case strings.Contains(lower, "meeting"):
		return "Meeting"
	case strings.Contains(lower, "training"):
		return "Training"
	case strings.Contains(lower, "competition"), strings.Contains(lower, "contest"):
		return "Competition"
	case strings.Contains(lower, "social"), strings.Contains(lower, "party"):
		return "Social"
	case strings.Contains(lower, "sports"), strings.Contains(lower, "game"):
		return "Sports"
	case strings.Contains(lower, "session"):
		return "Session"
	case strings.Contains(lower, "design"):
		return "Design"
	case strings.Contains(lower, "dsa"):
		return "Technical"
	default:
		return "Other"
	}
}

// AnalyticsService serves aggregate statistics, cached for a short TTL.
// Attendance rates everywhere use the same rule as the roster resolver: a
// check-in or an attended mark counts as attended.
type AnalyticsService struct {
	analyticsRepo *repositories.AnalyticsRepository
	cache         *cache.Cache
	classify      EventClassifier
	logger        zerolog.Logger
}

// NewAnalyticsService creates a new analytics service instance. A nil
// classifier falls back to DefaultEventClassifier.
func NewAnalyticsService(analyticsRepo *repositories.AnalyticsRepository, c *cache.Cache, classify EventClassifier, logger zerolog.Logger) *AnalyticsService {
	if classify == nil {
		classify = DefaultEventClassifier
	}
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		cache:         c,
		classify:      classify,
		logger:        logger,
	}
}

// GetOverview returns system-wide totals and the overall attendance rate.
func (s *AnalyticsService) GetOverview(ctx context.Context) (*dto.AnalyticsOverview, error) {
	const key = "analytics:overview"
	cached := &dto.AnalyticsOverview{}
	if err := s.cache.Get(ctx, key, cached); err == nil {
		return cached, nil
	}

	overview, err := s.analyticsRepo.Overview(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, overview)
	return overview, nil
}

// GetTopActiveStudents returns the most active students.
func (s *AnalyticsService) GetTopActiveStudents(ctx context.Context, limit int) ([]dto.StudentActivity, error) {
	if limit <= 0 {
		limit = 10
	}

	key := fmt.Sprintf("analytics:top-students:%d", limit)
	var cached []dto.StudentActivity
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	activities, err := s.analyticsRepo.TopActiveStudents(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, activities)
	return activities, nil
}

// GetEventPopularity returns events ranked by registrations.
func (s *AnalyticsService) GetEventPopularity(ctx context.Context, limit int) ([]dto.EventPopularity, error) {
	if limit <= 0 {
		limit = 10
	}

	key := fmt.Sprintf("analytics:event-popularity:%d", limit)
	var cached []dto.EventPopularity
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	popularity, err := s.analyticsRepo.EventPopularity(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, popularity)
	return popularity, nil
}

// GetEventTypeAnalysis classifies every event title and returns the bucket
// counts with their share of all events, largest bucket first.
func (s *AnalyticsService) GetEventTypeAnalysis(ctx context.Context) ([]dto.EventTypeCount, error) {
	const key = "analytics:event-types"
	var cached []dto.EventTypeCount
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	titles, err := s.analyticsRepo.EventTitles(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, title := range titles {
		counts[s.classify(title)]++
	}

	total := int64(len(titles))
	result := make([]dto.EventTypeCount, 0, len(counts))
	for eventType, count := range counts {
		var percentage float64
		if total > 0 {
			percentage = roundOne(float64(count) * 100 / float64(total))
		}
		result = append(result, dto.EventTypeCount{
			EventType:  eventType,
			Count:      count,
			Percentage: percentage,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].EventType < result[j].EventType
	})

	s.cache.Set(ctx, key, result)
	return result, nil
}

// GetEventStats returns detailed statistics for one event.
func (s *AnalyticsService) GetEventStats(ctx context.Context, eventID int64) (*dto.EventStats, error) {
	key := fmt.Sprintf("analytics:event-stats:%d", eventID)
	cached := &dto.EventStats{}
	if err := s.cache.Get(ctx, key, cached); err == nil {
		return cached, nil
	}

	stats, err := s.analyticsRepo.EventStats(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	s.cache.Set(ctx, key, stats)
	return stats, nil
}

// roundOne rounds to one decimal place.
func roundOne(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
