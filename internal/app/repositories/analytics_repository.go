package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akshat/campushub/internal/app/models/dto"
	"github.com/akshat/campushub/internal/pkg/logger"
)

// AnalyticsRepository derives aggregate statistics. Every attendance count
// applies the same precedence rule as the resolver: a check-in OR an
// attended mark counts as attended.
type AnalyticsRepository struct {
	db *pgxpool.Pool
}

// NewAnalyticsRepository creates a new AnalyticsRepository.
func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// Overview returns system-wide totals and the overall attendance rate.
func (r *AnalyticsRepository) Overview(ctx context.Context) (*dto.AnalyticsOverview, error) {
	overview := &dto.AnalyticsOverview{}

	counts := []struct {
		query string
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM events", &overview.TotalEvents},
		{"SELECT COUNT(*) FROM students", &overview.TotalStudents},
		{"SELECT COUNT(*) FROM registrations", &overview.TotalRegistrations},
	}
	for _, c := range counts {
		if err := r.db.QueryRow(ctx, c.query).Scan(c.dest); err != nil {
			logger.Error().Err(err).Str("query", c.query).Msg("Error executing analytics count query")
			return nil, fmt.Errorf("error computing analytics overview: %w", err)
		}
	}

	const rateQuery = `
		SELECT
			COUNT(DISTINCT CASE WHEN a.id IS NOT NULL OR am.id IS NOT NULL THEN r.student_id END),
			COUNT(DISTINCT r.student_id)
		FROM registrations r
		LEFT JOIN attendance a ON r.student_id = a.student_id AND r.event_id = a.event_id
		LEFT JOIN attendance_marks am ON r.student_id = am.student_id AND r.event_id = am.event_id AND am.status = 'attended'`

	var attended, registered int64
	if err := r.db.QueryRow(ctx, rateQuery).Scan(&attended, &registered); err != nil {
		logger.Error().Err(err).Msg("Error executing attendance rate query")
		return nil, fmt.Errorf("error computing attendance rate: %w", err)
	}
	if registered > 0 {
		overview.AttendanceRate = attended * 100 / registered
	}

	return overview, nil
}

// TopActiveStudents ranks students by registrations and attendance rate.
func (r *AnalyticsRepository) TopActiveStudents(ctx context.Context, limit int) ([]dto.StudentActivity, error) {
	const query = `
		SELECT
			s.id,
			s.name,
			s.student_id,
			COUNT(DISTINCT r.event_id) AS total_registrations,
			COUNT(DISTINCT CASE WHEN a.id IS NOT NULL OR am.id IS NOT NULL THEN r.event_id END) AS events_attended,
			CASE WHEN COUNT(DISTINCT r.event_id) > 0
				THEN ROUND(COUNT(DISTINCT CASE WHEN a.id IS NOT NULL OR am.id IS NOT NULL THEN r.event_id END) * 100.0
					/ COUNT(DISTINCT r.event_id), 1)
				ELSE 0
			END AS attendance_rate
		FROM students s
		LEFT JOIN registrations r ON s.id = r.student_id
		LEFT JOIN attendance a ON s.id = a.student_id AND r.event_id = a.event_id
		LEFT JOIN attendance_marks am ON s.id = am.student_id AND r.event_id = am.event_id AND am.status = 'attended'
		GROUP BY s.id, s.name, s.student_id
		HAVING COUNT(DISTINCT r.event_id) > 0
		ORDER BY total_registrations DESC, attendance_rate DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing top active students query")
		return nil, fmt.Errorf("error querying top active students: %w", err)
	}
	defer rows.Close()

	activities := []dto.StudentActivity{}
	for rows.Next() {
		var a dto.StudentActivity
		if err := rows.Scan(&a.StudentID, &a.Name, &a.ExternalID, &a.TotalRegistrations,
			&a.EventsAttended, &a.AttendanceRate); err != nil {
			return nil, fmt.Errorf("error scanning student activity row: %w", err)
		}
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student activity rows: %w", err)
	}

	return activities, nil
}

// EventPopularity ranks events by registrations and attendance.
func (r *AnalyticsRepository) EventPopularity(ctx context.Context, limit int) ([]dto.EventPopularity, error) {
	const query = `
		SELECT
			e.id,
			e.title,
			e.date,
			e.location,
			COUNT(DISTINCT r.student_id) AS registration_count,
			COUNT(DISTINCT CASE WHEN a.id IS NOT NULL OR am.id IS NOT NULL THEN r.student_id END) AS attendance_count,
			CASE WHEN COUNT(DISTINCT r.student_id) > 0
				THEN ROUND(COUNT(DISTINCT CASE WHEN a.id IS NOT NULL OR am.id IS NOT NULL THEN r.student_id END) * 100.0
					/ COUNT(DISTINCT r.student_id), 1)
				ELSE 0
			END AS attendance_rate
		FROM events e
		LEFT JOIN registrations r ON e.id = r.event_id
		LEFT JOIN attendance a ON e.id = a.event_id AND r.student_id = a.student_id
		LEFT JOIN attendance_marks am ON e.id = am.event_id AND r.student_id = am.student_id AND am.status = 'attended'
		GROUP BY e.id, e.title, e.date, e.location
		ORDER BY registration_count DESC, attendance_count DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing event popularity query")
		return nil, fmt.Errorf("error querying event popularity: %w", err)
	}
	defer rows.Close()

	popularity := []dto.EventPopularity{}
	for rows.Next() {
		var p dto.EventPopularity
		if err := rows.Scan(&p.EventID, &p.Title, &p.Date, &p.Location,
			&p.RegistrationCount, &p.AttendanceCount, &p.AttendanceRate); err != nil {
			return nil, fmt.Errorf("error scanning event popularity row: %w", err)
		}
		popularity = append(popularity, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event popularity rows: %w", err)
	}

	return popularity, nil
}

// EventTitles returns every event title, for classification in Go.
func (r *AnalyticsRepository) EventTitles(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT title FROM events`)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing event titles query")
		return nil, fmt.Errorf("error querying event titles: %w", err)
	}
	defer rows.Close()

	titles := []string{}
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("error scanning event title: %w", err)
		}
		titles = append(titles, title)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event title rows: %w", err)
	}

	return titles, nil
}

// EventStats returns detailed statistics for one event.
func (r *AnalyticsRepository) EventStats(ctx context.Context, eventID int64) (*dto.EventStats, error) {
	const query = `
		SELECT
			e.id,
			e.title,
			e.description,
			e.date,
			e.time,
			e.location,
			e.max_capacity,
			COUNT(DISTINCT r.student_id) AS total_registrations,
			COUNT(DISTINCT CASE WHEN a.id IS NOT NULL OR am.id IS NOT NULL THEN r.student_id END) AS total_attendance,
			COUNT(DISTINCT a.student_id) AS total_check_ins,
			CASE WHEN COUNT(DISTINCT r.student_id) > 0
				THEN ROUND(COUNT(DISTINCT CASE WHEN a.id IS NOT NULL OR am.id IS NOT NULL THEN r.student_id END) * 100.0
					/ COUNT(DISTINCT r.student_id), 1)
				ELSE 0
			END AS attendance_rate,
			CASE WHEN COUNT(DISTINCT r.student_id) > 0
				THEN ROUND(COUNT(DISTINCT a.student_id) * 100.0 / COUNT(DISTINCT r.student_id), 1)
				ELSE 0
			END AS check_in_rate
		FROM events e
		LEFT JOIN registrations r ON e.id = r.event_id
		LEFT JOIN attendance a ON e.id = a.event_id AND r.student_id = a.student_id
		LEFT JOIN attendance_marks am ON e.id = am.event_id AND r.student_id = am.student_id AND am.status = 'attended'
		WHERE e.id = $1
		GROUP BY e.id, e.title, e.description, e.date, e.time, e.location, e.max_capacity`

	stats := &dto.EventStats{}
	err := r.db.QueryRow(ctx, query, eventID).Scan(&stats.EventID, &stats.Title, &stats.Description,
		&stats.Date, &stats.Time, &stats.Location, &stats.MaxCapacity,
		&stats.TotalRegistrations, &stats.TotalAttendance, &stats.TotalCheckIns,
		&stats.AttendanceRate, &stats.CheckInRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		logger.Error().Err(err).Int64("eventID", eventID).Msg("Error executing event stats query")
		return nil, fmt.Errorf("error querying event stats: %w", err)
	}

	return stats, nil
}
