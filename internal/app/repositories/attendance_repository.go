package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akshat/campushub/internal/app/models"
	"github.com/akshat/campushub/internal/pkg/dberrors"
	"github.com/akshat/campushub/internal/pkg/logger"
)

// ErrCheckInExists is returned when a student checks in twice.
var ErrCheckInExists = errors.New("check-in already exists for this student and event")

// AttendanceRepository persists check-ins and admin marks. The resolved
// tri-state status is not stored anywhere; Roster returns the raw evidence
// and the service layer applies the precedence rule.
type AttendanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Roster returns one entry per student registered for the event, with the
// check-in and mark evidence left-joined in. The inner join on
// registrations keeps unregistered students out of the roster.
func (r *AttendanceRepository) Roster(ctx context.Context, eventID int64) ([]models.RosterEntry, error) {
	sql, args, err := r.sb.Select(
		"s.id", "s.name", "s.student_id", "s.email",
		"a.checked_in_at", "m.status", "m.marked_at").
		From("students s").
		Join("registrations r ON s.id = r.student_id AND r.event_id = ?", eventID).
		LeftJoin("attendance a ON s.id = a.student_id AND a.event_id = ?", eventID).
		LeftJoin("attendance_marks m ON s.id = m.student_id AND m.event_id = ?", eventID).
		OrderBy("s.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build roster query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", eventID).Msg("Error executing roster query")
		return nil, fmt.Errorf("error querying attendance roster: %w", err)
	}
	defer rows.Close()

	entries := []models.RosterEntry{}
	for rows.Next() {
		var entry models.RosterEntry
		if err := rows.Scan(&entry.StudentID, &entry.Name, &entry.ExternalID, &entry.Email,
			&entry.CheckedInAt, &entry.MarkStatus, &entry.MarkedAt); err != nil {
			return nil, fmt.Errorf("error scanning roster row: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster rows: %w", err)
	}

	return entries, nil
}

// InsertCheckIn records a student self-check-in. A second check-in for the
// same pair fails with ErrCheckInExists via the unique constraint.
func (r *AttendanceRepository) InsertCheckIn(ctx context.Context, studentID, eventID int64) (int64, error) {
	sql, args, err := r.sb.Insert("attendance").
		Columns("student_id", "event_id").
		Values(studentID, eventID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build check-in query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, ErrCheckInExists
		}
		logger.Error().Err(err).Int64("studentID", studentID).Int64("eventID", eventID).
			Msg("Error executing check-in query")
		return 0, fmt.Errorf("error inserting check-in: %w", err)
	}

	return id, nil
}

// UpsertCheckIn records a check-in for the pair, refreshing the timestamp
// when one already exists. Used by the admin mark-attended path, which must
// be idempotent.
func (r *AttendanceRepository) UpsertCheckIn(ctx context.Context, studentID, eventID int64) error {
	sql, args, err := r.sb.Insert("attendance").
		Columns("student_id", "event_id").
		Values(studentID, eventID).
		Suffix("ON CONFLICT (student_id, event_id) DO UPDATE SET checked_in_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert check-in query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Int64("eventID", eventID).
			Msg("Error executing upsert check-in query")
		return fmt.Errorf("error upserting check-in: %w", err)
	}

	return nil
}

// DeleteCheckIn removes a check-in if present.
func (r *AttendanceRepository) DeleteCheckIn(ctx context.Context, studentID, eventID int64) error {
	sql, args, err := r.sb.Delete("attendance").
		Where(squirrel.Eq{"student_id": studentID, "event_id": eventID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete check-in query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Int64("eventID", eventID).
			Msg("Error executing delete check-in query")
		return fmt.Errorf("error deleting check-in: %w", err)
	}

	return nil
}

// UpsertAbsentMark records an absent mark for the pair, refreshing the
// timestamp when one already exists.
func (r *AttendanceRepository) UpsertAbsentMark(ctx context.Context, studentID, eventID int64) error {
	sql, args, err := r.sb.Insert("attendance_marks").
		Columns("student_id", "event_id", "status").
		Values(studentID, eventID, models.StatusAbsent).
		Suffix("ON CONFLICT (student_id, event_id) DO UPDATE SET status = EXCLUDED.status, marked_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert mark query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Int64("eventID", eventID).
			Msg("Error executing upsert mark query")
		return fmt.Errorf("error upserting attendance mark: %w", err)
	}

	return nil
}

// DeleteMark removes an admin mark if present.
func (r *AttendanceRepository) DeleteMark(ctx context.Context, studentID, eventID int64) error {
	sql, args, err := r.sb.Delete("attendance_marks").
		Where(squirrel.Eq{"student_id": studentID, "event_id": eventID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete mark query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Int64("eventID", eventID).
			Msg("Error executing delete mark query")
		return fmt.Errorf("error deleting attendance mark: %w", err)
	}

	return nil
}

// ListCheckIns returns the raw check-in log for an event, newest first.
func (r *AttendanceRepository) ListCheckIns(ctx context.Context, eventID int64) ([]models.CheckInInfo, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.student_id", "a.event_id", "a.checked_in_at",
		"s.name AS student_name", "s.student_id AS student_id_string").
		From("attendance a").
		Join("students s ON a.student_id = s.id").
		Where(squirrel.Eq{"a.event_id": eventID}).
		OrderBy("a.checked_in_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list check-ins query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", eventID).Msg("Error executing list check-ins query")
		return nil, fmt.Errorf("error querying check-ins: %w", err)
	}
	defer rows.Close()

	infos := []models.CheckInInfo{}
	for rows.Next() {
		var info models.CheckInInfo
		if err := rows.Scan(&info.ID, &info.StudentID, &info.EventID, &info.CheckedInAt,
			&info.StudentName, &info.StudentIDString); err != nil {
			return nil, fmt.Errorf("error scanning check-in row: %w", err)
		}
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating check-in rows: %w", err)
	}

	return infos, nil
}
