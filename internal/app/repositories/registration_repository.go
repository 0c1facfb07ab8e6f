package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akshat/campushub/internal/app/models"
	"github.com/akshat/campushub/internal/pkg/dberrors"
	"github.com/akshat/campushub/internal/pkg/logger"
)

// Registration error types
var (
	// ErrRegistrationNotFound is returned when a registration does not exist.
	ErrRegistrationNotFound = ErrNotFound
	// ErrRegistrationExists is returned on a duplicate (student, event) pair.
	ErrRegistrationExists = errors.New("registration already exists for this student and event")
)

// RegistrationRepository handles registration database operations.
type RegistrationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRegistrationRepository creates a new RegistrationRepository.
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanRegistrationInfo(row pgx.Row) (*models.RegistrationInfo, error) {
	info := &models.RegistrationInfo{}
	err := row.Scan(&info.ID, &info.StudentID, &info.EventID, &info.RegisteredAt,
		&info.Verified, &info.VerifiedAt,
		&info.StudentName, &info.StudentIDString, &info.StudentEmail,
		&info.EventTitle, &info.EventDate, &info.EventTime)
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (r *RegistrationRepository) infoQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"r.id", "r.student_id", "r.event_id", "r.registered_at", "r.verified", "r.verified_at",
		"s.name AS student_name", "s.student_id AS student_id_string", "s.email AS student_email",
		"e.title AS event_title", "e.date", "e.time").
		From("registrations r").
		Join("students s ON r.student_id = s.id").
		Join("events e ON r.event_id = e.id")
}

// Create registers a student for an event.
func (r *RegistrationRepository) Create(ctx context.Context, studentID, eventID int64) (int64, error) {
	sql, args, err := r.sb.Insert("registrations").
		Columns("student_id", "event_id").
		Values(studentID, eventID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create registration query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, ErrRegistrationExists
		}
		logger.Error().Err(err).Int64("studentID", studentID).Int64("eventID", eventID).
			Msg("Error executing create registration query")
		return 0, fmt.Errorf("error creating registration: %w", err)
	}

	return id, nil
}

// GetAll retrieves all registrations with joined student and event fields,
// newest first.
func (r *RegistrationRepository) GetAll(ctx context.Context) ([]models.RegistrationInfo, error) {
	sql, args, err := r.infoQuery().OrderBy("r.registered_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all registrations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all registrations query")
		return nil, fmt.Errorf("error querying registrations: %w", err)
	}
	defer rows.Close()

	infos := []models.RegistrationInfo{}
	for rows.Next() {
		info, err := scanRegistrationInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning registration row: %w", err)
		}
		infos = append(infos, *info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}

	return infos, nil
}

// GetByID retrieves one registration with joined fields.
func (r *RegistrationRepository) GetByID(ctx context.Context, id int64) (*models.RegistrationInfo, error) {
	sql, args, err := r.infoQuery().Where(squirrel.Eq{"r.id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get registration query: %w", err)
	}

	info, err := scanRegistrationInfo(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("error getting registration by ID: %w", err)
	}

	return info, nil
}

// Verify marks one registration as verified with the current timestamp.
func (r *RegistrationRepository) Verify(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("registrations").
		Set("verified", true).
		Set("verified_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build verify registration query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("registrationID", id).Msg("Error executing verify registration query")
		return fmt.Errorf("error verifying registration: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}

// VerifyAll marks every unverified registration as verified and returns
// how many rows changed.
func (r *RegistrationRepository) VerifyAll(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Update("registrations").
		Set("verified", true).
		Set("verified_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"verified": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build verify all query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing verify all query")
		return 0, fmt.Errorf("error verifying registrations: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// Delete removes one registration.
func (r *RegistrationRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("registrations").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete registration query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("registrationID", id).Msg("Error executing delete registration query")
		return fmt.Errorf("error deleting registration: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}

// DeleteAll removes every registration and returns how many rows changed.
func (r *RegistrationRepository) DeleteAll(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Delete("registrations").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete all registrations query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete all registrations query")
		return 0, fmt.Errorf("error deleting registrations: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}
