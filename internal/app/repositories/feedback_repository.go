package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akshat/campushub/internal/app/models"
	"github.com/akshat/campushub/internal/pkg/logger"
)

// ErrFeedbackNotFound is returned when a feedback row does not exist.
var ErrFeedbackNotFound = ErrNotFound

// FeedbackRepository handles feedback database operations, including the
// per-student soft-delete markers.
type FeedbackRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFeedbackRepository creates a new FeedbackRepository.
func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *FeedbackRepository) infoQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"f.id", "f.student_id", "f.event_id", "f.rating", "f.comment", "f.submitted_at",
		"s.name AS student_name", "s.student_id AS student_id_string",
		"e.title AS event_title").
		From("feedback f").
		Join("students s ON f.student_id = s.id").
		Join("events e ON f.event_id = e.id")
}

func scanFeedbackInfo(row pgx.Row) (*models.FeedbackInfo, error) {
	info := &models.FeedbackInfo{}
	err := row.Scan(&info.ID, &info.StudentID, &info.EventID, &info.Rating, &info.Comment,
		&info.SubmittedAt, &info.StudentName, &info.StudentIDString, &info.EventTitle)
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (r *FeedbackRepository) queryInfos(ctx context.Context, builder squirrel.SelectBuilder) ([]models.FeedbackInfo, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build feedback query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing feedback query")
		return nil, fmt.Errorf("error querying feedback: %w", err)
	}
	defer rows.Close()

	infos := []models.FeedbackInfo{}
	for rows.Next() {
		info, err := scanFeedbackInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning feedback row: %w", err)
		}
		infos = append(infos, *info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback rows: %w", err)
	}

	return infos, nil
}

// Create stores a new feedback submission.
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) (int64, error) {
	sql, args, err := r.sb.Insert("feedback").
		Columns("student_id", "event_id", "rating", "comment").
		Values(feedback.StudentID, feedback.EventID, feedback.Rating, feedback.Comment).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create feedback query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create feedback query")
		return 0, fmt.Errorf("error creating feedback: %w", err)
	}

	return id, nil
}

// ListAll returns every feedback row joined for display, newest first.
// This is the admin view: soft-deleted rows are included.
func (r *FeedbackRepository) ListAll(ctx context.Context) ([]models.FeedbackInfo, error) {
	return r.queryInfos(ctx, r.infoQuery().OrderBy("f.submitted_at DESC"))
}

// ListForStudent returns one student's feedback, excluding rows the student
// has soft-deleted.
func (r *FeedbackRepository) ListForStudent(ctx context.Context, studentID int64) ([]models.FeedbackInfo, error) {
	deleted := r.sb.Select("df.feedback_id").
		From("deleted_feedback df").
		Where("df.student_id = f.student_id")

	deletedSQL, _, err := deleted.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build deleted feedback subquery: %w", err)
	}

	builder := r.infoQuery().
		Where(squirrel.Eq{"f.student_id": studentID}).
		Where(fmt.Sprintf("f.id NOT IN (%s)", deletedSQL)).
		OrderBy("f.submitted_at DESC")

	return r.queryInfos(ctx, builder)
}

// ListForEvent returns all feedback for one event, newest first.
func (r *FeedbackRepository) ListForEvent(ctx context.Context, eventID int64) ([]models.FeedbackInfo, error) {
	return r.queryInfos(ctx, r.infoQuery().
		Where(squirrel.Eq{"f.event_id": eventID}).
		OrderBy("f.submitted_at DESC"))
}

// SoftDelete hides one feedback row from one student. Repeating the call
// is a no-op via ON CONFLICT DO NOTHING.
func (r *FeedbackRepository) SoftDelete(ctx context.Context, studentID, feedbackID int64) error {
	sql, args, err := r.sb.Insert("deleted_feedback").
		Columns("student_id", "feedback_id").
		Values(studentID, feedbackID).
		Suffix("ON CONFLICT (student_id, feedback_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build soft delete query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Int64("feedbackID", feedbackID).
			Msg("Error executing soft delete feedback query")
		return fmt.Errorf("error soft deleting feedback: %w", err)
	}

	return nil
}

// HardDelete physically removes one feedback row (admin path).
func (r *FeedbackRepository) HardDelete(ctx context.Context, feedbackID int64) error {
	sql, args, err := r.sb.Delete("feedback").Where(squirrel.Eq{"id": feedbackID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build hard delete query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("feedbackID", feedbackID).Msg("Error executing hard delete feedback query")
		return fmt.Errorf("error deleting feedback: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrFeedbackNotFound
	}

	return nil
}

// HardDeleteMany physically removes several feedback rows and returns how
// many were deleted.
func (r *FeedbackRepository) HardDeleteMany(ctx context.Context, feedbackIDs []int64) (int64, error) {
	sql, args, err := r.sb.Delete("feedback").Where(squirrel.Eq{"id": feedbackIDs}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build bulk hard delete query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing bulk hard delete feedback query")
		return 0, fmt.Errorf("error deleting feedback: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}
