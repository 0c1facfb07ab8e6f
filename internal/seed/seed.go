package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// CleanOrphanedData removes rows that reference students which no longer
// exist. Event references are covered by foreign keys; student rows were
// historically deletable without cascading, so stale references can exist
// in imported data.
func CleanOrphanedData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	cleanups := []struct {
		table string
		query string
	}{
		{"registrations", "DELETE FROM registrations WHERE student_id NOT IN (SELECT id FROM students)"},
		{"attendance", "DELETE FROM attendance WHERE student_id NOT IN (SELECT id FROM students)"},
		{"attendance_marks", "DELETE FROM attendance_marks WHERE student_id NOT IN (SELECT id FROM students)"},
		{"feedback", "DELETE FROM feedback WHERE student_id NOT IN (SELECT id FROM students)"},
	}

	var finalErr error
	for _, c := range cleanups {
		tag, err := dbPool.Exec(ctx, c.query)
		if err != nil {
			lgr.Error().Err(err).Str("table", c.table).Msg("Failed to clean orphaned rows")
			finalErr = err
			continue
		}
		if tag.RowsAffected() > 0 {
			lgr.Info().
				Str("table", c.table).
				Int64("rows", tag.RowsAffected()).
				Msg("Cleaned orphaned rows")
		}
	}

	return finalErr
}
