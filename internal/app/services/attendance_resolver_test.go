package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshat/campushub/internal/app/models"
)

func entry(id int64, name string) models.RosterEntry {
	return models.RosterEntry{
		StudentID:  id,
		Name:       name,
		ExternalID: "STU-" + name,
		Email:      name + "@campus.test",
	}
}

func withCheckIn(e models.RosterEntry, at time.Time) models.RosterEntry {
	e.CheckedInAt = &at
	return e
}

func withMark(e models.RosterEntry, status models.AttendanceStatus, at time.Time) models.RosterEntry {
	e.MarkStatus = &status
	e.MarkedAt = &at
	return e
}

func TestResolveRoster_Precedence(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		entry models.RosterEntry
		want  models.AttendanceStatus
	}{
		{name: "no evidence", entry: entry(1, "ada"), want: models.StatusNotMarked},
		{name: "check-in only", entry: withCheckIn(entry(1, "ada"), now), want: models.StatusAttended},
		{name: "absent mark only", entry: withMark(entry(1, "ada"), models.StatusAbsent, now), want: models.StatusAbsent},
		{
			name:  "check-in beats absent mark",
			entry: withMark(withCheckIn(entry(1, "ada"), now), models.StatusAbsent, now),
			want:  models.StatusAttended,
		},
		{
			name:  "attended mark without check-in is not marked",
			entry: withMark(entry(1, "ada"), models.StatusAttended, now),
			want:  models.StatusNotMarked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := ResolveRoster([]models.RosterEntry{tt.entry})
			require.Len(t, records, 1)
			assert.Equal(t, tt.want, records[0].Status)
		})
	}
}

func TestResolveRoster_CarriesTimestamps(t *testing.T) {
	checkedIn := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	marked := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)

	records := ResolveRoster([]models.RosterEntry{
		withCheckIn(entry(1, "ada"), checkedIn),
		withMark(entry(2, "bob"), models.StatusAbsent, marked),
	})
	require.Len(t, records, 2)

	require.NotNil(t, records[0].CheckedInAt)
	assert.Equal(t, checkedIn, *records[0].CheckedInAt)

	assert.Nil(t, records[1].CheckedInAt)
	require.NotNil(t, records[1].MarkedAt)
	assert.Equal(t, marked, *records[1].MarkedAt)
}

func TestResolveRoster_OrdersByName(t *testing.T) {
	records := ResolveRoster([]models.RosterEntry{
		entry(3, "carol"),
		entry(1, "ada"),
		entry(2, "bob"),
	})
	require.Len(t, records, 3)

	names := []string{records[0].Name, records[1].Name, records[2].Name}
	assert.Equal(t, []string{"ada", "bob", "carol"}, names)
}

func TestResolveRoster_Empty(t *testing.T) {
	records := ResolveRoster(nil)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
