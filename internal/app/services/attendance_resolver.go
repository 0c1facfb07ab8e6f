package services

import (
	"sort"

	"github.com/akshat/campushub/internal/app/models"
)

// ResolveRoster derives the tri-state attendance status for each registered
// student from the raw evidence rows. A check-in always wins: the student is
// attended no matter what mark exists. Without a check-in, an absent mark
// yields absent. Everything else is not_marked. The result is ordered by
// student name ascending.
//
// The function is pure. It is called after every attendance write and by
// direct roster fetches, and both paths must agree.
func ResolveRoster(entries []models.RosterEntry) []models.AttendanceRecord {
	records := make([]models.AttendanceRecord, 0, len(entries))
	for _, e := range entries {
		record := models.AttendanceRecord{
			StudentID:  e.StudentID,
			Name:       e.Name,
			ExternalID: e.ExternalID,
			Email:      e.Email,
			Status:     models.StatusNotMarked,
		}
		switch {
		case e.CheckedInAt != nil:
			record.Status = models.StatusAttended
			record.CheckedInAt = e.CheckedInAt
			record.MarkedAt = e.MarkedAt
		case e.MarkStatus != nil && *e.MarkStatus == models.StatusAbsent:
			record.Status = models.StatusAbsent
			record.MarkedAt = e.MarkedAt
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Name != records[j].Name {
			return records[i].Name < records[j].Name
		}
		return records[i].StudentID < records[j].StudentID
	})

	return records
}
