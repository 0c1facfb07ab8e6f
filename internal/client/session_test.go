package client

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshat/campushub/internal/app/models"
)

type notificationRecorder struct {
	notifications []Notification
}

func (r *notificationRecorder) record(n Notification) {
	r.notifications = append(r.notifications, n)
}

func (r *notificationRecorder) kinds() []NotificationKind {
	kinds := []NotificationKind{}
	for _, n := range r.notifications {
		kinds = append(kinds, n.Kind)
	}
	return kinds
}

func newRecordedSession(studentID int64) (*Session, *notificationRecorder) {
	rec := &notificationRecorder{}
	session := NewSession(rec.record, zerolog.Nop())
	session.Authenticate(studentID)
	session.MarkSubscribed()
	return session, rec
}

func record(studentID int64, name string, status models.AttendanceStatus) models.AttendanceRecord {
	return models.AttendanceRecord{
		StudentID: studentID,
		Name:      name,
		Status:    status,
	}
}

func registration(studentID, eventID int64, title string, verified bool) models.RegistrationInfo {
	return models.RegistrationInfo{
		Registration: models.Registration{
			ID:        studentID*100 + eventID,
			StudentID: studentID,
			EventID:   eventID,
			Verified:  verified,
		},
		EventTitle: title,
	}
}

func TestSession_Lifecycle(t *testing.T) {
	session := NewSession(nil, zerolog.Nop())
	assert.Equal(t, StateAnonymous, session.State())

	// Topics cannot be joined before an identity is known
	session.MarkSubscribed()
	assert.Equal(t, StateAnonymous, session.State())

	session.Authenticate(5)
	assert.Equal(t, StateAuthenticated, session.State())
	assert.Equal(t, int64(5), session.StudentID())

	session.MarkSubscribed()
	assert.Equal(t, StateSubscribed, session.State())

	session.Reset()
	assert.Equal(t, StateAnonymous, session.State())
	assert.Equal(t, int64(0), session.StudentID())
}

func TestSession_OwnStatusNotification(t *testing.T) {
	session, rec := newRecordedSession(5)

	snapshot := []models.AttendanceRecord{
		record(5, "ada", models.StatusAttended),
		record(6, "bob", models.StatusAbsent),
	}
	session.ApplyAttendanceSnapshot(1, snapshot)

	require.Len(t, rec.notifications, 1)
	assert.Equal(t, NotifyAttendanceChanged, rec.notifications[0].Kind)
	assert.Equal(t, int64(1), rec.notifications[0].EventID)
	assert.Equal(t, models.StatusAttended, session.OwnStatus(1))

	// Re-applying the same snapshot is silent
	session.ApplyAttendanceSnapshot(1, snapshot)
	assert.Len(t, rec.notifications, 1)
}

func TestSession_NoNotificationBetweenMarkedStates(t *testing.T) {
	session, rec := newRecordedSession(5)

	session.ApplyAttendanceSnapshot(1, []models.AttendanceRecord{record(5, "ada", models.StatusAbsent)})
	require.Len(t, rec.notifications, 1)

	// absent -> attended is a correction, not a first marking
	session.ApplyAttendanceSnapshot(1, []models.AttendanceRecord{record(5, "ada", models.StatusAttended)})
	assert.Len(t, rec.notifications, 1)
	assert.Equal(t, models.StatusAttended, session.OwnStatus(1))
}

func TestSession_AdminNeverSelfNotifies(t *testing.T) {
	session, rec := newRecordedSession(0)

	snapshot := []models.AttendanceRecord{record(5, "ada", models.StatusAttended)}
	session.ApplyAttendanceSnapshot(1, snapshot)

	assert.Empty(t, rec.notifications)
	assert.Equal(t, snapshot, session.Roster(1))
}

func TestSession_RosterAlwaysReplaced(t *testing.T) {
	session, _ := newRecordedSession(0)

	session.ApplyAttendanceSnapshot(1, []models.AttendanceRecord{record(5, "ada", models.StatusNotMarked)})
	session.ApplyAttendanceSnapshot(1, []models.AttendanceRecord{
		record(5, "ada", models.StatusAttended),
		record(6, "bob", models.StatusNotMarked),
	})

	roster := session.Roster(1)
	require.Len(t, roster, 2)
	assert.Equal(t, models.StatusAttended, roster[0].Status)
}

func TestSession_RegistrationFirstSyncSeedsSilently(t *testing.T) {
	session, rec := newRecordedSession(0)

	session.ApplyRegistrations([]models.RegistrationInfo{
		registration(5, 1, "Workshop", false),
		registration(6, 1, "Workshop", true),
	})

	assert.Empty(t, rec.notifications)
	assert.Len(t, session.Registrations(), 2)
}

func TestSession_NewRegistrations(t *testing.T) {
	session, rec := newRecordedSession(0)

	session.ApplyRegistrations([]models.RegistrationInfo{registration(5, 1, "Workshop", false)})
	session.ApplyRegistrations([]models.RegistrationInfo{
		registration(5, 1, "Workshop", false),
		registration(6, 1, "Workshop", false),
		registration(7, 2, "Seminar", false),
	})

	require.Len(t, rec.notifications, 1)
	assert.Equal(t, NotifyNewRegistrations, rec.notifications[0].Kind)
	assert.Equal(t, "2 new registrations", rec.notifications[0].Message)
}

func TestSession_RegistrationVerified(t *testing.T) {
	session, rec := newRecordedSession(0)

	session.ApplyRegistrations([]models.RegistrationInfo{registration(5, 1, "Workshop", false)})
	session.ApplyRegistrations([]models.RegistrationInfo{registration(5, 1, "Workshop", true)})

	require.Len(t, rec.notifications, 1)
	assert.Equal(t, NotifyRegistrationVerified, rec.notifications[0].Kind)
	assert.Equal(t, "Registration for Workshop was verified", rec.notifications[0].Message)

	// Already verified, nothing further
	session.ApplyRegistrations([]models.RegistrationInfo{registration(5, 1, "Workshop", true)})
	assert.Len(t, rec.notifications, 1)
}

func TestSession_RegistrationRemoved(t *testing.T) {
	session, rec := newRecordedSession(0)

	session.ApplyRegistrations([]models.RegistrationInfo{
		registration(5, 1, "Workshop", false),
		registration(6, 2, "Seminar", false),
	})
	session.ApplyRegistrations([]models.RegistrationInfo{registration(5, 1, "Workshop", false)})

	require.Len(t, rec.notifications, 1)
	assert.Equal(t, NotifyRegistrationRemoved, rec.notifications[0].Kind)
	assert.Equal(t, "Registration for Seminar was removed", rec.notifications[0].Message)
	assert.Len(t, session.Registrations(), 1)
}

func TestSession_RemoveAllThenReaddNotifies(t *testing.T) {
	session, rec := newRecordedSession(0)

	session.ApplyRegistrations([]models.RegistrationInfo{registration(5, 1, "Workshop", false)})
	session.ApplyRegistrations(nil)
	require.Equal(t, []NotificationKind{NotifyRegistrationRemoved}, rec.kinds())

	// The cache is seeded even though it is empty, so re-adding is news
	session.ApplyRegistrations([]models.RegistrationInfo{registration(5, 1, "Workshop", false)})
	assert.Equal(t, []NotificationKind{NotifyRegistrationRemoved, NotifyNewRegistrations}, rec.kinds())
}

func TestSession_SubscribedEvents(t *testing.T) {
	admin, _ := newRecordedSession(0)
	student, _ := newRecordedSession(5)

	regs := []models.RegistrationInfo{
		registration(5, 1, "Workshop", false),
		registration(6, 2, "Seminar", false),
		registration(7, 2, "Seminar", false),
	}
	admin.ApplyRegistrations(regs)
	student.ApplyRegistrations(regs)

	assert.ElementsMatch(t, []int64{1, 2}, admin.SubscribedEvents())
	assert.ElementsMatch(t, []int64{1}, student.SubscribedEvents())
}
