package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshat/campushub/internal/app/models"
)

// fakeFetcher serves canned state, optionally failing per call.
type fakeFetcher struct {
	registrations []models.RegistrationInfo
	rosters       map[int64][]models.AttendanceRecord

	regsErr       error
	attendanceErr error
}

func (f *fakeFetcher) EventAttendance(_ context.Context, eventID int64) ([]models.AttendanceRecord, error) {
	if f.attendanceErr != nil {
		return nil, f.attendanceErr
	}
	return f.rosters[eventID], nil
}

func (f *fakeFetcher) Registrations(_ context.Context) ([]models.RegistrationInfo, error) {
	if f.regsErr != nil {
		return nil, f.regsErr
	}
	return f.registrations, nil
}

func TestPoller_PollOnce(t *testing.T) {
	session, _ := newRecordedSession(5)
	fetcher := &fakeFetcher{
		registrations: []models.RegistrationInfo{registration(5, 1, "Workshop", false)},
		rosters: map[int64][]models.AttendanceRecord{
			1: {record(5, "ada", models.StatusAttended)},
		},
	}
	poller := NewPoller(session, fetcher, time.Second, zerolog.Nop())

	require.NoError(t, poller.PollOnce(context.Background()))

	assert.Len(t, session.Registrations(), 1)
	assert.Equal(t, models.StatusAttended, session.OwnStatus(1))
}

func TestPoller_FetchFailureKeepsCachedState(t *testing.T) {
	session, rec := newRecordedSession(5)
	fetcher := &fakeFetcher{
		registrations: []models.RegistrationInfo{registration(5, 1, "Workshop", false)},
		rosters: map[int64][]models.AttendanceRecord{
			1: {record(5, "ada", models.StatusAttended)},
		},
	}
	poller := NewPoller(session, fetcher, time.Second, zerolog.Nop())
	require.NoError(t, poller.PollOnce(context.Background()))

	before := len(rec.notifications)
	fetcher.regsErr = errors.New("connection refused")
	fetcher.attendanceErr = errors.New("connection refused")
	assert.Error(t, poller.PollOnce(context.Background()))

	assert.Len(t, session.Registrations(), 1)
	assert.Equal(t, models.StatusAttended, session.OwnStatus(1))
	assert.Len(t, rec.notifications, before, "failed polls must not derive notifications")
}

// The poll path and the push path run through the same reconciliation, so
// identical server state yields identical notifications either way.
func TestPoller_PushPollEquivalence(t *testing.T) {
	regs := []models.RegistrationInfo{registration(5, 1, "Workshop", false)}
	roster := []models.AttendanceRecord{record(5, "ada", models.StatusAttended)}

	pushed, pushedRec := newRecordedSession(5)
	pushed.ApplyRegistrations(regs)
	pushed.ApplyAttendanceSnapshot(1, roster)

	polled, polledRec := newRecordedSession(5)
	poller := NewPoller(polled, &fakeFetcher{
		registrations: regs,
		rosters:       map[int64][]models.AttendanceRecord{1: roster},
	}, time.Second, zerolog.Nop())
	require.NoError(t, poller.PollOnce(context.Background()))

	require.Equal(t, pushedRec.kinds(), polledRec.kinds())
	assert.Equal(t, pushed.OwnStatus(1), polled.OwnStatus(1))
	assert.Equal(t, pushed.Roster(1), polled.Roster(1))
}

func TestPoller_StartStop(t *testing.T) {
	session, _ := newRecordedSession(5)
	poller := NewPoller(session, &fakeFetcher{}, 10*time.Millisecond, zerolog.Nop())

	poller.Start(context.Background())
	poller.Start(context.Background()) // second Start is a no-op

	time.Sleep(30 * time.Millisecond)
	poller.Stop()
	poller.Stop() // second Stop is a no-op

	// Restart works after a full stop
	poller.Start(context.Background())
	poller.Stop()
}

func TestNewPoller_DefaultInterval(t *testing.T) {
	session, _ := newRecordedSession(5)
	poller := NewPoller(session, &fakeFetcher{}, 0, zerolog.Nop())
	assert.Equal(t, DefaultPollInterval, poller.interval)
}
