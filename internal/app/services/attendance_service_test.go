package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshat/campushub/internal/app/models"
	"github.com/akshat/campushub/internal/app/repositories"
	"github.com/akshat/campushub/internal/pkg/apperrors"
)

type pair struct {
	studentID int64
	eventID   int64
}

// fakeAttendanceStore keeps check-ins and marks in memory, mimicking the
// unique constraints and upsert semantics of the real tables.
type fakeAttendanceStore struct {
	students map[int64]models.RosterEntry
	checkIns map[pair]time.Time
	marks    map[pair]time.Time
	nextID   int64
}

func newFakeStore(students ...models.RosterEntry) *fakeAttendanceStore {
	s := &fakeAttendanceStore{
		students: make(map[int64]models.RosterEntry),
		checkIns: make(map[pair]time.Time),
		marks:    make(map[pair]time.Time),
		nextID:   1,
	}
	for _, st := range students {
		s.students[st.StudentID] = st
	}
	return s
}

func (s *fakeAttendanceStore) Roster(_ context.Context, eventID int64) ([]models.RosterEntry, error) {
	entries := []models.RosterEntry{}
	for _, st := range s.students {
		e := st
		if at, ok := s.checkIns[pair{st.StudentID, eventID}]; ok {
			t := at
			e.CheckedInAt = &t
		}
		if at, ok := s.marks[pair{st.StudentID, eventID}]; ok {
			t := at
			status := models.StatusAbsent
			e.MarkStatus = &status
			e.MarkedAt = &t
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *fakeAttendanceStore) InsertCheckIn(_ context.Context, studentID, eventID int64) (int64, error) {
	key := pair{studentID, eventID}
	if _, ok := s.checkIns[key]; ok {
		return 0, repositories.ErrCheckInExists
	}
	s.checkIns[key] = time.Now()
	s.nextID++
	return s.nextID, nil
}

func (s *fakeAttendanceStore) UpsertCheckIn(_ context.Context, studentID, eventID int64) error {
	s.checkIns[pair{studentID, eventID}] = time.Now()
	return nil
}

func (s *fakeAttendanceStore) DeleteCheckIn(_ context.Context, studentID, eventID int64) error {
	delete(s.checkIns, pair{studentID, eventID})
	return nil
}

func (s *fakeAttendanceStore) UpsertAbsentMark(_ context.Context, studentID, eventID int64) error {
	s.marks[pair{studentID, eventID}] = time.Now()
	return nil
}

func (s *fakeAttendanceStore) DeleteMark(_ context.Context, studentID, eventID int64) error {
	delete(s.marks, pair{studentID, eventID})
	return nil
}

func (s *fakeAttendanceStore) ListCheckIns(_ context.Context, eventID int64) ([]models.CheckInInfo, error) {
	infos := []models.CheckInInfo{}
	for key, at := range s.checkIns {
		if key.eventID != eventID {
			continue
		}
		st := s.students[key.studentID]
		infos = append(infos, models.CheckInInfo{
			CheckIn: models.CheckIn{
				StudentID:   key.studentID,
				EventID:     eventID,
				CheckedInAt: at,
			},
			StudentName:     st.Name,
			StudentIDString: st.ExternalID,
		})
	}
	return infos, nil
}

// recordingPublisher counts publishes per event.
type recordingPublisher struct {
	attendance []int64
	dataKinds  []string
}

func (p *recordingPublisher) PublishAttendance(eventID int64, _ any) {
	p.attendance = append(p.attendance, eventID)
}

func (p *recordingPublisher) PublishDataChanged(kind string) {
	p.dataKinds = append(p.dataKinds, kind)
}

func newTestService(students ...models.RosterEntry) (*AttendanceService, *fakeAttendanceStore, *recordingPublisher) {
	store := newFakeStore(students...)
	pub := &recordingPublisher{}
	svc := NewAttendanceService(store, pub, zerolog.Nop())
	return svc, store, pub
}

func statusOf(t *testing.T, records []models.AttendanceRecord, studentID int64) models.AttendanceStatus {
	t.Helper()
	for _, r := range records {
		if r.StudentID == studentID {
			return r.Status
		}
	}
	t.Fatalf("student %d not in roster", studentID)
	return ""
}

func TestMarkAttendance_InvalidStatus(t *testing.T) {
	svc, store, pub := newTestService(entry(1, "ada"))

	_, err := svc.MarkAttendance(context.Background(), 1, 10, "late")
	require.ErrorIs(t, err, apperrors.ErrInvalidAttendanceStatus)

	assert.Empty(t, store.checkIns)
	assert.Empty(t, store.marks)
	assert.Empty(t, pub.attendance, "invalid status must not publish")
}

func TestMarkAttendance_AttendedThenAbsent(t *testing.T) {
	svc, store, pub := newTestService(entry(1, "ada"))
	ctx := context.Background()

	records, err := svc.MarkAttendance(ctx, 1, 10, models.StatusAttended)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAttended, statusOf(t, records, 1))

	records, err = svc.MarkAttendance(ctx, 1, 10, models.StatusAbsent)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAbsent, statusOf(t, records, 1))

	// Exactly one authoritative record remains
	assert.Empty(t, store.checkIns)
	assert.Len(t, store.marks, 1)

	// One publish per mutation
	assert.Equal(t, []int64{10, 10}, pub.attendance)
}

func TestMarkAttendance_AbsentThenAttended(t *testing.T) {
	svc, store, _ := newTestService(entry(1, "ada"))
	ctx := context.Background()

	_, err := svc.MarkAttendance(ctx, 1, 10, models.StatusAbsent)
	require.NoError(t, err)

	records, err := svc.MarkAttendance(ctx, 1, 10, models.StatusAttended)
	require.NoError(t, err)

	assert.Equal(t, models.StatusAttended, statusOf(t, records, 1))
	assert.Len(t, store.checkIns, 1)
	assert.Empty(t, store.marks)
}

func TestSelfCheckIn(t *testing.T) {
	svc, _, pub := newTestService(entry(1, "ada"), entry(2, "bob"))

	records, err := svc.SelfCheckIn(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, models.StatusAttended, statusOf(t, records, 1))
	assert.Equal(t, models.StatusNotMarked, statusOf(t, records, 2))
	assert.Equal(t, []int64{10}, pub.attendance)
}

func TestSelfCheckIn_Conflict(t *testing.T) {
	svc, _, pub := newTestService(entry(1, "ada"))
	ctx := context.Background()

	_, err := svc.SelfCheckIn(ctx, 1, 10)
	require.NoError(t, err)

	_, err = svc.SelfCheckIn(ctx, 1, 10)
	require.ErrorIs(t, err, apperrors.ErrAlreadyCheckedIn)

	// The failed attempt must not publish again
	assert.Equal(t, []int64{10}, pub.attendance)

	records, err := svc.GetEventAttendance(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAttended, statusOf(t, records, 1))
}

func TestSelfCheckIn_ClearsAbsentMark(t *testing.T) {
	svc, store, _ := newTestService(entry(1, "ada"))
	ctx := context.Background()

	_, err := svc.MarkAttendance(ctx, 1, 10, models.StatusAbsent)
	require.NoError(t, err)

	records, err := svc.SelfCheckIn(ctx, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, models.StatusAttended, statusOf(t, records, 1))
	assert.Empty(t, store.marks)
}

func TestGetEventAttendance_PureRead(t *testing.T) {
	svc, _, pub := newTestService(entry(1, "ada"))
	ctx := context.Background()

	_, err := svc.GetEventAttendance(ctx, 10)
	require.NoError(t, err)
	_, err = svc.GetEventAttendance(ctx, 10)
	require.NoError(t, err)

	assert.Empty(t, pub.attendance, "reads must not publish")
}
