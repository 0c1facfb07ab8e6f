package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshat/campushub/internal/app/models"
	"github.com/akshat/campushub/internal/app/repositories"
	"github.com/akshat/campushub/internal/app/services"
)

type memKey struct {
	studentID int64
	eventID   int64
}

// memStore is an in-memory services.AttendanceStore with a fixed roster.
type memStore struct {
	students []models.RosterEntry
	checkIns map[memKey]time.Time
	marks    map[memKey]time.Time
}

func newMemStore(students ...models.RosterEntry) *memStore {
	return &memStore{
		students: students,
		checkIns: make(map[memKey]time.Time),
		marks:    make(map[memKey]time.Time),
	}
}

func (s *memStore) Roster(_ context.Context, eventID int64) ([]models.RosterEntry, error) {
	entries := make([]models.RosterEntry, 0, len(s.students))
	for _, st := range s.students {
		e := st
		if at, ok := s.checkIns[memKey{st.StudentID, eventID}]; ok {
			t := at
			e.CheckedInAt = &t
		}
		if at, ok := s.marks[memKey{st.StudentID, eventID}]; ok {
			t := at
			status := models.StatusAbsent
			e.MarkStatus = &status
			e.MarkedAt = &t
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *memStore) InsertCheckIn(_ context.Context, studentID, eventID int64) (int64, error) {
	key := memKey{studentID, eventID}
	if _, ok := s.checkIns[key]; ok {
		return 0, repositories.ErrCheckInExists
	}
	s.checkIns[key] = time.Now()
	return 1, nil
}

func (s *memStore) UpsertCheckIn(_ context.Context, studentID, eventID int64) error {
	s.checkIns[memKey{studentID, eventID}] = time.Now()
	return nil
}

func (s *memStore) DeleteCheckIn(_ context.Context, studentID, eventID int64) error {
	delete(s.checkIns, memKey{studentID, eventID})
	return nil
}

func (s *memStore) UpsertAbsentMark(_ context.Context, studentID, eventID int64) error {
	s.marks[memKey{studentID, eventID}] = time.Now()
	return nil
}

func (s *memStore) DeleteMark(_ context.Context, studentID, eventID int64) error {
	delete(s.marks, memKey{studentID, eventID})
	return nil
}

func (s *memStore) ListCheckIns(_ context.Context, eventID int64) ([]models.CheckInInfo, error) {
	infos := []models.CheckInInfo{}
	for key, at := range s.checkIns {
		if key.eventID == eventID {
			infos = append(infos, models.CheckInInfo{
				CheckIn: models.CheckIn{StudentID: key.studentID, EventID: eventID, CheckedInAt: at},
			})
		}
	}
	return infos, nil
}

type nopPublisher struct{}

func (nopPublisher) PublishAttendance(int64, any) {}
func (nopPublisher) PublishDataChanged(string)    {}

func setupAttendanceRouter(store services.AttendanceStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewAttendanceService(store, nopPublisher{}, zerolog.Nop())
	ctrl := NewAttendanceController(svc)

	router := gin.New()
	api := router.Group("/api")
	attendance := api.Group("/attendance")
	attendance.GET("/event/:eventId", ctrl.GetEventAttendance)
	attendance.GET("/event/:eventId/check-ins", ctrl.GetEventCheckIns)
	attendance.POST("/mark", ctrl.MarkAttendance)
	attendance.POST("", ctrl.SelfCheckIn)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type attendanceEnvelope struct {
	Success bool                      `json:"success"`
	Data    []models.AttendanceRecord `json:"data"`
}

func TestGetEventAttendance(t *testing.T) {
	store := newMemStore(
		models.RosterEntry{StudentID: 1, Name: "ada"},
		models.RosterEntry{StudentID: 2, Name: "bob"},
	)
	store.checkIns[memKey{1, 10}] = time.Now()
	router := setupAttendanceRouter(store)

	w := doJSON(t, router, http.MethodGet, "/api/attendance/event/10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp attendanceEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, models.StatusAttended, resp.Data[0].Status)
	assert.Equal(t, models.StatusNotMarked, resp.Data[1].Status)
}

func TestGetEventAttendance_BadEventID(t *testing.T) {
	router := setupAttendanceRouter(newMemStore())

	w := doJSON(t, router, http.MethodGet, "/api/attendance/event/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkAttendance(t *testing.T) {
	router := setupAttendanceRouter(newMemStore(models.RosterEntry{StudentID: 1, Name: "ada"}))

	w := doJSON(t, router, http.MethodPost, "/api/attendance/mark", gin.H{
		"student_id": 1, "event_id": 10, "status": "absent",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp attendanceEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, models.StatusAbsent, resp.Data[0].Status)
}

func TestMarkAttendance_InvalidStatusRejected(t *testing.T) {
	router := setupAttendanceRouter(newMemStore(models.RosterEntry{StudentID: 1, Name: "ada"}))

	w := doJSON(t, router, http.MethodPost, "/api/attendance/mark", gin.H{
		"student_id": 1, "event_id": 10, "status": "late",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkAttendance_MissingFields(t *testing.T) {
	router := setupAttendanceRouter(newMemStore())

	w := doJSON(t, router, http.MethodPost, "/api/attendance/mark", gin.H{"student_id": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelfCheckIn_CreatedThenConflict(t *testing.T) {
	router := setupAttendanceRouter(newMemStore(models.RosterEntry{StudentID: 1, Name: "ada"}))
	body := gin.H{"student_id": 1, "event_id": 10}

	w := doJSON(t, router, http.MethodPost, "/api/attendance", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/attendance", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetEventCheckIns(t *testing.T) {
	store := newMemStore(models.RosterEntry{StudentID: 1, Name: "ada"})
	store.checkIns[memKey{1, 10}] = time.Now()
	router := setupAttendanceRouter(store)

	w := doJSON(t, router, http.MethodGet, "/api/attendance/event/10/check-ins", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.CheckInInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
}
