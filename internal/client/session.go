// Package client implements the reconciliation logic shared by the admin
// and student front-ends: it merges pushed snapshots and polled state into
// a locally cached view and derives user-visible notifications from the
// differences. The push path and the poll path feed the same code, so for
// the same underlying state they produce the same notifications.
package client

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/akshat/campushub/internal/app/models"
)

// State is the session lifecycle position.
type State int

const (
	// StateAnonymous is the initial state, before any identity is known.
	StateAnonymous State = iota
	// StateAuthenticated means an identity is set but no topics are joined.
	StateAuthenticated
	// StateSubscribed means the session joined its topics and receives pushes.
	StateSubscribed
)

// NotificationKind classifies a derived notification.
type NotificationKind string

const (
	NotifyAttendanceChanged    NotificationKind = "attendance-changed"
	NotifyNewRegistrations     NotificationKind = "new-registrations"
	NotifyRegistrationVerified NotificationKind = "registration-verified"
	NotifyRegistrationRemoved  NotificationKind = "registration-removed"
)

// Notification is one user-visible message derived from reconciliation.
type Notification struct {
	Kind    NotificationKind
	Message string
	EventID int64
}

// registrationKey identifies a registration independent of its row ID.
type registrationKey struct {
	studentID int64
	eventID   int64
}

// Session reconciles server state for one logged-in identity. A session
// with StudentID zero is an admin session: it maintains roster views but
// never derives own-status notifications.
type Session struct {
	mu sync.Mutex

	state     State
	studentID int64

	// Own resolved status per event, for one-time transition detection
	ownStatus map[int64]models.AttendanceStatus

	// Latest roster per event, the admin-side view
	rosters map[int64][]models.AttendanceRecord

	// Last known registration list keyed for set-difference
	registrations map[registrationKey]models.RegistrationInfo
	regsSeeded    bool

	notify func(Notification)
	logger zerolog.Logger
}

// NewSession creates an anonymous session. notify receives every derived
// notification; nil is allowed and discards them.
func NewSession(notify func(Notification), logger zerolog.Logger) *Session {
	if notify == nil {
		notify = func(Notification) {}
	}
	return &Session{
		state:         StateAnonymous,
		ownStatus:     make(map[int64]models.AttendanceStatus),
		rosters:       make(map[int64][]models.AttendanceRecord),
		registrations: make(map[registrationKey]models.RegistrationInfo),
		notify:        notify,
		logger:        logger,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// StudentID returns the authenticated identity, zero for admin sessions.
func (s *Session) StudentID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.studentID
}

// Authenticate binds the session to an identity. Passing zero marks the
// session as an admin session.
func (s *Session) Authenticate(studentID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.studentID = studentID
	s.state = StateAuthenticated
	s.logger.Info().Int64("studentID", studentID).Msg("Session authenticated")
}

// MarkSubscribed records that the session joined its topics.
func (s *Session) MarkSubscribed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateAnonymous {
		return
	}
	s.state = StateSubscribed
}

// Reset tears the session back to anonymous and drops all cached state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateAnonymous
	s.studentID = 0
	s.ownStatus = make(map[int64]models.AttendanceStatus)
	s.rosters = make(map[int64][]models.AttendanceRecord)
	s.registrations = make(map[registrationKey]models.RegistrationInfo)
	s.regsSeeded = false
}

// Roster returns the cached roster view for an event.
func (s *Session) Roster(eventID int64) []models.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rosters[eventID]
}

// OwnStatus returns the cached own status for an event.
func (s *Session) OwnStatus(eventID int64) models.AttendanceStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status, ok := s.ownStatus[eventID]; ok {
		return status
	}
	return models.StatusNotMarked
}

// Registrations returns the cached registration list.
func (s *Session) Registrations() []models.RegistrationInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]models.RegistrationInfo, 0, len(s.registrations))
	for _, info := range s.registrations {
		infos = append(infos, info)
	}
	return infos
}

// ApplyAttendanceSnapshot reconciles a resolved roster for one event. The
// roster view is always replaced; a notification fires only when the
// session's own row transitions out of not_marked, and only once per
// transition. Applying the same snapshot again changes nothing.
func (s *Session) ApplyAttendanceSnapshot(eventID int64, records []models.AttendanceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rosters[eventID] = records

	if s.studentID == 0 {
		return
	}

	for _, record := range records {
		if record.StudentID != s.studentID {
			continue
		}

		previous, ok := s.ownStatus[eventID]
		if !ok {
			previous = models.StatusNotMarked
		}
		if record.Status != previous {
			if previous == models.StatusNotMarked &&
				(record.Status == models.StatusAttended || record.Status == models.StatusAbsent) {
				s.notify(Notification{
					Kind:    NotifyAttendanceChanged,
					Message: fmt.Sprintf("Your attendance was marked %s", record.Status),
					EventID: eventID,
				})
			}
			s.ownStatus[eventID] = record.Status
		}
		return
	}
}

// ApplyRegistrations reconciles the full registration list against the
// cached one by set-difference keyed on (student, event). It detects new
// registrations, verification transitions and removals, then replaces the
// cache.
func (s *Session) ApplyRegistrations(current []models.RegistrationInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[registrationKey]models.RegistrationInfo, len(current))
	added := 0
	for _, info := range current {
		key := registrationKey{studentID: info.StudentID, eventID: info.EventID}
		next[key] = info

		previous, existed := s.registrations[key]
		if !existed {
			added++
			continue
		}
		if !previous.Verified && info.Verified {
			s.notify(Notification{
				Kind:    NotifyRegistrationVerified,
				Message: fmt.Sprintf("Registration for %s was verified", info.EventTitle),
				EventID: info.EventID,
			})
		}
	}

	// First sync just seeds the cache, nothing is "new" yet
	if added > 0 && s.regsSeeded {
		s.notify(Notification{
			Kind:    NotifyNewRegistrations,
			Message: fmt.Sprintf("%d new registrations", added),
		})
	}

	for key, previous := range s.registrations {
		if _, ok := next[key]; !ok {
			s.notify(Notification{
				Kind:    NotifyRegistrationRemoved,
				Message: fmt.Sprintf("Registration for %s was removed", previous.EventTitle),
				EventID: previous.EventID,
			})
		}
	}

	s.registrations = next
	s.regsSeeded = true
}

// SubscribedEvents lists the event IDs the identity cares about: every
// event in the cached registration list, restricted to the session's own
// registrations for student sessions.
func (s *Session) SubscribedEvents() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int64]bool)
	events := []int64{}
	for key := range s.registrations {
		if s.studentID != 0 && key.studentID != s.studentID {
			continue
		}
		if !seen[key.eventID] {
			seen[key.eventID] = true
			events = append(events, key.eventID)
		}
	}
	return events
}
