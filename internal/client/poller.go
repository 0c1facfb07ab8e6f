package client

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/akshat/campushub/internal/app/models"
)

// DefaultPollInterval is the polling fallback cadence.
const DefaultPollInterval = 10 * time.Second

// Fetcher retrieves current server state for reconciliation. APIClient is
// the HTTP implementation; tests substitute their own.
type Fetcher interface {
	EventAttendance(ctx context.Context, eventID int64) ([]models.AttendanceRecord, error)
	Registrations(ctx context.Context) ([]models.RegistrationInfo, error)
}

// Poller periodically re-derives the session's state from the API. It is
// the fallback to the push channel: for the same server state, a poll
// cycle and a pushed snapshot run through the same reconciliation and
// surface the same notifications. A failed fetch leaves the last known
// good state untouched.
type Poller struct {
	session  *Session
	fetcher  Fetcher
	interval time.Duration
	logger   zerolog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a poller for one session. A non-positive interval
// falls back to DefaultPollInterval.
func NewPoller(session *Session, fetcher Fetcher, interval time.Duration, logger zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		session:  session,
		fetcher:  fetcher,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the polling loop. Calling Start on a running poller is a
// no-op.
func (p *Poller) Start(ctx context.Context) {
	if p.cancel != nil {
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})

	go p.run(ctx)
}

// Stop tears the polling loop down and waits for it to exit.
func (p *Poller) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.PollOnce(ctx)
		}
	}
}

// PollOnce runs one reconciliation cycle: refresh registrations first so
// the set of interesting events is current, then refresh attendance for
// each of them. A failed fetch keeps the cached state and is reported so
// callers can retry; partial failures still apply what did arrive.
func (p *Poller) PollOnce(ctx context.Context) error {
	var firstErr error

	registrations, err := p.fetcher.Registrations(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Msg("Registration poll failed, keeping cached state")
		firstErr = fmt.Errorf("failed to poll registrations: %w", err)
	} else {
		p.session.ApplyRegistrations(registrations)
	}

	for _, eventID := range p.session.SubscribedEvents() {
		records, err := p.fetcher.EventAttendance(ctx, eventID)
		if err != nil {
			p.logger.Warn().
				Err(err).
				Int64("eventID", eventID).
				Msg("Attendance poll failed, keeping cached state")
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to poll attendance for event %d: %w", eventID, err)
			}
			continue
		}
		p.session.ApplyAttendanceSnapshot(eventID, records)
	}

	return firstErr
}
