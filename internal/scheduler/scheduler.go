// Package scheduler arms one-shot timers for stored reminders and reconciles
// alerts whose fire time passed while the process was down.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"arttimer/internal/log"
	"arttimer/internal/models"
	"arttimer/internal/storage"
)

// GraceWindow bounds "just missed" against "stale": an alert whose time
// passed less than this long ago still fires on startup, anything older is
// skipped permanently.
const GraceWindow = 5 * time.Minute

// EventSink receives push signals for observing views. Both calls may arrive
// from timer goroutines.
type EventSink interface {
	ReminderAdded(ref models.SessionRef)
	ReminderTriggered(ref models.SessionRef)
}

// NopSink ignores every event.
type NopSink struct{}

func (NopSink) ReminderAdded(models.SessionRef)     {}
func (NopSink) ReminderTriggered(models.SessionRef) {}

// Notifier matches notify.Notifier; declared here so the scheduler has no
// dependency on the desktop notification backend.
type Notifier interface {
	Notify(title, body, iconPath string) error
}

// Summary counts what one ScheduleAll pass did with the stored alerts.
type Summary struct {
	Armed   int
	Fired   int
	Skipped int
}

type Scheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer

	notifier Notifier
	events   EventSink
	iconPath string
	now      func() time.Time
}

func New(notifier Notifier, events EventSink, iconPath string) *Scheduler {
	if events == nil {
		events = NopSink{}
	}
	return &Scheduler{
		timers:   make(map[string]*time.Timer),
		notifier: notifier,
		events:   events,
		iconPath: iconPath,
		now:      time.Now,
	}
}

// ScheduleAll walks every enabled alert in the calendar and arms, fires, or
// skips it. Meant to run once at process start; running it again re-evaluates
// every alert against the later clock, so previously skipped alerts stay
// skipped.
func (s *Scheduler) ScheduleAll(cal *models.Calendar) Summary {
	now := s.now()
	var sum Summary
	cal.EachSession(func(ref models.SessionRef, sess *models.Session) bool {
		for _, alert := range sess.Alerts {
			if !alert.TimerEnabled.Enabled() {
				continue
			}
			result, _ := s.schedule(ref, alert, now)
			switch result {
			case outcomeArmed:
				sum.Armed++
			case outcomeFired:
				sum.Fired++
			case outcomeSkipped:
				sum.Skipped++
			}
		}
		return true
	})
	log.Info("reminders scheduled", "armed", sum.Armed, "fired", sum.Fired, "skipped", sum.Skipped)
	return sum
}

type outcome int

const (
	outcomeArmed outcome = iota
	outcomeFired
	outcomeSkipped
)

// schedule decides a single alert's fate. The returned id identifies the
// armed timer for Cancel and is empty for the fired and skipped outcomes.
func (s *Scheduler) schedule(ref models.SessionRef, alert models.Alert, now time.Time) (outcome, string) {
	delay := alert.AlertTime.Sub(now)

	switch {
	case delay > 0:
		id := uuid.NewString()
		s.mu.Lock()
		s.timers[id] = time.AfterFunc(delay, func() {
			s.mu.Lock()
			delete(s.timers, id)
			s.mu.Unlock()
			s.fire(ref, alert)
		})
		s.mu.Unlock()
		log.Debug("reminder armed", "session", ref.String(), "in", delay.Round(time.Second))
		return outcomeArmed, id

	case delay > -GraceWindow:
		// Missed while the process was down, but only just.
		s.fire(ref, alert)
		return outcomeFired, ""

	default:
		// Stale misses are a normal steady-state outcome, not an error.
		log.Info("reminder skipped as stale", "session", ref.String(), "missed_by", (-delay).Round(time.Second))
		return outcomeSkipped, ""
	}
}

func (s *Scheduler) fire(ref models.SessionRef, alert models.Alert) {
	if err := s.notifier.Notify("Reminder: "+ref.Name, alert.Message, s.iconPath); err != nil {
		log.Error("notification failed", err, "session", ref.String())
	}
	s.events.ReminderTriggered(ref)
}

// Submit resolves the session, stores a new alert offset before the session
// start, persists, and arranges firing under the same rules as ScheduleAll.
// The returned id cancels the armed timer and is empty when the alert fired
// or was skipped on the spot. A nonexistent session leaves the store
// untouched and returns models.ErrSessionNotFound.
func (s *Scheduler) Submit(store storage.Provider, name, day, message string, offsetDays, offsetHours, offsetMinutes int) (string, error) {
	cal, err := store.Calendar()
	if err != nil {
		return "", err
	}

	session, err := cal.FindSession(name, day)
	if err != nil {
		return "", err
	}

	offset := time.Duration(offsetDays)*24*time.Hour +
		time.Duration(offsetHours)*time.Hour +
		time.Duration(offsetMinutes)*time.Minute

	alert := models.Alert{
		TimerEnabled: models.TimerEnabled,
		Message:      message,
		AlertTime:    models.NewTimestamp(session.StartDate.Add(-offset)),
	}

	ref := models.SessionRef{Day: day, Name: session.Name}
	if err := store.AppendAlert(ref, alert); err != nil {
		return "", fmt.Errorf("failed to store reminder: %w", err)
	}

	_, id := s.schedule(ref, alert, s.now())
	s.events.ReminderAdded(ref)
	return id, nil
}

// Cancel stops the armed timer with the given id. Returns false when the id
// is unknown or the timer already fired.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	return t.Stop()
}

// Pending reports how many timers are currently armed.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels every armed timer. Used on shutdown.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
