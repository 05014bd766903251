// Package presence tracks the ephemeral typing indicator. State lives in
// memory only and resets to empty on process restart.
package presence

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"chat-secure/contract"
	"chat-secure/domain"
	"chat-secure/domain/event"
)

// DefaultClearInterval is how long a typing flag survives without a
// refreshing keystroke.
const DefaultClearInterval = 3 * time.Second

// Tracker records which users are currently typing and clears each flag
// after a quiet interval.
//
// The clear is a cancel-and-replace debounce: at most one pending timer
// exists per user, and a new SetTyping(true) stops the previous timer
// before scheduling its replacement. A flag is therefore never cleared
// early while keystrokes keep arriving.
type Tracker struct {
	mu         sync.Mutex
	log        *slog.Logger
	clearAfter time.Duration
	typing     map[domain.UserID]bool
	timers     map[domain.UserID]*time.Timer
	sinks      []contract.EventSink
}

func NewTracker(log *slog.Logger, clearAfter time.Duration) *Tracker {
	if clearAfter <= 0 {
		clearAfter = DefaultClearInterval
	}
	return &Tracker{
		log:        log,
		clearAfter: clearAfter,
		typing:     make(map[domain.UserID]bool),
		timers:     make(map[domain.UserID]*time.Timer),
	}
}

// AddSink registers an observer for TypingChanged events.
func (t *Tracker) AddSink(sinks ...contract.EventSink) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sinks = append(t.sinks, sinks...)
}

// SetTyping records the flag for a user. A true flag schedules an
// auto-clear after the quiet interval unless refreshed or overridden.
func (t *Tracker) SetTyping(userID domain.UserID, isTyping bool) {
	t.mu.Lock()
	if timer, ok := t.timers[userID]; ok {
		timer.Stop()
		delete(t.timers, userID)
	}

	if isTyping {
		t.typing[userID] = true
		t.timers[userID] = time.AfterFunc(t.clearAfter, func() {
			t.clear(userID)
		})
	} else {
		delete(t.typing, userID)
	}
	sinks := t.snapshotSinks()
	t.mu.Unlock()

	t.log.Debug("typing state changed", "user", userID, "typing", isTyping)
	emit(sinks, event.TypingChanged{User: userID, IsTyping: isTyping, At: time.Now()})
}

func (t *Tracker) clear(userID domain.UserID) {
	t.mu.Lock()
	if _, still := t.typing[userID]; !still {
		t.mu.Unlock()
		return
	}
	delete(t.typing, userID)
	delete(t.timers, userID)
	sinks := t.snapshotSinks()
	t.mu.Unlock()

	t.log.Debug("typing state auto-cleared", "user", userID)
	emit(sinks, event.TypingChanged{User: userID, IsTyping: false, At: time.Now()})
}

// IsAnyoneTyping reports whether any user other than excluding is typing.
func (t *Tracker) IsAnyoneTyping(excluding domain.UserID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for userID, isTyping := range t.typing {
		if isTyping && userID != excluding {
			return true
		}
	}
	return false
}

// TypingUserIDs returns the ids currently typing, in stable order.
func (t *Tracker) TypingUserIDs() []domain.UserID {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]domain.UserID, 0, len(t.typing))
	for userID := range t.typing {
		ids = append(ids, userID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (t *Tracker) snapshotSinks() []contract.EventSink {
	sinks := make([]contract.EventSink, len(t.sinks))
	copy(sinks, t.sinks)
	return sinks
}

func emit(sinks []contract.EventSink, e event.DomainEvent) {
	for _, sink := range sinks {
		sink.Consume(e)
	}
}
