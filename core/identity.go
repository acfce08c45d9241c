package core

import (
	"sync"

	"github.com/google/uuid"
)

// Session is the opaque user handle emitted by the identity provider. No
// basket rule depends on it; profile affordances read the latest handle.
type Session struct {
	UserID string
	Email  string
	Name   string
}

// SessionEventType distinguishes sign-in from sign-out events.
type SessionEventType string

const (
	SessionSignedIn  SessionEventType = "signed_in"
	SessionSignedOut SessionEventType = "signed_out"
)

// SessionEvent is one identity state change. Session is nil on sign-out.
type SessionEvent struct {
	Type    SessionEventType
	Session *Session
}

// SessionBroker fans identity events out to subscribers and tracks the
// current session. It adapts whatever auth provider the host wires in; the
// provider calls SignedIn/SignedOut, consumers call Subscribe/Current.
type SessionBroker struct {
	mu      sync.RWMutex
	current *Session
	subs    map[string]func(SessionEvent)
	logger  Logger
}

// NewSessionBroker creates a broker with no active session.
func NewSessionBroker() *SessionBroker {
	return &SessionBroker{
		subs:   make(map[string]func(SessionEvent)),
		logger: &NoOpLogger{},
	}
}

// SetLogger configures the logger for this broker
func (s *SessionBroker) SetLogger(logger Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Subscribe registers fn for session events and returns an unsubscribe
// function. The current state is not replayed; call Current for that.
func (s *SessionBroker) Subscribe(fn func(SessionEvent)) func() {
	id := uuid.NewString()
	s.mu.Lock()
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Current returns the latest signed-in session, or false when signed out.
func (s *SessionBroker) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// SignedIn records a new session and notifies subscribers.
func (s *SessionBroker) SignedIn(session Session) {
	s.mu.Lock()
	copied := session
	s.current = &copied
	subs := s.subscribersLocked()
	s.mu.Unlock()

	s.logger.Info("Session signed in", map[string]interface{}{
		"operation": "session_signed_in",
		"user_id":   session.UserID,
	})
	event := SessionEvent{Type: SessionSignedIn, Session: &copied}
	for _, fn := range subs {
		fn(event)
	}
}

// SignedOut clears the session and notifies subscribers. Signing out while
// already signed out is a no-op.
func (s *SessionBroker) SignedOut() {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return
	}
	s.current = nil
	subs := s.subscribersLocked()
	s.mu.Unlock()

	s.logger.Info("Session signed out", map[string]interface{}{
		"operation": "session_signed_out",
	})
	event := SessionEvent{Type: SessionSignedOut}
	for _, fn := range subs {
		fn(event)
	}
}

// subscribersLocked snapshots the subscriber list. Caller holds s.mu.
func (s *SessionBroker) subscribersLocked() []func(SessionEvent) {
	subs := make([]func(SessionEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}
