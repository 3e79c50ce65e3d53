package funnel

import (
	"context"
	"sync"
	"time"
)

// Sessions keeps the live forms of the site, keyed by browser session and
// flow, so that concurrent requests from one browser share a Form and its
// in-flight guard. Idle forms expire after ttl.
type Sessions struct {
	mu    sync.Mutex
	forms map[string]*sessionEntry
	ttl   time.Duration
	now   func() time.Time
}

type sessionEntry struct {
	form     *Form
	lastSeen time.Time
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		forms: make(map[string]*sessionEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func sessionKey(sessionID, flowID string) string {
	return sessionID + ":" + flowID
}

// expired reports whether e outlived the ttl. A form with a submission in
// flight never expires.
func (s *Sessions) expired(e *sessionEntry, now time.Time) bool {
	return now.Sub(e.lastSeen) > s.ttl && !e.form.InFlight()
}

// Form returns the session's form for flow, creating it with create when it
// does not exist or has expired.
func (s *Sessions) Form(sessionID string, flow *Flow, create func() *Form) *Form {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey(sessionID, flow.ID)
	now := s.now()

	e, ok := s.forms[key]
	if !ok || s.expired(e, now) {
		e = &sessionEntry{form: create()}
		s.forms[key] = e
	}
	e.lastSeen = now

	return e.form
}

// Lookup returns an existing, unexpired form without creating one.
func (s *Sessions) Lookup(sessionID string, flow *Flow) (*Form, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.forms[sessionKey(sessionID, flow.ID)]
	if !ok || s.expired(e, s.now()) {
		return nil, false
	}

	return e.form, true
}

// Reset drops the session's form for flow so the next visit starts over.
func (s *Sessions) Reset(sessionID string, flow *Flow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.forms, sessionKey(sessionID, flow.ID))
}

// Sweep removes expired forms and reports how many were removed. Forms with
// a submission in flight are kept.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, e := range s.forms {
		if s.expired(e, now) {
			delete(s.forms, key)
			removed++
		}
	}

	return removed
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.forms)
}

// Run sweeps every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
