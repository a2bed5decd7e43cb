package sessions

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iuermili/LeCourse/internal/pkg/apperrors"
)

// Session holds the per-student advising state: the validated taken set used
// to project the remaining catalog, and the model's opaque continuation token.
type Session struct {
	ID                string
	Major             string
	TakenCourseIDs    []string
	ContinuationToken json.RawMessage
	CreatedAt         time.Time
}

// Store is an in-memory, mutex-guarded session map. It replaces the
// process-wide mutable state the advising flow would otherwise need: the
// catalog itself is never mutated per student, and continuation tokens are
// keyed by session rather than cached globally.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a session store. Sessions expire lazily after ttl;
// ttl <= 0 disables expiry.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers a new session and returns a snapshot of it
func (s *Store) Create(major string, takenCourseIDs []string, contToken json.RawMessage) Session {
	session := &Session{
		ID:                uuid.New().String(),
		Major:             major,
		TakenCourseIDs:    append([]string(nil), takenCourseIDs...),
		ContinuationToken: append(json.RawMessage(nil), contToken...),
		CreatedAt:         s.now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return snapshot(session)
}

// Get returns a snapshot of the session, or ErrSessionNotFound /
// ErrSessionExpired. Expired sessions are removed on access.
func (s *Store) Get(id string) (Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return Session{}, apperrors.ErrSessionNotFound
	}

	if s.ttl > 0 && s.now().Sub(session.CreatedAt) > s.ttl {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return Session{}, apperrors.ErrSessionExpired
	}

	return snapshot(session), nil
}

// SetContinuationToken stores the refreshed model context for a session.
// Best-effort: unknown sessions are ignored, and a nil token leaves any
// previously stored token in place.
func (s *Store) SetContinuationToken(id string, contToken json.RawMessage) {
	if len(contToken) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[id]; ok {
		session.ContinuationToken = append(json.RawMessage(nil), contToken...)
	}
}

// Delete removes a session
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// snapshot copies the session so callers never share slices with the store
func snapshot(session *Session) Session {
	return Session{
		ID:                session.ID,
		Major:             session.Major,
		TakenCourseIDs:    append([]string(nil), session.TakenCourseIDs...),
		ContinuationToken: append(json.RawMessage(nil), session.ContinuationToken...),
		CreatedAt:         session.CreatedAt,
	}
}
