// Package session keeps one dashboard controller per browser session.
package session

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"launchdash/app"
	"launchdash/internal/errors"

	"github.com/google/uuid"
)

// CookieName identifies the dashboard session cookie
const CookieName = "launchdash_session"

// DefaultMaxSessions bounds the registry; the least recently seen session is evicted
const DefaultMaxSessions = 10000

// Factory builds the controller for a new session
type Factory func() *app.Controller

type entry struct {
	controller *app.Controller
	lastSeen   time.Time
}

// Store is a mutex-guarded registry of controllers keyed by session ID
type Store struct {
	factory Factory
	now     func() time.Time
	max     int

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewStore creates an empty registry
func NewStore(factory Factory) *Store {
	return &Store{
		factory:  factory,
		now:      time.Now,
		max:      DefaultMaxSessions,
		sessions: make(map[string]*entry),
	}
}

// SetLimit changes how many sessions are kept; n <= 0 restores the default
func (s *Store) SetLimit(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 {
		n = DefaultMaxSessions
	}
	s.max = n
	for len(s.sessions) > s.max {
		s.evictOldest()
	}
}

// evictOldest drops the least recently seen session; callers hold mu
func (s *Store) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, e := range s.sessions {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
		log.Printf("[Session] Evicted session %s at capacity %d", oldestID, s.max)
	}
}

// Get returns the controller of an existing session
func (s *Store) Get(id string) (*app.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.controller, true
}

// Resolve returns the session for id, starting a new one when id is empty or unknown.
// The returned ID differs from id exactly when a session was created.
func (s *Store) Resolve(id string) (string, *app.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[id]; ok && id != "" {
		e.lastSeen = s.now()
		return id, e.controller
	}

	if len(s.sessions) >= s.max {
		s.evictOldest()
	}
	newID := uuid.NewString()
	controller := s.factory()
	s.sessions[newID] = &entry{controller: controller, lastSeen: s.now()}
	log.Printf("[Session] Started session %s (%d active)", newID, len(s.sessions))
	return newID, controller
}

// Lookup returns the controller named by the request's session cookie. It never
// starts a session: a missing or expired cookie is NOT_FOUND.
func (s *Store) Lookup(r *http.Request) (*app.Controller, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, errors.NotFound("dashboard session")
	}
	controller, ok := s.Get(cookie.Value)
	if !ok {
		return nil, errors.NotFound("dashboard session")
	}
	return controller, nil
}

// FromRequest resolves the request's session cookie and sets a fresh cookie when a
// session had to be started. Only the dashboard page starts sessions.
func (s *Store) FromRequest(w http.ResponseWriter, r *http.Request) *app.Controller {
	var id string
	if cookie, err := r.Cookie(CookieName); err == nil {
		id = cookie.Value
	}

	resolved, controller := s.Resolve(id)
	if resolved != id {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    resolved,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return controller
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Prune drops sessions idle for longer than maxIdle and returns how many were removed
func (s *Store) Prune(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("[Session] Pruned %d idle sessions", removed)
	}
	return removed
}

// PruneEvery runs Prune on every tick until ctx is cancelled
func (s *Store) PruneEvery(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Prune(maxIdle)
		}
	}
}
