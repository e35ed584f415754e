package services

import (
	"context"
	"sync"
	"time"

	"kenics-pageant-site/internal/backend"
	"kenics-pageant-site/internal/data"
	"kenics-pageant-site/internal/form"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const sessionTTL = 30 * time.Minute

// Registration is one browser session's draft: the form controller plus its
// own submission mutation. The mutation's in-flight guard is scoped to the
// draft, so one user's slow submit never blocks another session.
type Registration struct {
	Controller *form.Controller
	Mutation   *data.Mutation
}

type sessionEntry struct {
	draft     *Registration
	expiresAt time.Time
}

// SessionService keeps the live registration drafts, one per browser session.
// Drafts expire after thirty minutes without activity; a successful submission
// deletes the draft immediately.
type SessionService struct {
	mu       sync.RWMutex
	client   *backend.Client
	sessions map[string]*sessionEntry
}

// NewSessionService creates an empty session store
func NewSessionService(client *backend.Client) *SessionService {
	return &SessionService{
		client:   client,
		sessions: make(map[string]*sessionEntry),
	}
}

// Create starts a new registration session and returns its id and draft
func (s *SessionService) Create() (string, *Registration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	draft := &Registration{
		Controller: form.New(),
		Mutation:   data.NewMutation(s.client),
	}
	s.sessions[id] = &sessionEntry{
		draft:     draft,
		expiresAt: time.Now().Add(sessionTTL),
	}

	log.Debug().Str("session_id", id).Msg("Registration session created")
	return id, draft
}

// Get returns the draft for a session, refreshing its expiry
func (s *SessionService) Get(id string) (*Registration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, false
	}
	entry.expiresAt = time.Now().Add(sessionTTL)
	return entry.draft, true
}

// Delete removes a session
func (s *SessionService) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions
func (s *SessionService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartCleanup launches a janitor that drops expired sessions until ctx is
// cancelled.
func (s *SessionService) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.cleanup()
			}
		}
	}()
}

func (s *SessionService) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("Expired registration sessions cleaned up")
	}
}
