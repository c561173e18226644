package interview

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type storeEntry struct {
	mu      sync.Mutex
	session *Session
}

// Store keeps interview sessions in memory for the lifetime of the process.
// Mutations of one session are serialized; different sessions never block each other.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*storeEntry

	now   func() time.Time
	newID func() string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*storeEntry),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Create registers a new active session and returns a snapshot of it.
func (s *Store) Create(candidateID, candidateName string, skills []string, questions []Question) (*Session, error) {
	if len(skills) == 0 {
		return nil, fmt.Errorf("skills must not be empty: %w", ErrInvalidInput)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("questions must not be empty: %w", ErrInvalidInput)
	}

	session := &Session{
		ID:            s.newID(),
		CandidateID:   candidateID,
		CandidateName: candidateName,
		Skills:        append([]string(nil), skills...),
		Questions:     append([]Question(nil), questions...),
		Answers:       []Answer{},
		Status:        StatusActive,
		StartedAt:     s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return nil, fmt.Errorf("duplicate session id %s", session.ID)
	}
	s.sessions[session.ID] = &storeEntry{session: session}

	return session.clone(), nil
}

// Get returns a snapshot of the session.
func (s *Store) Get(id string) (*Session, error) {
	entry, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return entry.session.clone(), nil
}

// Update applies fn to the session while holding the session lock.
// When fn fails the session is left untouched. The returned snapshot reflects the update.
func (s *Store) Update(id string, fn func(*Session) error) (*Session, error) {
	entry, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	working := entry.session.clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	entry.session = working

	return working.clone(), nil
}

// List returns snapshots of all sessions matching the status, ordered by start time.
// An empty status matches every session.
func (s *Store) List(status Status) []*Session {
	s.mu.RLock()
	entries := make([]*storeEntry, 0, len(s.sessions))
	for _, entry := range s.sessions {
		entries = append(entries, entry)
	}
	s.mu.RUnlock()

	out := make([]*Session, 0, len(entries))
	for _, entry := range entries {
		entry.mu.Lock()
		snapshot := entry.session.clone()
		entry.mu.Unlock()

		if status != "" && snapshot.Status != status {
			continue
		}
		out = append(out, snapshot)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartedAt.Before(out[j].StartedAt)
	})

	return out
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) entry(id string) (*storeEntry, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, ErrNotFound)
	}
	return entry, nil
}
