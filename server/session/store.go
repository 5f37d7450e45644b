package session

import (
	"sync"

	"github.com/dekarrin/darkstar/internal/game"
	"github.com/dekarrin/darkstar/internal/tuning"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Store holds every live session. It is safe for concurrent use.
type Store struct {
	// LoadWorld produces a fresh world for each new session.
	LoadWorld func() (*game.World, error)

	// Tuning is used by every session.
	Tuning tuning.Config

	// Log is the parent of each session's logger.
	Log *logrus.Entry

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewStore creates an empty Store.
func NewStore(loadWorld func() (*game.World, error), tune tuning.Config, log *logrus.Entry) *Store {
	return &Store{
		LoadWorld: loadWorld,
		Tuning:    tune,
		Log:       log,
		sessions:  make(map[uuid.UUID]*Session),
	}
}

// Create starts a new session and adds it to the store.
func (st *Store) Create() (*Session, error) {
	world, err := st.LoadWorld()
	if err != nil {
		return nil, err
	}
	s, err := New(world, st.Tuning, st.Log)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	s.log.Info("session created")
	return s, nil
}

// Get returns the session with the given ID. If there is none, the returned
// error is ErrNotFound.
func (st *Store) Get(id uuid.UUID) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete closes the session with the given ID and removes it.
func (st *Store) Delete(id uuid.UUID) error {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	s.Close()
	return nil
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// CloseAll closes and removes every session.
func (st *Store) CloseAll() {
	st.mu.Lock()
	all := st.sessions
	st.sessions = make(map[uuid.UUID]*Session)
	st.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
}
