package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one user's in-flight intake wizard
type Session struct {
	Token     string    `json:"token"`
	UserID    uint      `json:"-"`
	Wizard    *Wizard   `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps in-flight wizard sessions in memory. Sessions are
// ephemeral: a submit or a restart discards them, and nothing is
// persisted until the order is created.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Start creates a new wizard session for the given user
func (s *Store) Start(userID uint) *Session {
	session := &Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		Wizard:    New(),
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}

// Get returns the session for a token, or nil if it does not exist
func (s *Store) Get(token string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[token]
}

// Remove discards a session
func (s *Store) Remove(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
