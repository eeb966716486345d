package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"vendorhub/internal/models"
)

// Session is the persisted login state of the console.
type Session struct {
	Token           string         `json:"token"`
	User            *models.Vendor `json:"user,omitempty"`
	IsAuthenticated bool           `json:"isAuthenticated"`
}

// SessionStore keeps the session in a single JSON file. Every mutation is
// written through to disk before the call returns.
type SessionStore struct {
	path string

	mu      sync.Mutex
	current Session
}

func NewSessionStore(path string) *SessionStore {
	s := &SessionStore{path: path}
	s.current = s.readFile()
	return s
}

// Current returns a copy of the session. A missing or corrupt file yields an
// empty, unauthenticated session rather than an error.
func (s *SessionStore) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Token
}

// SetAuthenticated records a successful login.
func (s *SessionStore) SetAuthenticated(token string, user *models.Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Session{Token: token, User: user, IsAuthenticated: true}
	return s.writeFile(s.current)
}

// Clear drops the session on logout.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Session{}
	return s.writeFile(s.current)
}

func (s *SessionStore) readFile() Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}
	}
	if sess.IsAuthenticated && sess.Token == "" {
		// Authenticated flag without a token is not a usable session.
		return Session{}
	}
	return sess
}

func (s *SessionStore) writeFile(sess Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
