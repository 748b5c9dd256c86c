package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/empdesk/empdesk-console/internal/models"
	"github.com/empdesk/empdesk-console/pkg/logger"
)

// Store holds the current session and mirrors it to a JSON file so the
// session survives process restarts, the way the browser build keeps it in
// local storage. Reads vastly outnumber writes (writes happen only on
// login, logout and 401), hence the RWMutex.
type Store struct {
	mu      sync.RWMutex
	path    string
	current *models.Session
}

// NewStore creates a session store backed by the given file, loading a
// previously persisted session if one exists. A corrupt or unreadable file
// is treated as no session.
func NewStore(path string) *Store {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read persisted session", zap.Error(err))
		}
		return s
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Token == "" {
		logger.Warn("Discarding unreadable persisted session", zap.String("file", path))
		return s
	}

	s.current = &sess
	return s
}

// Get returns the current session, if any.
func (s *Store) Get() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Session{}, false
	}
	return *s.current, true
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Set stores the session and persists it.
func (s *Store) Set(sess models.Session) error {
	if sess.Token == "" {
		return fmt.Errorf("refusing to store session without token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &sess

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	// 0600: the file holds a live credential.
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Clear drops the session and removes the persisted file. Called on logout
// and whenever the server answers 401.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to remove persisted session", zap.Error(err))
	}
}

// ExpiresAt returns the token's expiry claim when the token is a JWT carrying
// one. The claim is read without signature verification: it is informational
// only (display and logging) and never substitutes for the server's 401.
func (s *Store) ExpiresAt() (time.Time, bool) {
	s.mu.RLock()
	token := ""
	if s.current != nil {
		token = s.current.Token
	}
	s.mu.RUnlock()

	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
