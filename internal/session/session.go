package session

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// CookieName is the session cookie the portal issues on login.
const CookieName = "portal_session"

// Roles known to the portal.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// DatasetBinding records which CSV is currently loaded for one operator:
// the raw upload (if any), the derived cleaned file, and the cleaning
// counts. The whole value is replaced or cleared together; a cleaned path
// is never bound without its counts.
type DatasetBinding struct {
	RawPath      string `json:"raw_path,omitempty"`
	CleanedPath  string `json:"cleaned_path,omitempty"`
	OriginalRows int    `json:"original_rows"`
	CleanedRows  int    `json:"cleaned_rows"`
	RemovedRows  int    `json:"removed_rows"`
}

// Bound reports whether a cleaned dataset is currently loaded.
func (b DatasetBinding) Bound() bool { return b.CleanedPath != "" }

// Session is one authenticated browser session. The dataset binding is
// owned exclusively by the session; it is never shared across operators.
type Session struct {
	Token    string
	UserID   int64
	Username string
	Role     string

	mu      sync.Mutex
	binding DatasetBinding
}

// IsAdmin reports whether the session belongs to an administrator.
func (s *Session) IsAdmin() bool { return s.Role == RoleAdmin }

// Bind atomically replaces the dataset binding.
func (s *Session) Bind(b DatasetBinding) {
	s.mu.Lock()
	s.binding = b
	s.mu.Unlock()
}

// Clear drops the binding: paths and counts go together.
func (s *Session) Clear() {
	s.mu.Lock()
	s.binding = DatasetBinding{}
	s.mu.Unlock()
}

// Binding returns a copy of the current binding.
func (s *Session) Binding() DatasetBinding {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.binding
}

// CleanedDataset returns the bound cleaned CSV path, if any.
func (s *Session) CleanedDataset() (string, bool) {
	b := s.Binding()
	return b.CleanedPath, b.Bound()
}

// Manager holds active sessions keyed by opaque token.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create mints a session for an authenticated user.
func (m *Manager) Create(userID int64, username, role string) *Session {
	s := &Session{
		Token:    uuid.NewString(),
		UserID:   userID,
		Username: username,
		Role:     role,
	}
	m.mu.Lock()
	m.sessions[s.Token] = s
	m.mu.Unlock()
	return s
}

// Get looks up a session by token.
func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	return s, ok
}

// Delete ends a session.
func (m *Manager) Delete(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// FromRequest resolves the session referenced by the request cookie.
func (m *Manager) FromRequest(r *http.Request) (*Session, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	return m.Get(c.Value)
}
