package auth

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const SessionCookieName = "SESSION"

type session struct {
	principal Principal
	expiresAt time.Time
}

// SessionStore keeps authenticated sessions in memory with a sliding idle TTL.
// Expired entries are dropped lazily on access and on Create.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*session
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Create registers p under a fresh random token.
func (s *SessionStore) Create(p Principal) string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for t, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, t)
		}
	}
	s.sessions[token] = &session{principal: p, expiresAt: now.Add(s.ttl)}
	return token
}

// Get resolves a token and extends its lifetime.
func (s *SessionStore) Get(token string) (Principal, bool) {
	if token == "" {
		return Principal{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return Principal{}, false
	}
	now := s.now()
	if now.After(sess.expiresAt) {
		delete(s.sessions, token)
		return Principal{}, false
	}
	sess.expiresAt = now.Add(s.ttl)
	return sess.principal, true
}

func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// SessionManager binds the store to the SESSION cookie.
type SessionManager struct {
	Store  *SessionStore
	Secure bool
}

// Load returns the principal behind the request's session cookie.
func (m *SessionManager) Load(r *http.Request) (Principal, bool) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return Principal{}, false
	}
	return m.Store.Get(c.Value)
}

// Start discards any session the client already had and issues a new one.
func (m *SessionManager) Start(w http.ResponseWriter, r *http.Request, p Principal) {
	if c, err := r.Cookie(SessionCookieName); err == nil {
		m.Store.Delete(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    m.Store.Create(p),
		Path:     "/",
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *SessionManager) End(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookieName); err == nil {
		m.Store.Delete(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
