package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSessionStore_CreateGetDelete(t *testing.T) {
	s := NewSessionStore(time.Minute)
	tok := s.Create(Principal{Username: "admin", Role: RoleAdmin})
	if tok == "" {
		t.Fatalf("empty token")
	}
	if other := s.Create(Principal{Username: "admin"}); other == tok {
		t.Fatalf("tokens must be unique")
	}
	p, ok := s.Get(tok)
	if !ok || p.Username != "admin" {
		t.Fatalf("Get: %+v ok=%v", p, ok)
	}
	s.Delete(tok)
	if _, ok := s.Get(tok); ok {
		t.Fatalf("deleted session still resolves")
	}
	if _, ok := s.Get(""); ok {
		t.Fatalf("empty token resolved")
	}
}

func TestSessionStore_IdleExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewSessionStore(10 * time.Minute)
	s.now = func() time.Time { return now }

	tok := s.Create(Principal{Username: "u"})
	now = now.Add(9 * time.Minute)
	if _, ok := s.Get(tok); !ok {
		t.Fatalf("session expired too early")
	}
	// Get slid the deadline forward.
	now = now.Add(9 * time.Minute)
	if _, ok := s.Get(tok); !ok {
		t.Fatalf("sliding expiry not applied")
	}
	now = now.Add(11 * time.Minute)
	if _, ok := s.Get(tok); ok {
		t.Fatalf("idle session still valid")
	}
	if s.Len() != 0 {
		t.Fatalf("expired session not dropped, len=%d", s.Len())
	}
}

func TestSessionManager_StartReplacesPreviousSession(t *testing.T) {
	m := &SessionManager{Store: NewSessionStore(time.Minute)}
	old := m.Store.Create(Principal{Username: "u"})

	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: old})
	w := httptest.NewRecorder()
	m.Start(w, r, Principal{Username: "u"})

	if _, ok := m.Store.Get(old); ok {
		t.Fatalf("old session survived login")
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookieName || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}
	r2 := httptest.NewRequest(http.MethodGet, "/fetch", nil)
	r2.AddCookie(cookies[0])
	if p, ok := m.Load(r2); !ok || p.Username != "u" {
		t.Fatalf("Load: %+v ok=%v", p, ok)
	}
}
