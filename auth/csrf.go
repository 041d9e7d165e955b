package auth

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"
)

const (
	CSRFCookieName = "XSRF-TOKEN"
	CSRFHeaderName = "X-XSRF-TOKEN"
	CSRFFormField  = "_csrf"
)

// CSRF implements the double-submit cookie check. The cookie is readable by
// scripts; unsafe requests must echo it in a header or form field.
// Enabled=false turns the whole check off.
type CSRF struct {
	Enabled bool
	Secure  bool
}

type csrfKey struct{}

func withCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfKey{}, token)
}

// CSRFTokenFromContext returns the token issued or accepted for this request.
func CSRFTokenFromContext(ctx context.Context) string {
	t, _ := ctx.Value(csrfKey{}).(string)
	return t
}

// SafeMethod reports methods that never change state.
func SafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

// Ensure returns the client's token, issuing one when it has none, and a
// request carrying it in context.
func (c *CSRF) Ensure(w http.ResponseWriter, r *http.Request) *http.Request {
	if !c.Enabled {
		return r
	}
	token := ""
	if ck, err := r.Cookie(CSRFCookieName); err == nil && ck.Value != "" {
		token = ck.Value
	} else {
		token = c.issue(w)
	}
	return r.WithContext(withCSRFToken(r.Context(), token))
}

// Rotate replaces the client's token, e.g. after login.
func (c *CSRF) Rotate(w http.ResponseWriter, r *http.Request) *http.Request {
	if !c.Enabled {
		return r
	}
	return r.WithContext(withCSRFToken(r.Context(), c.issue(w)))
}

func (c *CSRF) issue(w http.ResponseWriter) string {
	token := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

// Valid reports whether an unsafe request echoes its cookie token.
func (c *CSRF) Valid(r *http.Request) bool {
	if !c.Enabled || SafeMethod(r.Method) {
		return true
	}
	ck, err := r.Cookie(CSRFCookieName)
	if err != nil || ck.Value == "" {
		return false
	}
	sent := r.Header.Get(CSRFHeaderName)
	if sent == "" {
		sent = r.PostFormValue(CSRFFormField)
	}
	return subtle.ConstantTimeCompare([]byte(sent), []byte(ck.Value)) == 1
}
