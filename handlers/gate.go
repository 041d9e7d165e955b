package handlers

import (
	"net/http"

	"employeemanagement/auth"
)

// Gate runs in front of every route. It resolves the session, applies the
// access policy and checks the CSRF token. Refused requests stop here.
type Gate struct {
	Policy   *auth.Policy
	Sessions *auth.SessionManager
	CSRF     *auth.CSRF
}

func (g *Gate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, authenticated := g.Sessions.Load(r)
		if authenticated {
			r = r.WithContext(auth.WithPrincipal(r.Context(), p))
		}

		switch g.Policy.Decide(r.Method, r.URL.Path, authenticated) {
		case auth.AuthRequired:
			writeFailure(w, http.StatusUnauthorized, "Authentication required")
			return
		case auth.Deny:
			writeFailure(w, http.StatusForbidden, "Access denied")
			return
		}

		if auth.SafeMethod(r.Method) {
			r = g.CSRF.Ensure(w, r)
		} else if !g.CSRF.Valid(r) {
			writeFailure(w, http.StatusForbidden, "Invalid CSRF token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
