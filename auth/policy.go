package auth

import (
	"fmt"
	"net/http"
	"path"
	"strings"
)

// Effect is what a matching rule demands of a request.
type Effect int

const (
	PermitAll Effect = iota
	RequireAuth
	DenyAll
)

func (e Effect) String() string {
	switch e {
	case PermitAll:
		return "PERMIT_ALL"
	case RequireAuth:
		return "REQUIRE_AUTH"
	case DenyAll:
		return "DENY_ALL"
	}
	return fmt.Sprintf("Effect(%d)", int(e))
}

// Decision is the outcome for one request given its authentication state.
type Decision int

const (
	Allow Decision = iota
	AuthRequired
	Deny
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "ALLOW"
	case AuthRequired:
		return "REQUIRE_AUTH"
	case Deny:
		return "DENY"
	}
	return fmt.Sprintf("Decision(%d)", int(d))
}

// Rule matches a method ("" for any) and a path pattern. Patterns are an
// exact path, a path.Match glob, or a prefix ending in "/**" for a subtree.
type Rule struct {
	Method  string
	Pattern string
	Effect  Effect
}

func (r Rule) matches(method, p string) bool {
	if r.Method != "" && !strings.EqualFold(r.Method, method) {
		return false
	}
	return matchPattern(r.Pattern, p)
}

func matchPattern(pattern, p string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return prefix == "" || p == prefix || strings.HasPrefix(p, prefix+"/")
	}
	ok, err := path.Match(pattern, p)
	return err == nil && ok
}

// Policy evaluates rules in order; the first match wins and Fallback
// applies when none match.
type Policy struct {
	rules    []Rule
	fallback Effect
}

func NewPolicy(fallback Effect, rules ...Rule) (*Policy, error) {
	for _, r := range rules {
		if !strings.HasPrefix(r.Pattern, "/") {
			return nil, fmt.Errorf("rule pattern %q must start with /", r.Pattern)
		}
		if _, err := path.Match(strings.TrimSuffix(r.Pattern, "/**"), "/"); err != nil {
			return nil, fmt.Errorf("rule pattern %q: %w", r.Pattern, err)
		}
	}
	return &Policy{rules: append([]Rule(nil), rules...), fallback: fallback}, nil
}

// DefaultPolicy is the single policy the server runs with: the welcome,
// health and login/logout routes are public, TRACE is refused and every
// other route, employee writes included, needs a logged-in session.
func DefaultPolicy() *Policy {
	p, err := NewPolicy(RequireAuth,
		Rule{Method: http.MethodTrace, Pattern: "/**", Effect: DenyAll},
		Rule{Method: http.MethodGet, Pattern: "/", Effect: PermitAll},
		Rule{Method: http.MethodGet, Pattern: "/home", Effect: PermitAll},
		Rule{Method: http.MethodGet, Pattern: "/health", Effect: PermitAll},
		Rule{Pattern: "/login", Effect: PermitAll},
		Rule{Method: http.MethodPost, Pattern: "/logout", Effect: PermitAll},
	)
	if err != nil {
		panic(err)
	}
	return p
}

// Evaluate returns the effect of the first rule matching method and the cleaned path.
func (p *Policy) Evaluate(method, rawPath string) Effect {
	cleaned := path.Clean("/" + rawPath)
	for _, r := range p.rules {
		if r.matches(method, cleaned) {
			return r.Effect
		}
	}
	return p.fallback
}

func (p *Policy) Decide(method, rawPath string, authenticated bool) Decision {
	switch p.Evaluate(method, rawPath) {
	case PermitAll:
		return Allow
	case DenyAll:
		return Deny
	default:
		if authenticated {
			return Allow
		}
		return AuthRequired
	}
}
