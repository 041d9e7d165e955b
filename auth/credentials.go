package auth

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Credential is a login identity. PasswordHash is a bcrypt digest, never plaintext.
type Credential struct {
	Username     string
	PasswordHash string
	Role         Role
}

// Seed is a plaintext identity handed to NewCredentialStore at startup.
type Seed struct {
	Username string
	Password string
	Role     Role
}

// CredentialStore is immutable after construction, so lookups need no locking.
type CredentialStore struct {
	byName map[string]Credential
}

func NewCredentialStore(hasher *Hasher, seeds []Seed) (*CredentialStore, error) {
	byName := make(map[string]Credential, len(seeds))
	for _, s := range seeds {
		name := strings.TrimSpace(s.Username)
		if name == "" {
			return nil, fmt.Errorf("seed user with empty username")
		}
		if _, dup := byName[name]; dup {
			return nil, fmt.Errorf("duplicate seed user %q", name)
		}
		if s.Role != RoleUser && s.Role != RoleAdmin {
			return nil, fmt.Errorf("seed user %q has unknown role %q", name, s.Role)
		}
		digest, err := hasher.Hash(s.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password for %q: %w", name, err)
		}
		byName[name] = Credential{Username: name, PasswordHash: digest, Role: s.Role}
	}
	return &CredentialStore{byName: byName}, nil
}

func (s *CredentialStore) Lookup(username string) (Credential, bool) {
	c, ok := s.byName[username]
	return c, ok
}
