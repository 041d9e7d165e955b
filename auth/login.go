package auth

import (
	"errors"
	"fmt"
)

// ErrBadCredentials is returned for every failed login, whatever the cause.
var ErrBadCredentials = errors.New("invalid username or password")

type Authenticator struct {
	store  *CredentialStore
	hasher *Hasher
	// dummy is compared against when the username is unknown so both
	// failure paths cost one bcrypt comparison.
	dummy string
}

func NewAuthenticator(store *CredentialStore, hasher *Hasher) (*Authenticator, error) {
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy digest: %w", err)
	}
	return &Authenticator{store: store, hasher: hasher, dummy: dummy}, nil
}

// Authenticate succeeds only when the user exists and the password verifies.
func (a *Authenticator) Authenticate(username, password string) (Principal, error) {
	cred, ok := a.store.Lookup(username)
	if !ok {
		a.hasher.Verify(password, a.dummy)
		return Principal{}, ErrBadCredentials
	}
	if !a.hasher.Verify(password, cred.PasswordHash) {
		return Principal{}, ErrBadCredentials
	}
	return Principal{Username: cred.Username, Role: cred.Role}, nil
}
