package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}
	return h
}

func TestHasher_VerifyRoundTrip(t *testing.T) {
	h := newTestHasher(t)
	for _, p := range []string{"", "12345", "admin123", "päss wörd", "x"} {
		digest, err := h.Hash(p)
		if err != nil {
			t.Fatalf("Hash(%q): %v", p, err)
		}
		if digest == p {
			t.Fatalf("digest equals plaintext")
		}
		if !h.Verify(p, digest) {
			t.Fatalf("Verify(%q) = false", p)
		}
		if h.Verify(p+"!", digest) {
			t.Fatalf("Verify accepted a different password for %q", p)
		}
	}
}

func TestHasher_SaltsEveryDigest(t *testing.T) {
	h := newTestHasher(t)
	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Fatalf("two digests of the same plaintext are equal: %s", a)
	}
	if !h.Verify("same", a) || !h.Verify("same", b) {
		t.Fatalf("salted digests must both verify")
	}
}

func TestHasher_MalformedDigestIsNonMatch(t *testing.T) {
	h := newTestHasher(t)
	for _, d := range []string{"", "plain", "$2a$10$short", "$2a$99$abcdefghijklmnopqrstuuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ012"} {
		if h.Verify("anything", d) {
			t.Fatalf("malformed digest %q verified", d)
		}
	}
}

func TestHasher_UsesConfiguredCost(t *testing.T) {
	h, err := NewHasher(10)
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}
	d, _ := h.Hash("pw")
	cost, err := bcrypt.Cost([]byte(d))
	if err != nil || cost != 10 {
		t.Fatalf("cost = %d err=%v", cost, err)
	}
	if _, err := NewHasher(bcrypt.MaxCost + 1); err == nil {
		t.Fatalf("expected error for cost above max")
	}
}
