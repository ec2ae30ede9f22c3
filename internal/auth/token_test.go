package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/platewise/platewise/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", time.Hour)
	actor := model.Actor{ID: 7, Email: "user@example.com", Role: model.RoleUser}

	token, err := tm.Issue(actor)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	got, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if got != actor {
		t.Errorf("expected actor %+v, got %+v", actor, got)
	}
}

func TestTokenExpired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", -time.Minute)
	token, err := tm.Issue(model.Actor{ID: 1, Email: "a@b.c", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := tm.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue(model.Actor{ID: 1, Email: "a@b.c", Role: model.RoleUser})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", time.Hour)

	tests := []string{
		"",
		"not-a-token",
		"aaa.bbb.ccc",
	}

	for _, raw := range tests {
		if _, err := tm.Verify(raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", raw, err)
		}
	}
}
