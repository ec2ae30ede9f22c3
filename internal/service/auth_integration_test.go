package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/platewise/platewise/internal/auth"
	"github.com/platewise/platewise/internal/model"
	"github.com/platewise/platewise/internal/testutil"
)

func TestAuthLifecycleIntegration(t *testing.T) {
	repo, _, _, _ := setupIntegration(t)
	ctx := context.Background()

	tokens := auth.NewTokenManager("integration-secret", time.Hour)
	svc := NewAuthService(repo, tokens, nil)

	email := testutil.UniqueEmail(t, "register")
	password := "long-enough-password"

	user, err := svc.Register(ctx, RegisterInput{
		Email:     email,
		Password:  password,
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != model.RoleUser {
		t.Fatalf("expected default user role, got %s", user.Role)
	}
	if user.PasswordHash == password {
		t.Fatal("password must not be stored in plain text")
	}

	// Duplicate email conflicts.
	if _, err := svc.Register(ctx, RegisterInput{Email: email, Password: password}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	// Wrong password and unknown email produce the same error.
	if _, err := svc.Login(ctx, email, "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@test.local", password); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}

	out, err := svc.Login(ctx, email, password)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// The issued token round-trips to the same actor.
	actor, err := tokens.Verify(out.Token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if actor.ID != user.ID || actor.Role != user.Role {
		t.Fatalf("token actor mismatch: %+v vs user %d", actor, user.ID)
	}

	me, err := svc.Me(ctx, actor)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.Email != email || me.FirstName != "Ada" {
		t.Fatalf("unexpected user record: %+v", me)
	}
}
