package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/platewise/platewise/internal/auth"
	"github.com/platewise/platewise/internal/model"
)

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(nil, auth.NewTokenManager("test", time.Hour), nil)

	tests := []struct {
		name  string
		input RegisterInput
		field string
	}{
		{
			name:  "invalid_email",
			input: RegisterInput{Email: "not-an-email", Password: "longenough"},
			field: "email",
		},
		{
			name:  "short_password",
			input: RegisterInput{Email: "a@b.com", Password: "short"},
			field: "password",
		},
		{
			name:  "invalid_role",
			input: RegisterInput{Email: "a@b.com", Password: "longenough", Role: model.Role("superadmin")},
			field: "role",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), test.input)

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			found := false
			for _, f := range validationErr.Fields {
				if f == test.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected field %q in %v", test.field, validationErr.Fields)
			}
		})
	}
}

func TestLoginEmptyCredentials(t *testing.T) {
	svc := NewAuthService(nil, auth.NewTokenManager("test", time.Hour), nil)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty_email", "", "password"},
		{"empty_password", "a@b.com", ""},
		{"both_empty", "", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), test.email, test.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}
