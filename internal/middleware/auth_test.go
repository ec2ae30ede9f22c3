package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/platewise/platewise/internal/auth"
	"github.com/platewise/platewise/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	actor := model.Actor{ID: 7, Email: "user@example.com", Role: model.RoleUser}

	token, err := tokens.Issue(actor)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var gotActor model.Actor
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotActor = auth.MustActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	mw := Auth(AuthConfig{Logger: discardLogger(), Tokens: tokens})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCalled bool
	}{
		{"missing_header", "", http.StatusUnauthorized, false},
		{"not_bearer", "Basic abc123", http.StatusUnauthorized, false},
		{"garbage_token", "Bearer not-a-token", http.StatusUnauthorized, false},
		{"valid_token", "Bearer " + token, http.StatusOK, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			called = false

			r := httptest.NewRequest(http.MethodGet, "/api/v1/meal-plans", nil)
			if test.header != "" {
				r.Header.Set("Authorization", test.header)
			}
			w := httptest.NewRecorder()

			mw(next).ServeHTTP(w, r)

			if w.Code != test.wantStatus {
				t.Fatalf("expected status %d, got %d", test.wantStatus, w.Code)
			}
			if called != test.wantCalled {
				t.Fatalf("expected called=%v, got %v", test.wantCalled, called)
			}
			if test.wantCalled && gotActor != actor {
				t.Fatalf("expected actor %+v in context, got %+v", actor, gotActor)
			}
		})
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	expiredIssuer := auth.NewTokenManager("test-secret", -time.Minute)
	token, err := expiredIssuer.Issue(model.Actor{ID: 1, Email: "a@b.c", Role: model.RoleUser})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	mw := Auth(AuthConfig{
		Logger: discardLogger(),
		Tokens: auth.NewTokenManager("test-secret", time.Hour),
	})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/meal-plans", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached with expired token")
	})).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
