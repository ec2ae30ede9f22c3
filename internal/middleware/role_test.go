package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/platewise/platewise/internal/auth"
	"github.com/platewise/platewise/internal/model"
)

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guard := RequireAdmin()(next)

	tests := []struct {
		name       string
		actor      *model.Actor
		wantStatus int
	}{
		{"no_actor", nil, http.StatusUnauthorized},
		{"user_role", &model.Actor{ID: 1, Role: model.RoleUser}, http.StatusForbidden},
		{"admin_role", &model.Actor{ID: 1, Role: model.RoleAdmin}, http.StatusOK},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
			if test.actor != nil {
				r = r.WithContext(auth.ContextWithActor(r.Context(), *test.actor))
			}
			w := httptest.NewRecorder()

			guard.ServeHTTP(w, r)

			if w.Code != test.wantStatus {
				t.Fatalf("expected status %d, got %d", test.wantStatus, w.Code)
			}
		})
	}
}
