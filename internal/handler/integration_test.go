package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/platewise/platewise/internal/auth"
	"github.com/platewise/platewise/internal/middleware"
	"github.com/platewise/platewise/internal/model"
	"github.com/platewise/platewise/internal/repository"
	"github.com/platewise/platewise/internal/service"
	"github.com/platewise/platewise/internal/testutil"
)

// newTestRouter assembles the API surface against a real database, with
// rate limiting left out. Mirrors the wiring in cmd/api.
func newTestRouter(t *testing.T, repo *repository.Repository, tokens *auth.TokenManager) *chi.Mux {
	t.Helper()
	logger := testLogger()

	authService := service.NewAuthService(repo, tokens, nil)
	mealPlanService := service.NewMealPlanService(repo, nil)
	profileService := service.NewProfileService(repo, nil)
	userAdminService := service.NewUserAdminService(repo, nil)

	base := New()
	authHandler := NewAuthHandler(authService, logger)
	mealPlanHandler := NewMealPlanHandler(mealPlanService, logger)
	profileHandler := NewProfileHandler(profileService, logger)
	adminHandler := NewAdminHandler(userAdminService, logger)

	authCfg := middleware.AuthConfig{Logger: logger, Tokens: tokens}

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(middleware.Auth(authCfg)).Get("/me", authHandler.Me)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))

			r.Route("/meal-plans", func(r chi.Router) {
				r.Post("/", mealPlanHandler.Create)
				r.Get("/", mealPlanHandler.List)
				r.Get("/{id}", mealPlanHandler.Get)
				r.Put("/{id}", mealPlanHandler.Update)
				r.Delete("/{id}", mealPlanHandler.Delete)
			})

			r.Route("/user-details", func(r chi.Router) {
				r.Post("/", profileHandler.Submit)
				r.Get("/", profileHandler.Get)
				r.Put("/", profileHandler.Update)
				r.Get("/{userId}", profileHandler.Get)
				r.Put("/{userId}", profileHandler.Update)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin())

				r.Get("/users", adminHandler.ListUsers)
				r.Put("/users/{id}/role", adminHandler.UpdateRole)
				r.Delete("/users/{id}", adminHandler.DeleteUser)
				r.Get("/pending-requests", mealPlanHandler.ListPendingRequests)
				r.Post("/assign-meal-plan", mealPlanHandler.Assign)
			})
		})
	})
	r.NotFound(base.NotFound)

	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAPIAuthorizationFlow(t *testing.T) {
	dbURL := testutil.RequireEnv(t, "TEST_DATABASE_URL")
	ctx := context.Background()

	repo, err := repository.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect database: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() { _ = unlock() })

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	tokens := auth.NewTokenManager("handler-test-secret", time.Hour)
	router := newTestRouter(t, repo, tokens)

	// Seed an admin directly. Registration over the API defaults to user
	// but accepts any valid role; the flows below register plain users.
	adminRecord := testutil.NewTestUser(t, model.RoleAdmin)
	if _, err := repo.CreateUser(ctx, adminRecord); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	adminToken, err := tokens.Issue(adminRecord.Actor())
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}

	registerAndLogin := func(email string) (int64, string) {
		body := fmt.Sprintf(`{"email":%q,"password":"long-enough","first_name":"T"}`, email)
		if w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", body); w.Code != http.StatusCreated {
			t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
		}

		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", fmt.Sprintf(`{"email":%q,"password":"long-enough"}`, email))
		if w.Code != http.StatusOK {
			t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp struct {
			Token string `json:"token"`
			User  struct {
				ID int64 `json:"id"`
			} `json:"user"`
		}
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode login response: %v", err)
		}
		return resp.User.ID, resp.Token
	}

	userID, userToken := registerAndLogin(testutil.UniqueEmail(t, "member"))
	_, bystanderToken := registerAndLogin(testutil.UniqueEmail(t, "bystander"))

	// Unauthenticated requests are rejected.
	if w := doJSON(t, router, http.MethodGet, "/api/v1/meal-plans", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	// The identity endpoint reflects the registered account.
	if w := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", userToken, ""); w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", w.Code)
	}

	// Admin creates a plan for the user.
	planBody := fmt.Sprintf(`{"user_id":%d,"breakfast":"oats","lunch":"salad","dinner":"fish","start_date":"2025-03-01"}`, userID)
	w := doJSON(t, router, http.MethodPost, "/api/v1/meal-plans", adminToken, planBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("create plan: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var plan struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(w.Body).Decode(&plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}

	planPath := fmt.Sprintf("/api/v1/meal-plans/%d", plan.ID)
	updateBody := `{"breakfast":"eggs","lunch":"soup","dinner":"pasta","start_date":"2025-03-02"}`

	// Assignee can view but not mutate; a bystander can do neither.
	if w := doJSON(t, router, http.MethodGet, planPath, userToken, ""); w.Code != http.StatusOK {
		t.Fatalf("assignee view: expected 200, got %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodPut, planPath, userToken, updateBody); w.Code != http.StatusForbidden {
		t.Fatalf("assignee update: expected 403, got %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, planPath, bystanderToken, ""); w.Code != http.StatusForbidden {
		t.Fatalf("bystander view: expected 403, got %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodPut, planPath, adminToken, updateBody); w.Code != http.StatusOK {
		t.Fatalf("admin update: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// A user creating a plan for someone else is denied.
	if w := doJSON(t, router, http.MethodPost, "/api/v1/meal-plans", bystanderToken, planBody); w.Code != http.StatusForbidden {
		t.Fatalf("cross-user create: expected 403, got %d", w.Code)
	}

	// Admin routes are guarded by role.
	if w := doJSON(t, router, http.MethodGet, "/api/v1/admin/users", userToken, ""); w.Code != http.StatusForbidden {
		t.Fatalf("admin route as user: expected 403, got %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, "/api/v1/admin/users", adminToken, ""); w.Code != http.StatusOK {
		t.Fatalf("admin route as admin: expected 200, got %d", w.Code)
	}

	// Admin self-deletion is denied even through the HTTP surface.
	selfPath := fmt.Sprintf("/api/v1/admin/users/%d", adminRecord.ID)
	if w := doJSON(t, router, http.MethodDelete, selfPath, adminToken, ""); w.Code != http.StatusForbidden {
		t.Fatalf("admin self delete: expected 403, got %d", w.Code)
	}

	// Unknown plan reports 404 before authorization.
	if w := doJSON(t, router, http.MethodGet, "/api/v1/meal-plans/999999", bystanderToken, ""); w.Code != http.StatusNotFound {
		t.Fatalf("missing plan: expected 404, got %d", w.Code)
	}

	// Profile conflict surfaces as 409.
	profileBody := `{"age":30,"weight_kg":70,"height_cm":175,"activity_level":"moderate","dietary_goal":"maintenance"}`
	if w := doJSON(t, router, http.MethodPost, "/api/v1/user-details", userToken, profileBody); w.Code != http.StatusCreated {
		t.Fatalf("submit profile: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, router, http.MethodPost, "/api/v1/user-details", userToken, profileBody); w.Code != http.StatusConflict {
		t.Fatalf("duplicate profile: expected 409, got %d", w.Code)
	}
}
