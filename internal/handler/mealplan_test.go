package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/platewise/platewise/internal/auth"
	"github.com/platewise/platewise/internal/handler/dto"
	"github.com/platewise/platewise/internal/model"
	"github.com/platewise/platewise/internal/service"
)

// The handler tests below exercise request decoding and error mapping on
// paths that fail before any store access, so services get a nil repository.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func requestWithActor(method, path, body string, actor model.Actor) *http.Request {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	return r.WithContext(auth.ContextWithActor(r.Context(), actor))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

func TestCreateMealPlanInvalidJSON(t *testing.T) {
	h := NewMealPlanHandler(service.NewMealPlanService(nil, nil), testLogger())
	actor := model.Actor{ID: 1, Role: model.RoleUser}

	w := httptest.NewRecorder()
	h.Create(w, requestWithActor(http.MethodPost, "/api/v1/meal-plans", "{not json", actor))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Error.Code != "INVALID_JSON" {
		t.Fatalf("expected INVALID_JSON, got %s", resp.Error.Code)
	}
}

func TestCreateMealPlanValidationResponse(t *testing.T) {
	h := NewMealPlanHandler(service.NewMealPlanService(nil, nil), testLogger())
	actor := model.Actor{ID: 1, Role: model.RoleUser}

	// Every required field missing, user_id included.
	w := httptest.NewRecorder()
	h.Create(w, requestWithActor(http.MethodPost, "/api/v1/meal-plans", `{}`, actor))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := decodeError(t, w)
	if resp.Error.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %s", resp.Error.Code)
	}
	if len(resp.Error.Fields) != 5 {
		t.Fatalf("expected 5 missing fields, got %v", resp.Error.Fields)
	}
}

func TestCreateMealPlanMissingUserID(t *testing.T) {
	h := NewMealPlanHandler(service.NewMealPlanService(nil, nil), testLogger())
	actor := model.Actor{ID: 1, Role: model.RoleUser}

	// user_id is required; a body without it must be rejected, not
	// rewritten into a self-assigned plan.
	body := `{"breakfast":"a","lunch":"b","dinner":"c","start_date":"2025-03-01"}`
	w := httptest.NewRecorder()
	h.Create(w, requestWithActor(http.MethodPost, "/api/v1/meal-plans", body, actor))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := decodeError(t, w)
	if resp.Error.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %s", resp.Error.Code)
	}
	if len(resp.Error.Fields) != 1 || resp.Error.Fields[0] != "user_id" {
		t.Fatalf("expected [user_id], got %v", resp.Error.Fields)
	}
}

func TestCreateMealPlanInvalidDate(t *testing.T) {
	h := NewMealPlanHandler(service.NewMealPlanService(nil, nil), testLogger())
	actor := model.Actor{ID: 1, Role: model.RoleUser}

	body := `{"breakfast":"a","lunch":"b","dinner":"c","start_date":"01/03/2025"}`
	w := httptest.NewRecorder()
	h.Create(w, requestWithActor(http.MethodPost, "/api/v1/meal-plans", body, actor))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Error.Code != "INVALID_DATE" {
		t.Fatalf("expected INVALID_DATE, got %s", resp.Error.Code)
	}
}

func TestCreateMealPlanForOtherUserForbidden(t *testing.T) {
	h := NewMealPlanHandler(service.NewMealPlanService(nil, nil), testLogger())
	actor := model.Actor{ID: 1, Role: model.RoleUser}

	body := `{"user_id":2,"breakfast":"a","lunch":"b","dinner":"c","start_date":"2025-03-01"}`
	w := httptest.NewRecorder()
	h.Create(w, requestWithActor(http.MethodPost, "/api/v1/meal-plans", body, actor))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Error.Code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %s", resp.Error.Code)
	}
}

func TestAssignMealPlanForbiddenForUser(t *testing.T) {
	h := NewMealPlanHandler(service.NewMealPlanService(nil, nil), testLogger())
	actor := model.Actor{ID: 1, Role: model.RoleUser}

	body := `{"user_id":2,"meal_plan_id":3}`
	w := httptest.NewRecorder()
	h.Assign(w, requestWithActor(http.MethodPost, "/api/v1/admin/assign-meal-plan", body, actor))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}
