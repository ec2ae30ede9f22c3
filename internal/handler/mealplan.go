package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/platewise/platewise/internal/auth"
	"github.com/platewise/platewise/internal/handler/dto"
	"github.com/platewise/platewise/internal/service"
)

// MealPlanHandler handles meal plan endpoints.
type MealPlanHandler struct {
	service *service.MealPlanService
	logger  *slog.Logger
}

// NewMealPlanHandler creates a new MealPlanHandler.
func NewMealPlanHandler(mealPlanService *service.MealPlanService, logger *slog.Logger) *MealPlanHandler {
	return &MealPlanHandler{
		service: mealPlanService,
		logger:  logger,
	}
}

// Create creates a meal plan.
// POST /api/v1/meal-plans
func (h *MealPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustActorFromContext(r.Context())

	var req dto.CreateMealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON")
		return
	}

	startDate, err := dto.ParseDate(req.StartDate)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	endDate, err := dto.ParseOptionalDate(req.EndDate)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	plan, err := h.service.Create(r.Context(), actor, service.CreateMealPlanInput{
		UserID:    req.UserID,
		Breakfast: req.Breakfast,
		Lunch:     req.Lunch,
		Dinner:    req.Dinner,
		Snacks:    req.Snacks,
		Notes:     req.Notes,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("meal plan created", "meal_plan_id", plan.ID, "user_id", plan.UserID, "assigned_by", plan.AssignedBy)
	writeJSON(w, http.StatusCreated, dto.ToMealPlanResponse(plan))
}

// List returns the meal plans visible to the caller.
// GET /api/v1/meal-plans
// GET /api/v1/admin/meal-plans
func (h *MealPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustActorFromContext(r.Context())

	plans, err := h.service.List(r.Context(), actor)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMealPlanListResponse(plans))
}

// ListPendingRequests returns profiled users awaiting a meal plan.
// GET /api/v1/admin/pending-requests
func (h *MealPlanHandler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustActorFromContext(r.Context())

	requests, err := h.service.ListPendingRequests(r.Context(), actor)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPendingRequestListResponse(requests))
}

// Get returns a single meal plan.
// GET /api/v1/meal-plans/{id}
func (h *MealPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustActorFromContext(r.Context())

	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	plan, err := h.service.GetByID(r.Context(), actor, id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMealPlanResponse(plan))
}

// Update replaces a meal plan's content.
// PUT /api/v1/meal-plans/{id}
func (h *MealPlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustActorFromContext(r.Context())

	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateMealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON")
		return
	}

	startDate, err := dto.ParseDate(req.StartDate)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	endDate, err := dto.ParseOptionalDate(req.EndDate)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	plan, err := h.service.Update(r.Context(), actor, id, service.UpdateMealPlanInput{
		Breakfast: req.Breakfast,
		Lunch:     req.Lunch,
		Dinner:    req.Dinner,
		Snacks:    req.Snacks,
		Notes:     req.Notes,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("meal plan updated", "meal_plan_id", plan.ID, "actor_id", actor.ID)
	writeJSON(w, http.StatusOK, dto.ToMealPlanResponse(plan))
}

// Delete removes a meal plan.
// DELETE /api/v1/meal-plans/{id}
func (h *MealPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustActorFromContext(r.Context())

	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("meal plan deleted", "meal_plan_id", id, "actor_id", actor.ID)
	w.WriteHeader(http.StatusNoContent)
}

// Assign reassigns an existing meal plan to a user.
// POST /api/v1/admin/assign-meal-plan
func (h *MealPlanHandler) Assign(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustActorFromContext(r.Context())

	var req dto.AssignMealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON")
		return
	}

	if err := h.service.Assign(r.Context(), actor, req.UserID, req.MealPlanID); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("meal plan assigned", "meal_plan_id", req.MealPlanID, "user_id", req.UserID, "actor_id", actor.ID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Meal plan assigned"})
}

// parseIDParam reads a positive integer URL parameter, writing a 400
// response and returning false when it is malformed.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "URL id must be a positive integer")
		return 0, false
	}
	return id, true
}

// parseOptionalIDParam is parseIDParam for routes where the parameter may
// be absent. A missing parameter yields zero with no error.
func parseOptionalIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	if chi.URLParam(r, name) == "" {
		return 0, true
	}
	return parseIDParam(w, r, name)
}
