package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/platewise/platewise/internal/auth"
	"github.com/platewise/platewise/internal/handler/dto"
	"github.com/platewise/platewise/internal/model"
	"github.com/platewise/platewise/internal/service"
)

// ProfileHandler handles dietary profile endpoints.
type ProfileHandler struct {
	service *service.ProfileService
	logger  *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: profileService,
		logger:  logger,
	}
}

func profileInputFromRequest(req dto.ProfileRequest) service.ProfileInput {
	return service.ProfileInput{
		Age:           req.Age,
		WeightKg:      req.WeightKg,
		HeightCm:      req.HeightCm,
		Gender:        model.Gender(req.Gender),
		ActivityLevel: model.ActivityLevel(req.ActivityLevel),
		DietaryGoal:   model.DietaryGoal(req.DietaryGoal),
		Allergies:     req.Allergies,
		CuisinePref:   req.CuisinePref,
	}
}

// Submit creates the caller's dietary profile.
// POST /api/v1/user-details
func (h *ProfileHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustActorFromContext(r.Context())

	var req dto.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON")
		return
	}

	profile, err := h.service.Submit(r.Context(), actor, profileInputFromRequest(req))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("profile submitted", "user_id", actor.ID)
	writeJSON(w, http.StatusCreated, dto.ToProfileResponse(profile))
}

// Get returns a dietary profile. Without a userId parameter it returns the
// caller's own profile; with one, the service enforces view rights.
// GET /api/v1/user-details
// GET /api/v1/user-details/{userId}
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustActorFromContext(r.Context())

	userID, ok := parseOptionalIDParam(w, r, "userId")
	if !ok {
		return
	}

	profile, err := h.service.Get(r.Context(), actor, userID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProfileResponse(profile))
}

// Update upserts a dietary profile. Without a userId parameter it targets
// the caller's own profile.
// PUT /api/v1/user-details
// PUT /api/v1/user-details/{userId}
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustActorFromContext(r.Context())

	userID, ok := parseOptionalIDParam(w, r, "userId")
	if !ok {
		return
	}

	var req dto.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON")
		return
	}

	profile, err := h.service.Update(r.Context(), actor, userID, profileInputFromRequest(req))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("profile updated", "user_id", profile.UserID, "actor_id", actor.ID)
	writeJSON(w, http.StatusOK, dto.ToProfileResponse(profile))
}
