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

// AdminHandler handles user administration endpoints.
type AdminHandler struct {
	service *service.UserAdminService
	logger  *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userAdminService *service.UserAdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		service: userAdminService,
		logger:  logger,
	}
}

// ListUsers returns every user account.
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustActorFromContext(r.Context())

	users, err := h.service.ListUsers(r.Context(), actor)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserListResponse(users))
}

// UpdateRole changes a user's role.
// PUT /api/v1/admin/users/{id}/role
func (h *AdminHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustActorFromContext(r.Context())

	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON")
		return
	}

	user, err := h.service.UpdateRole(r.Context(), actor, id, model.Role(req.Role))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("user role updated", "user_id", user.ID, "role", user.Role, "actor_id", actor.ID)
	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// DeleteUser removes a user account.
// DELETE /api/v1/admin/users/{id}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustActorFromContext(r.Context())

	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), actor, id); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("user deleted", "user_id", id, "actor_id", actor.ID)
	w.WriteHeader(http.StatusNoContent)
}
