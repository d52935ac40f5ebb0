package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gatehouselabs/gatehouse/internal/identity/service"
	"github.com/gatehouselabs/gatehouse/internal/identity/store"
	"github.com/gatehouselabs/gatehouse/pkg/idsdk"
	"github.com/gatehouselabs/gatehouse/pkg/slogx"
)

// RolesHandler serves POST /v1/users/{id}/roles. Admin only; the router
// enforces the role requirement.
type RolesHandler struct {
	UserService *service.UserService
}

func (h *RolesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := r.PathValue("id")
	if userID == "" {
		idsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	var req idsdk.AddRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		idsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		idsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.UserService.AddRole(ctx, userID, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			idsdk.ErrNotFound.WriteError(w)
			return
		}
		log.Error("failed to add role", "user_id", userID, "role", role, "err", err)
		idsdk.ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
