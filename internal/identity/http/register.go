package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatehouselabs/gatehouse/internal/identity/service"
	"github.com/gatehouselabs/gatehouse/pkg/httpx"
	"github.com/gatehouselabs/gatehouse/pkg/idsdk"
	"github.com/gatehouselabs/gatehouse/pkg/slogx"
)

// RegisterHandler serves POST /v1/auth/register. A successful registration
// logs the new account in and returns its first token pair.
type RegisterHandler struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req idsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		idsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, err := h.UserService.Register(ctx, service.RegisterProfile{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var problems service.ValidationErrors
		if errors.As(err, &problems) {
			idsdk.WriteValidationError(w, problems)
			return
		}
		log.Error("registration failed", "err", err)
		idsdk.ErrServerError.WriteError(w)
		return
	}

	pair, err := h.AuthService.Issue(ctx, user)
	if err != nil {
		log.Error("failed to issue tokens after registration", "err", err, "user_id", user.ID)
		idsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, idsdk.AuthResponse{
		UserID:       pair.UserID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
