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

// LoginHandler serves POST /v1/auth/login.
type LoginHandler struct {
	AuthService *service.AuthService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req idsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		idsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			idsdk.ErrInvalidGrant.WriteError(w)
			return
		}
		log.Error("login failed", "err", err)
		idsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, idsdk.AuthResponse{
		UserID:       pair.UserID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
