package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatehouselabs/gatehouse/internal/identity/domain"
	"github.com/gatehouselabs/gatehouse/internal/identity/service"
	"github.com/gatehouselabs/gatehouse/pkg/httpx"
	"github.com/gatehouselabs/gatehouse/pkg/idsdk"
	"github.com/gatehouselabs/gatehouse/pkg/slogx"
)

// RefreshHandler serves POST /v1/auth/refresh. The body is the prior token
// pair exactly as the client received it.
type RefreshHandler struct {
	AuthService *service.AuthService
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req idsdk.AuthResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		idsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.AuthService.RefreshTokens(ctx, domain.AuthResponse{
		UserID:       req.UserID,
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			idsdk.ErrInvalidGrant.WriteError(w)
			return
		}
		log.Error("refresh failed", "err", err)
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
