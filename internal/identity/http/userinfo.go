package http

import (
	"net/http"

	"github.com/gatehouselabs/gatehouse/internal/identity/service"
	"github.com/gatehouselabs/gatehouse/pkg/httpx"
	"github.com/gatehouselabs/gatehouse/pkg/idsdk"
	"github.com/gatehouselabs/gatehouse/pkg/slogx"
)

// UserInfoHandler serves GET /v1/userinfo for the authenticated user.
type UserInfoHandler struct {
	UserService *service.UserService
}

func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		idsdk.ErrInvalidToken.WriteError(w)
		return
	}

	profile, err := h.UserService.GetProfile(ctx, userID)
	if err != nil {
		log.Warn("failed to load profile", "user_id", userID, "err", err)
		idsdk.ErrServerError.WriteError(w)
		return
	}

	response := idsdk.UserInfoResponse{
		UserID: profile.User.ID,
		Email:  profile.User.Email,
		Roles:  profile.Roles,
	}
	if len(profile.Claims) > 0 {
		// Claim types may repeat in storage; the most recently stored
		// value wins here.
		response.Claims = make(map[string]string, len(profile.Claims))
		for _, c := range profile.Claims {
			response.Claims[c.Type] = c.Value
		}
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, response)
}
