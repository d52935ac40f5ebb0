package idsdk

// AuthResponse is the token pair returned by the login, refresh, and
// register endpoints. The whole prior response is sent back verbatim to
// refresh, so the shape doubles as the refresh request body.
type AuthResponse struct {
	// UserID is the internal identifier of the authenticated user.
	UserID string `json:"userId"`

	// AccessToken is the signed JWT used to authenticate API requests.
	AccessToken string `json:"accessToken"`

	// RefreshToken is the opaque token used to obtain a new pair.
	RefreshToken string `json:"refreshToken"`
}

// LoginRequest is the body for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body for POST /v1/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserInfoResponse is returned by GET /v1/userinfo.
type UserInfoResponse struct {
	UserID string            `json:"userId"`
	Email  string            `json:"email"`
	Roles  []string          `json:"roles"`
	Claims map[string]string `json:"claims,omitempty"`
}

// AddRoleRequest is the body for POST /v1/users/{id}/roles.
type AddRoleRequest struct {
	Role string `json:"role"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned by register when the profile is
// rejected. Problems lists every failure, not just the first.
type ValidationErrorResponse struct {
	Error    string   `json:"error"`
	Problems []string `json:"errors"`
}
