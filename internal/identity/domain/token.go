package domain

import "time"

// TokenName is the name component of the user_tokens key under which
// refresh tokens are stored. The issuer string provides the namespace;
// the name scopes the token's purpose within it.
const TokenName = "RefreshToken"

// UserToken models a stored opaque token record. At most one row exists per
// (user, issuer, name) key; creating a new token replaces the previous one.
type UserToken struct {
	UserID    string
	Issuer    string // namespace, the configured token issuer
	Name      string
	TokenHash string // stamp-bound HMAC-SHA256 fingerprint, never the raw value
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuthResponse is the opaque pair handed to the caller after a successful
// login or refresh. It is immutable once constructed and never persisted.
type AuthResponse struct {
	UserID       string `json:"userId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
