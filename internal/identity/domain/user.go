package domain

import "time"

// User is an authenticated principal. The password hash and security stamp
// are owned by the store; the token core only reads them.
type User struct {
	ID            string
	Email         string // unique, stored lowercased, doubles as login name
	PasswordHash  string // argon2id encoded
	SecurityStamp string // rotates to invalidate every outstanding credential
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Claim is a typed key-value assertion about a user, embedded in access
// tokens. Claims are carried as an explicit list rather than a property bag
// so claim assembly stays statically checkable.
type Claim struct {
	Type  string
	Value string
}

// Standard claim types used by the claims builder.
const (
	ClaimTypeSubject = "sub"
	ClaimTypeJTI     = "jti"
	ClaimTypeEmail   = "email"
	ClaimTypeUID     = "uid"
	ClaimTypeRole    = "role"
)
