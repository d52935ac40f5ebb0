package domain

// Role names seeded by the initial migration. Registration assigns RoleUser;
// RoleAdmin gates role-assignment endpoints.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
