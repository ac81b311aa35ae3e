// Package auth provides optional bearer-token authentication for the
// LeaseTrace API. There is no user database; the operator token is
// minted at startup and its claims travel in the JWT itself.
package auth

// Role determines what an authenticated caller may do.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// User identifies an API caller.
type User struct {
	ID       string
	Username string
	Role     Role
}
