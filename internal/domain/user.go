package domain

import "time"

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User is the domain entity for an account.
type User struct {
	ID           int64
	Username     string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}

// Actor is the identity an operation runs on behalf of. The zero value is
// anonymous; privileged operations check the role, nothing else does.
type Actor struct {
	authenticated bool
	role          Role
}

// Anonymous returns an actor with no identity.
func Anonymous() Actor { return Actor{} }

// Authenticated returns an actor carrying the given role.
func Authenticated(role Role) Actor {
	return Actor{authenticated: true, role: role}
}

func (a Actor) IsAnonymous() bool { return !a.authenticated }

// IsAdmin reports whether the actor is authenticated with the ADMIN role.
func (a Actor) IsAdmin() bool { return a.authenticated && a.role == RoleAdmin }

func (a Actor) Role() Role { return a.role }
