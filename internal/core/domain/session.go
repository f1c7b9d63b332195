package domain

import (
	"errors"
	"strings"
)

// Role values follow the backend wire contract.
const (
	RoleEmployee = "empleado"
	RoleCustomer = "cliente"
)

var ErrSessionNotFound = errors.New("no active session")
var ErrInvalidSession = errors.New("session record is invalid")

// KnownRole reports whether role is one of the two roles the backend issues.
func KnownRole(role string) bool {
	return role == RoleEmployee || role == RoleCustomer
}

// Credentials is a login attempt's input. It exists only for the duration of
// the attempt and is never persisted.
type Credentials struct {
	Email    string
	Password string
}

// Trimmed returns the credentials with surrounding whitespace removed.
func (c Credentials) Trimmed() Credentials {
	return Credentials{
		Email:    strings.TrimSpace(c.Email),
		Password: strings.TrimSpace(c.Password),
	}
}

// Complete reports whether both fields are present.
func (c Credentials) Complete() bool {
	return c.Email != "" && c.Password != ""
}

// DerivedUsername is the local part of the email, used when auto-provisioning
// an account for unrecognized credentials.
func (c Credentials) DerivedUsername() string {
	if i := strings.Index(c.Email, "@"); i >= 0 {
		return c.Email[:i]
	}
	return c.Email
}

// Session is the authenticated identity persisted after a successful login.
// The three fields form a single atomic unit: a partially written session must
// never be observable.
type Session struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	Username    string `json:"username"`
}

// Valid reports whether all three fields are present and the role is known.
// Anything else is treated as "no session".
func (s Session) Valid() bool {
	return s.AccessToken != "" && s.Username != "" && KnownRole(s.Role)
}
