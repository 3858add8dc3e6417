// Package authn establishes sessions for users that completed a login flow.
// A Backend pairs a token strategy with a transport that writes the
// credential to the HTTP response.
package authn

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-oauth-login/users"
)

// Backend writes the session credential for an authenticated user. Its output
// is the final response of a successful login callback.
type Backend interface {
	// Name identifies the backend, e.g. "jwt-bearer".
	Name() string

	// Login establishes a session for user and writes the response.
	Login(ctx context.Context, user *users.User, w http.ResponseWriter) error
}
