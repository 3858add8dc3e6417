// Package accounts links remote OAuth provider accounts to local users.
package accounts

import (
	"context"
	"time"

	"github.com/jrsteele09/go-oauth-login/users"
)

// OAuthAccount records a provider identity and the token material obtained for
// it during a login callback. Ownership transfers to the Resolver, which
// decides whether it attaches to an existing local user or a new one.
type OAuthAccount struct {
	ID           string     `json:"id,omitempty"`
	UserID       string     `json:"user_id,omitempty"`
	OAuthName    string     `json:"oauth_name"`              // Provider name, e.g. "github"
	AccessToken  string     `json:"-"`                       // Provider access token - never serialize
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`    // Access token expiry, nil if the provider sent none
	RefreshToken string     `json:"-"`                       // Provider refresh token - never serialize
	AccountID    string     `json:"account_id"`              // Remote account identifier
	AccountEmail string     `json:"account_email,omitempty"` // Remote account email
}

// Resolver turns a provider account record into a local user. Implementations
// may link the record to an existing user, create a brand-new one, or reject
// the login with their own error.
type Resolver interface {
	OAuthCallback(ctx context.Context, account OAuthAccount) (*users.User, error)
}
