// Package provider defines the contract an upstream OAuth2 identity provider
// client must fulfil for the login flow: building an authorization URL,
// exchanging an authorization code, and resolving the remote account identity.
package provider

import (
	"context"
	"time"

	"github.com/jrsteele09/go-oauth-login/internal/utils"
	"golang.org/x/oauth2"
)

// Token is the result of exchanging an authorization code with a provider.
// It lives only for the duration of the callback request.
type Token struct {
	AccessToken  string
	TokenType    string
	RefreshToken string
	ExpiresAt    *time.Time // nil when the provider sent no expiry
}

// Client is the provider-facing half of the login flow.
type Client interface {
	// Name identifies the provider, e.g. "github".
	Name() string

	// AuthorizationURL builds the URL the user-agent is sent to. extras are
	// provider-specific query parameters (PKCE fields among them); empty
	// values must be omitted.
	AuthorizationURL(ctx context.Context, redirectURL, state string, scopes []string, extras map[string]string) (string, error)

	// ExchangeCode swaps an authorization code for an access token.
	ExchangeCode(ctx context.Context, code, redirectURL string) (*Token, error)

	// IDEmail resolves the remote account id and email for an access token.
	IDEmail(ctx context.Context, accessToken string) (id string, email string, err error)
}

// FromOAuth2Token converts a golang.org/x/oauth2 token into a provider Token.
func FromOAuth2Token(tok *oauth2.Token) *Token {
	var expiresAt *time.Time
	if !tok.Expiry.IsZero() {
		expiresAt = utils.Ptr(tok.Expiry)
	}
	return &Token{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    expiresAt,
	}
}

// AuthCodeOptions converts an extras map into oauth2 auth-code options,
// dropping empty values.
func AuthCodeOptions(extras map[string]string) []oauth2.AuthCodeOption {
	opts := make([]oauth2.AuthCodeOption, 0, len(extras))
	for k, v := range extras {
		if v == "" {
			continue
		}
		opts = append(opts, oauth2.SetAuthURLParam(k, v))
	}
	return opts
}
