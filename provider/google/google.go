// Package google implements the provider.Client contract for Google using
// OIDC discovery. Identity comes from the UserInfo endpoint rather than the
// ID token so the flow only ever handles the access token.
package google

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-oauth-login/provider"
	"golang.org/x/oauth2"
)

const issuerURL = "https://accounts.google.com"

type Client struct {
	clientID     string
	clientSecret string
	scopes       []string
	http         *http.Client

	mu           sync.Mutex
	oidcProvider *oidc.Provider
}

var _ provider.Client = (*Client)(nil)

// New creates a Google client. Default scopes request the OIDC profile and
// email claims.
func New(clientID, clientSecret string, scopes []string) *Client {
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		scopes:       scopes,
		http:         &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Name() string { return "google" }

// discover runs OIDC discovery once and caches the provider.
func (c *Client) discover(ctx context.Context) (*oidc.Provider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.oidcProvider != nil {
		return c.oidcProvider, nil
	}

	ctx = oidc.ClientContext(ctx, c.http)
	p, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("google oidc discovery failed: %w", err)
	}
	c.oidcProvider = p
	return p, nil
}

func (c *Client) oauth2Config(ctx context.Context, redirectURL string, scopes []string) (*oauth2.Config, error) {
	p, err := c.discover(ctx)
	if err != nil {
		return nil, err
	}
	if len(scopes) == 0 {
		scopes = c.scopes
	}
	return &oauth2.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		Endpoint:     p.Endpoint(),
		RedirectURL:  redirectURL,
		Scopes:       scopes,
	}, nil
}

func (c *Client) AuthorizationURL(ctx context.Context, redirectURL, state string, scopes []string, extras map[string]string) (string, error) {
	conf, err := c.oauth2Config(ctx, redirectURL, scopes)
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL(state, provider.AuthCodeOptions(extras)...), nil
}

func (c *Client) ExchangeCode(ctx context.Context, code, redirectURL string) (*provider.Token, error) {
	conf, err := c.oauth2Config(ctx, redirectURL, nil)
	if err != nil {
		return nil, err
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google code exchange failed: %w", err)
	}
	return provider.FromOAuth2Token(tok), nil
}

func (c *Client) IDEmail(ctx context.Context, accessToken string) (string, string, error) {
	p, err := c.discover(ctx)
	if err != nil {
		return "", "", err
	}

	ctx = oidc.ClientContext(ctx, c.http)
	info, err := p.UserInfo(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
	if err != nil {
		return "", "", fmt.Errorf("google userinfo failed: %w", err)
	}
	return info.Subject, info.Email, nil
}
