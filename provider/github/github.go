// Package github implements the provider.Client contract for GitHub.
// GitHub is plain OAuth 2.0 without ID tokens, so resolving the account
// identity takes a separate API call, and possibly a second one because the
// primary email may be hidden from the /user payload.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jrsteele09/go-oauth-login/provider"
	"golang.org/x/oauth2"
	githubendpoint "golang.org/x/oauth2/github"
)

const (
	defaultAPIBaseURL = "https://api.github.com"

	userPath   = "/user"
	emailsPath = "/user/emails"
)

type Client struct {
	conf       *oauth2.Config
	apiBaseURL string
	http       *http.Client
}

var _ provider.Client = (*Client)(nil)

// New creates a GitHub client. Default scopes cover the user profile and
// email addresses.
func New(clientID, clientSecret string, scopes []string) *Client {
	if len(scopes) == 0 {
		scopes = []string{"user:email", "read:user"}
	}
	return &Client{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     githubendpoint.Endpoint,
			Scopes:       scopes,
		},
		apiBaseURL: defaultAPIBaseURL,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Name() string { return "github" }

func (c *Client) AuthorizationURL(ctx context.Context, redirectURL, state string, scopes []string, extras map[string]string) (string, error) {
	conf := *c.conf
	conf.RedirectURL = redirectURL
	if len(scopes) > 0 {
		conf.Scopes = scopes
	}
	return conf.AuthCodeURL(state, provider.AuthCodeOptions(extras)...), nil
}

func (c *Client) ExchangeCode(ctx context.Context, code, redirectURL string) (*provider.Token, error) {
	conf := *c.conf
	conf.RedirectURL = redirectURL

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("github code exchange failed: %w", err)
	}
	return provider.FromOAuth2Token(tok), nil
}

// userInfo is the subset of the GitHub /user payload the flow needs.
type userInfo struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Email string `json:"email"`
}

// emailInfo is an entry of the GitHub /user/emails payload.
type emailInfo struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func (c *Client) IDEmail(ctx context.Context, accessToken string) (string, string, error) {
	var info userInfo
	if err := c.getJSON(ctx, c.apiBaseURL+userPath, accessToken, &info); err != nil {
		return "", "", err
	}

	email := info.Email
	if email == "" {
		primary, err := c.primaryEmail(ctx, accessToken)
		if err != nil {
			return "", "", err
		}
		email = primary
	}

	return strconv.FormatInt(info.ID, 10), email, nil
}

// primaryEmail fetches the user's email list and picks the primary verified
// address.
func (c *Client) primaryEmail(ctx context.Context, accessToken string) (string, error) {
	var emails []emailInfo
	if err := c.getJSON(ctx, c.apiBaseURL+emailsPath, accessToken, &emails); err != nil {
		return "", err
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email, nil
		}
	}
	return "", fmt.Errorf("github account has no verified email")
}

func (c *Client) getJSON(ctx context.Context, url, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github api error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode github response: %w", err)
	}
	return nil
}
