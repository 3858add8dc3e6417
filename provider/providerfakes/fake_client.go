package providerfakes

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/jrsteele09/go-oauth-login/provider"
)

var _ provider.Client = (*FakeClient)(nil)

// FakeClient is a configurable in-memory provider client for tests.
type FakeClient struct {
	ProviderName string
	AuthBaseURL  string

	Token        *provider.Token
	AccountID    string
	AccountEmail string

	AuthorizationURLErr error
	ExchangeErr         error
	IdentityErr         error

	lock                  sync.Mutex
	AuthorizationURLCalls int
	ExchangeCalls         int
	IdentityCalls         int
}

func NewFakeClient() *FakeClient {
	return &FakeClient{
		ProviderName: "fakeprovider",
		AuthBaseURL:  "https://provider.example.com/authorize",
		Token:        &provider.Token{AccessToken: "fake-access-token", TokenType: "bearer"},
		AccountID:    "fake-account-id",
		AccountEmail: "fake@example.com",
	}
}

func (c *FakeClient) Name() string { return c.ProviderName }

func (c *FakeClient) AuthorizationURL(ctx context.Context, redirectURL, state string, scopes []string, extras map[string]string) (string, error) {
	c.lock.Lock()
	c.AuthorizationURLCalls++
	c.lock.Unlock()

	if c.AuthorizationURLErr != nil {
		return "", c.AuthorizationURLErr
	}

	q := url.Values{}
	q.Set("redirect_uri", redirectURL)
	q.Set("state", state)
	if len(scopes) > 0 {
		q.Set("scope", strings.Join(scopes, " "))
	}
	for k, v := range extras {
		if v != "" {
			q.Set(k, v)
		}
	}
	return c.AuthBaseURL + "?" + q.Encode(), nil
}

func (c *FakeClient) ExchangeCode(ctx context.Context, code, redirectURL string) (*provider.Token, error) {
	c.lock.Lock()
	c.ExchangeCalls++
	c.lock.Unlock()

	if c.ExchangeErr != nil {
		return nil, c.ExchangeErr
	}
	return c.Token, nil
}

func (c *FakeClient) IDEmail(ctx context.Context, accessToken string) (string, string, error) {
	c.lock.Lock()
	c.IdentityCalls++
	c.lock.Unlock()

	if c.IdentityErr != nil {
		return "", "", c.IdentityErr
	}
	return c.AccountID, c.AccountEmail, nil
}
