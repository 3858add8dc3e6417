package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthorizationURL(t *testing.T) {
	c := New("client-id-1", "client-secret-1", nil)

	rawURL, err := c.AuthorizationURL(context.Background(),
		"https://app.example.com/callback", "state-123",
		[]string{"read:user"},
		map[string]string{"code_challenge": "abc", "code_challenge_method": ""},
	)
	require.NoError(t, err)

	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	q := u.Query()

	require.Equal(t, "client-id-1", q.Get("client_id"))
	require.Equal(t, "https://app.example.com/callback", q.Get("redirect_uri"))
	require.Equal(t, "state-123", q.Get("state"))
	require.Equal(t, "read:user", q.Get("scope"))
	require.Equal(t, "abc", q.Get("code_challenge"))

	// Empty extras are omitted, not sent blank
	require.False(t, q.Has("code_challenge_method"))
}

func TestAuthorizationURLDefaultScopes(t *testing.T) {
	c := New("client-id-1", "client-secret-1", nil)

	rawURL, err := c.AuthorizationURL(context.Background(), "https://app.example.com/callback", "s", nil, nil)
	require.NoError(t, err)

	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	require.Equal(t, "user:email read:user", u.Query().Get("scope"))
}

func TestIDEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case userPath:
			_ = json.NewEncoder(w).Encode(userInfo{ID: 42, Login: "octocat", Email: "octo@example.com"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New("client-id-1", "client-secret-1", nil)
	c.apiBaseURL = srv.URL

	id, email, err := c.IDEmail(context.Background(), "token-1")
	require.NoError(t, err)
	require.Equal(t, "42", id)
	require.Equal(t, "octo@example.com", email)
}

func TestIDEmailFallsBackToEmailsEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case userPath:
			// Email hidden from the profile
			_ = json.NewEncoder(w).Encode(userInfo{ID: 42, Login: "octocat"})
		case emailsPath:
			_ = json.NewEncoder(w).Encode([]emailInfo{
				{Email: "secondary@example.com", Primary: false, Verified: true},
				{Email: "primary@example.com", Primary: true, Verified: true},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New("client-id-1", "client-secret-1", nil)
	c.apiBaseURL = srv.URL

	_, email, err := c.IDEmail(context.Background(), "token-1")
	require.NoError(t, err)
	require.Equal(t, "primary@example.com", email)
}

func TestIDEmailAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New("client-id-1", "client-secret-1", nil)
	c.apiBaseURL = srv.URL

	_, _, err := c.IDEmail(context.Background(), "bad-token")
	require.Error(t, err)
}
