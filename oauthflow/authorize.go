package oauthflow

import (
	"context"

	autherrors "github.com/jrsteele09/go-oauth-login/internal/errors"
)

// AuthorizeRequest carries the optional per-request parameters of an
// authorize call.
type AuthorizeRequest struct {
	RedirectURL         string   // Overrides the configured redirect target
	FollowRedirect      bool     // Answer with a redirect instead of a URL payload
	Scopes              []string // Requested provider scopes
	CodeChallenge       string   // PKCE challenge, optional
	CodeChallengeMethod string   // PKCE challenge method, optional
}

// AuthorizeResult is the outcome of an authorize call. FollowRedirect tells
// the transport whether to redirect the user-agent or hand the URL back in a
// payload.
type AuthorizeResult struct {
	AuthorizationURL string
	FollowRedirect   bool
}

// Authorize computes the redirect target, mints a state token and asks the
// provider for the authorization URL.
func (f *Flow) Authorize(ctx context.Context, req AuthorizeRequest) (*AuthorizeResult, error) {
	redirectURL := f.redirectTarget(req.RedirectURL)

	// Empty custom data; the payload is reserved for future extension.
	state, err := f.states.Issue(map[string]string{})
	if err != nil {
		return nil, autherrors.Wrapf(err, "[Authorize] failed to issue state token")
	}

	extras := map[string]string{}
	if req.CodeChallenge != "" {
		extras["code_challenge"] = req.CodeChallenge
	}
	if req.CodeChallengeMethod != "" {
		extras["code_challenge_method"] = req.CodeChallengeMethod
	}

	authorizationURL, err := f.client.AuthorizationURL(ctx, redirectURL, state, req.Scopes, extras)
	if err != nil {
		return nil, err
	}

	return &AuthorizeResult{
		AuthorizationURL: authorizationURL,
		FollowRedirect:   req.FollowRedirect || f.config.AlwaysFollowRedirect,
	}, nil
}
