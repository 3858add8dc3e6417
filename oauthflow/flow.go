// Package oauthflow implements the authorization-code login flow against an
// upstream OAuth provider: issuing the authorization redirect protected by a
// signed state token, and handling the provider callback through identity
// resolution, account linking and session establishment.
//
// The flow is transport-agnostic: it takes structured inputs and either
// returns a tagged result or drives a login callback, leaving HTTP plumbing
// to the server package.
package oauthflow

import (
	"errors"

	"github.com/jrsteele09/go-oauth-login/accounts"
	"github.com/jrsteele09/go-oauth-login/provider"
	"github.com/jrsteele09/go-oauth-login/statetoken"
	"github.com/jrsteele09/go-oauth-login/users"
)

// LoginFunc establishes the session for an authenticated user and writes the
// final response. It is only invoked after state verification and the
// active-account gate have passed.
type LoginFunc func(user *users.User) error

// Config is the construction-time configuration of a Flow. Immutable after
// New.
type Config struct {
	// InitialRedirectURL, when set, overrides the computed callback URL as
	// the default redirect target.
	InitialRedirectURL string

	// CallbackURL is the URL of this flow's own callback endpoint, used when
	// neither a per-request nor an initial redirect URL is given.
	CallbackURL string

	// AlwaysFollowRedirect makes every authorize call answer with an HTTP
	// redirect rather than a URL payload.
	AlwaysFollowRedirect bool
}

// Flow binds one provider client, one account resolver and one state token
// codec into a login flow. Safe for concurrent use; every invocation is an
// independent request.
type Flow struct {
	client   provider.Client
	resolver accounts.Resolver
	states   *statetoken.Codec
	config   Config
}

// New creates a Flow with required dependencies.
func New(client provider.Client, resolver accounts.Resolver, states *statetoken.Codec, config Config) (*Flow, error) {
	if client == nil {
		return nil, errors.New("[oauthflow New] provider client is required")
	}
	if resolver == nil {
		return nil, errors.New("[oauthflow New] account resolver is required")
	}
	if states == nil {
		return nil, errors.New("[oauthflow New] state token codec is required")
	}

	return &Flow{
		client:   client,
		resolver: resolver,
		states:   states,
		config:   config,
	}, nil
}

// Client returns the provider client this flow is bound to.
func (f *Flow) Client() provider.Client {
	return f.client
}

// CallbackRedirectURL is the redirect target the callback adapter must use
// for the code exchange: the configured initial redirect URL if set,
// otherwise the flow's own callback endpoint.
func (f *Flow) CallbackRedirectURL() string {
	if f.config.InitialRedirectURL != "" {
		return f.config.InitialRedirectURL
	}
	return f.config.CallbackURL
}

// redirectTarget resolves the redirect precedence: per-request URL, then the
// configured initial URL, then the flow's own callback endpoint.
func (f *Flow) redirectTarget(requested string) string {
	if requested != "" {
		return requested
	}
	return f.CallbackRedirectURL()
}
