package oauthflow

import (
	"context"

	"github.com/jrsteele09/go-oauth-login/accounts"
	autherrors "github.com/jrsteele09/go-oauth-login/internal/errors"
	"github.com/jrsteele09/go-oauth-login/provider"
	"github.com/jrsteele09/go-oauth-login/statetoken"
)

// CallbackInput is what the callback adapter hands to the flow after it has
// already completed the code exchange: the provider token and the raw state
// string echoed back by the provider.
type CallbackInput struct {
	Token provider.Token
	State string
}

// Callback runs the provider callback state machine: resolve the remote
// identity, verify the state token, link or create the local account, gate on
// the account being active, then establish the session via login.
//
// State verification gates all account mutation: the resolver is never
// invoked on an unverified state token. An inactive user terminates the flow
// with ErrInvalidCredentials and login is not called. All errors are
// request-terminal; nothing is retried.
func (f *Flow) Callback(ctx context.Context, in CallbackInput, login LoginFunc) error {
	accountID, accountEmail, err := f.client.IDEmail(ctx, in.Token.AccessToken)
	if err != nil {
		return err
	}

	if _, err := f.states.Verify(in.State); err != nil {
		return statetoken.ErrInvalidStateToken
	}

	account := accounts.OAuthAccount{
		OAuthName:    f.client.Name(),
		AccessToken:  in.Token.AccessToken,
		ExpiresAt:    in.Token.ExpiresAt,
		RefreshToken: in.Token.RefreshToken,
		AccountID:    accountID,
		AccountEmail: accountEmail,
	}

	user, err := f.resolver.OAuthCallback(ctx, account)
	if err != nil {
		return err
	}

	// Inactive accounts answer like any bad credential; distinguishing them
	// would leak account existence.
	if !user.IsActive {
		return autherrors.ErrInvalidCredentials
	}

	return login(user)
}
