package resolverfakes

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-oauth-login/accounts"
	"github.com/jrsteele09/go-oauth-login/users"
)

var _ accounts.Resolver = (*FakeResolver)(nil)

// FakeResolver returns a canned user and records the account records it was
// handed.
type FakeResolver struct {
	User *users.User
	Err  error

	lock  sync.Mutex
	Calls []accounts.OAuthAccount
}

func NewFakeResolver(user *users.User) *FakeResolver {
	return &FakeResolver{User: user}
}

func (r *FakeResolver) OAuthCallback(ctx context.Context, account accounts.OAuthAccount) (*users.User, error) {
	r.lock.Lock()
	r.Calls = append(r.Calls, account)
	r.lock.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	return r.User, nil
}
