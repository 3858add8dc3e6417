package accounts_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-oauth-login/accounts"
	fakeaccountrepo "github.com/jrsteele09/go-oauth-login/accounts/repofake"
	"github.com/jrsteele09/go-oauth-login/users"
	fakeuserrepo "github.com/jrsteele09/go-oauth-login/users/repofake"
	"github.com/stretchr/testify/require"
)

const (
	testProvider  = "github"
	testAccountID = "remote-42"
	testEmail     = "john.doe@example.com"
)

type testFixture struct {
	userRepo    users.UserRepo
	accountRepo accounts.Repo
	service     *accounts.Service
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	ur := fakeuserrepo.NewFakeUserRepo()
	ar := fakeaccountrepo.NewFakeAccountRepo()

	service, err := accounts.NewService(accounts.Repos{Users: ur, Accounts: ar})
	require.NoError(t, err)

	return &testFixture{userRepo: ur, accountRepo: ar, service: service}
}

func testAccount() accounts.OAuthAccount {
	expires := time.Now().Add(time.Hour)
	return accounts.OAuthAccount{
		OAuthName:    testProvider,
		AccessToken:  "access-token-1",
		RefreshToken: "refresh-token-1",
		ExpiresAt:    &expires,
		AccountID:    testAccountID,
		AccountEmail: testEmail,
	}
}

func TestNewServiceRequiresRepos(t *testing.T) {
	_, err := accounts.NewService(accounts.Repos{})
	require.Error(t, err)

	_, err = accounts.NewService(accounts.Repos{Users: fakeuserrepo.NewFakeUserRepo()})
	require.Error(t, err)
}

func TestOAuthCallbackCreatesNewUser(t *testing.T) {
	f := setupTestFixture(t)

	user, err := f.service.OAuthCallback(context.Background(), testAccount())
	require.NoError(t, err)
	require.Equal(t, testEmail, user.Email)
	require.True(t, user.IsActive)
	require.True(t, user.IsVerified)
	require.NotEmpty(t, user.ID)

	// The account got linked to the new user
	linked, err := f.accountRepo.GetByProviderAccount(testProvider, testAccountID)
	require.NoError(t, err)
	require.Equal(t, user.ID, linked.UserID)
}

func TestOAuthCallbackLinksExistingUserByEmail(t *testing.T) {
	f := setupTestFixture(t)

	existing := &users.User{Email: testEmail, IsActive: true}
	require.NoError(t, f.userRepo.Upsert(existing))

	user, err := f.service.OAuthCallback(context.Background(), testAccount())
	require.NoError(t, err)
	require.Equal(t, existing.ID, user.ID)

	linked, err := f.accountRepo.GetByProviderAccount(testProvider, testAccountID)
	require.NoError(t, err)
	require.Equal(t, existing.ID, linked.UserID)
}

func TestOAuthCallbackRefreshesExistingLink(t *testing.T) {
	f := setupTestFixture(t)

	first, err := f.service.OAuthCallback(context.Background(), testAccount())
	require.NoError(t, err)

	updated := testAccount()
	updated.AccessToken = "access-token-2"
	updated.RefreshToken = "refresh-token-2"

	second, err := f.service.OAuthCallback(context.Background(), updated)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	link, err := f.accountRepo.GetByProviderAccount(testProvider, testAccountID)
	require.NoError(t, err)
	require.Equal(t, "access-token-2", link.AccessToken)
	require.Equal(t, "refresh-token-2", link.RefreshToken)
	require.False(t, second.LastLogin.IsZero())
}

func TestOAuthCallbackDoesNotDuplicateUsers(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.OAuthCallback(context.Background(), testAccount())
	require.NoError(t, err)
	_, err = f.service.OAuthCallback(context.Background(), testAccount())
	require.NoError(t, err)

	list, err := f.userRepo.List(0, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
