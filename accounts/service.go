package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	autherrors "github.com/jrsteele09/go-oauth-login/internal/errors"
	"github.com/jrsteele09/go-oauth-login/users"
)

// Repos holds all repository dependencies for the account Service
type Repos struct {
	Users    users.UserRepo // Repository for user data
	Accounts Repo           // Repository for oauth account links
}

// Service is the default Resolver. On a login callback it refreshes an
// existing link, attaches the account to a user matched by email, or creates
// a new active user.
type Service struct {
	repos   Repos
	nowTime func() time.Time // nowTime function (injectable for testing)
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// NewService initializes a new account Service with required dependencies.
func NewService(repos Repos, options ...ServiceOption) (*Service, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewService] Users repo is required")
	}
	if repos.Accounts == nil {
		return nil, errors.New("[NewService] Accounts repo is required")
	}

	service := &Service{
		repos:   repos,
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

var _ Resolver = (*Service)(nil)

// OAuthCallback resolves a provider account to a local user.
// Resolution order:
//  1. An existing link for (provider, remote account id) wins; its token
//     fields are refreshed.
//  2. Otherwise a user with the same email gets the account linked.
//  3. Otherwise a new active user is created and linked.
func (s *Service) OAuthCallback(ctx context.Context, account OAuthAccount) (*users.User, error) {
	existing, err := s.repos.Accounts.GetByProviderAccount(account.OAuthName, account.AccountID)
	if err != nil && !errors.Is(err, autherrors.ErrOAuthAccountNotFound) {
		return nil, autherrors.Wrapf(err, "[OAuthCallback] account lookup failed")
	}

	if existing != nil {
		return s.refreshExistingLink(existing, account)
	}

	user, err := s.repos.Users.GetByEmail(account.AccountEmail)
	if err != nil && !errors.Is(err, autherrors.ErrUserNotFound) {
		return nil, autherrors.Wrapf(err, "[OAuthCallback] user lookup failed")
	}

	if user == nil {
		user, err = s.createUser(account)
		if err != nil {
			return nil, err
		}
	}

	account.ID = uuid.New().String()
	account.UserID = user.ID
	if err := s.repos.Accounts.Upsert(&account); err != nil {
		return nil, autherrors.Wrapf(err, "[OAuthCallback] failed to link account")
	}

	return user, nil
}

func (s *Service) refreshExistingLink(existing *OAuthAccount, incoming OAuthAccount) (*users.User, error) {
	existing.AccessToken = incoming.AccessToken
	existing.RefreshToken = incoming.RefreshToken
	existing.ExpiresAt = incoming.ExpiresAt
	existing.AccountEmail = incoming.AccountEmail
	if err := s.repos.Accounts.Upsert(existing); err != nil {
		return nil, autherrors.Wrapf(err, "[OAuthCallback] failed to refresh account link")
	}

	user, err := s.repos.Users.GetByID(existing.UserID)
	if err != nil {
		return nil, autherrors.Wrapf(err, "[OAuthCallback] linked user lookup failed")
	}

	user.LastLogin = s.nowTime()
	if err := s.repos.Users.Upsert(user); err != nil {
		return nil, autherrors.Wrapf(err, "[OAuthCallback] failed to update user")
	}
	return user, nil
}

func (s *Service) createUser(account OAuthAccount) (*users.User, error) {
	user := &users.User{
		ID:         uuid.New().String(),
		Email:      account.AccountEmail,
		DateJoined: s.nowTime(),
		IsActive:   true,
		IsVerified: true, // The provider vouches for the email address
	}
	if err := s.repos.Users.Upsert(user); err != nil {
		return nil, autherrors.Wrapf(err, "[OAuthCallback] failed to create user")
	}
	return user, nil
}
