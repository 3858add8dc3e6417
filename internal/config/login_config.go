package config

import (
	"strconv"
	"time"
)

type LoginConfig interface {
	GetStateSecret() []byte
	GetStateTokenLifetime() time.Duration
	GetInitialRedirectURL() string
	GetAlwaysFollowRedirect() bool
	GetAccessTokenSecret() []byte
	GetAccessTokenExpiry() time.Duration
	GetGitHubClientID() string
	GetGitHubClientSecret() string
	GetGoogleClientID() string
	GetGoogleClientSecret() string
}

type Login struct{}

var _ LoginConfig = Login{}

func (Login) GetStateSecret() []byte {
	return []byte(GetEnv("STATE_SECRET", "dev-only-state-secret"))
}

// GetStateTokenLifetime returns the validity window of state tokens. This is
// also the only timeout applied to a provider round trip.
func (Login) GetStateTokenLifetime() time.Duration {
	seconds, err := strconv.Atoi(GetEnv("STATE_TOKEN_LIFETIME_SECONDS", "3600"))
	if err != nil || seconds <= 0 {
		seconds = 3600
	}
	return time.Duration(seconds) * time.Second
}

func (Login) GetInitialRedirectURL() string {
	return GetEnv("INITIAL_REDIRECT_URL", "")
}

func (Login) GetAlwaysFollowRedirect() bool {
	follow, err := strconv.ParseBool(GetEnv("FOLLOW_REDIRECT", "false"))
	if err != nil {
		return false
	}
	return follow
}

func (Login) GetAccessTokenSecret() []byte {
	return []byte(GetEnv("ACCESS_TOKEN_SECRET", "dev-only-access-token-secret"))
}

func (Login) GetAccessTokenExpiry() time.Duration {
	seconds, err := strconv.Atoi(GetEnv("ACCESS_TOKEN_EXPIRY_SECONDS", "3600"))
	if err != nil || seconds <= 0 {
		seconds = 3600
	}
	return time.Duration(seconds) * time.Second
}

func (Login) GetGitHubClientID() string {
	return GetEnv("GITHUB_CLIENT_ID", "")
}

func (Login) GetGitHubClientSecret() string {
	return GetEnv("GITHUB_CLIENT_SECRET", "")
}

func (Login) GetGoogleClientID() string {
	return GetEnv("GOOGLE_CLIENT_ID", "")
}

func (Login) GetGoogleClientSecret() string {
	return GetEnv("GOOGLE_CLIENT_SECRET", "")
}
