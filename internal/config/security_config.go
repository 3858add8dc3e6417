package config

import "strconv"

type SecurityConfig interface {
	GetAuthBackend() string
	GetSessionCookieName() string
	GetSecureCookies() bool
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetAuthBackend selects how sessions are handed to the client: "bearer"
// returns the token in a JSON body, "cookie" sets it as an HttpOnly cookie.
func (Security) GetAuthBackend() string {
	return GetEnv("AUTH_BACKEND", "bearer")
}

func (Security) GetSessionCookieName() string {
	return GetEnv("SESSION_COOKIE_NAME", "loginSessionId")
}

func (Security) GetSecureCookies() bool {
	secure, err := strconv.ParseBool(GetEnv("SECURE_COOKIES", "true"))
	if err != nil {
		return true
	}
	return secure
}
