package authn

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-oauth-login/users"
)

// CookieBackend establishes sessions by setting the JWT as an HttpOnly
// cookie and writing an empty response.
type CookieBackend struct {
	strategy   *JWTStrategy
	cookieName string
	secure     bool
}

var _ Backend = (*CookieBackend)(nil)

func NewCookieBackend(strategy *JWTStrategy, cookieName string, secure bool) *CookieBackend {
	if cookieName == "" {
		cookieName = "loginSessionId"
	}
	return &CookieBackend{strategy: strategy, cookieName: cookieName, secure: secure}
}

func (b *CookieBackend) Name() string { return "jwt-cookie" }

func (b *CookieBackend) Login(ctx context.Context, user *users.User, w http.ResponseWriter) error {
	token, err := b.strategy.CreateToken(user)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     b.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   b.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(b.strategy.Lifetime().Seconds()),
	})
	w.WriteHeader(http.StatusNoContent)
	return nil
}
