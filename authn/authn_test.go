package authn_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-oauth-login/authn"
	"github.com/jrsteele09/go-oauth-login/users"
	"github.com/stretchr/testify/require"
)

const (
	secretStr = "test-session-secret"
	issuer    = "com.testissuer"
	audience  = "api"
)

func testUser() *users.User {
	return &users.User{ID: "user-1", Email: "john.doe@example.com", IsActive: true}
}

func decodeToken(t *testing.T, tokenString string) jwtlib.MapClaims {
	t.Helper()

	token, err := jwtlib.Parse(tokenString,
		func(tk *jwtlib.Token) (any, error) { return []byte(secretStr), nil },
		jwtlib.WithValidMethods([]string{"HS256"}),
		jwtlib.WithAudience(audience),
	)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwtlib.MapClaims)
	require.True(t, ok)
	return claims
}

func TestJWTStrategyCreateToken(t *testing.T) {
	strategy := authn.NewJWTStrategy([]byte(secretStr), issuer, audience, time.Hour)

	tokenString, err := strategy.CreateToken(testUser())
	require.NoError(t, err)

	claims := decodeToken(t, tokenString)
	require.Equal(t, "user-1", claims["sub"])
	require.Equal(t, "john.doe@example.com", claims["email"])
	require.Equal(t, issuer, claims["iss"])
	require.NotEmpty(t, claims["jti"])
}

func TestBearerBackendLogin(t *testing.T) {
	strategy := authn.NewJWTStrategy([]byte(secretStr), issuer, audience, time.Hour)
	backend := authn.NewBearerBackend(strategy)

	rec := httptest.NewRecorder()
	err := backend.Login(context.Background(), testUser(), rec)
	require.NoError(t, err)
	require.Equal(t, 200, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body authn.BearerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "bearer", body.TokenType)

	claims := decodeToken(t, body.AccessToken)
	require.Equal(t, "user-1", claims["sub"])
}

func TestCookieBackendLogin(t *testing.T) {
	strategy := authn.NewJWTStrategy([]byte(secretStr), issuer, audience, 30*time.Minute)
	backend := authn.NewCookieBackend(strategy, "sessionCookie", true)

	rec := httptest.NewRecorder()
	err := backend.Login(context.Background(), testUser(), rec)
	require.NoError(t, err)
	require.Equal(t, 204, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	cookie := cookies[0]
	require.Equal(t, "sessionCookie", cookie.Name)
	require.True(t, cookie.HttpOnly)
	require.True(t, cookie.Secure)
	require.Equal(t, 1800, cookie.MaxAge)

	claims := decodeToken(t, cookie.Value)
	require.Equal(t, "user-1", claims["sub"])
}
