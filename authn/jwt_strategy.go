package authn

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-oauth-login/users"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// JWTStrategy creates signed access tokens for authenticated users.
type JWTStrategy struct {
	secret   []byte
	issuer   string
	audience string
	lifetime time.Duration
}

// NewJWTStrategy creates a JWTStrategy signing HS256 tokens with secret.
func NewJWTStrategy(secret []byte, issuer, audience string, lifetime time.Duration) *JWTStrategy {
	return &JWTStrategy{secret: secret, issuer: issuer, audience: audience, lifetime: lifetime}
}

// CreateToken creates an access token for user.
func (s *JWTStrategy) CreateToken(user *users.User) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"iss":   s.issuer,                          // The issuer of the token
		"sub":   user.ID,                           // The authenticated user
		"aud":   s.audience,                        // The audience for which the token is intended
		"email": user.Email,                        // User email for convenience
		"iat":   int64(now.Unix()),                 // Issued At: the time at which the token was issued
		"exp":   int64(now.Add(s.lifetime).Unix()), // Expiry: when the token will expire
		"jti":   uuid.New().String(),               // Unique token ID
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signed, nil
}

// Lifetime returns the validity window applied to issued tokens.
func (s *JWTStrategy) Lifetime() time.Duration {
	return s.lifetime
}
