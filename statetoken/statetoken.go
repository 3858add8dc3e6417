// Package statetoken issues and verifies the signed state tokens that anchor
// the OAuth login round trip. The token is a short-lived HS256 JWT carrying an
// audience claim and arbitrary string data; it is the CSRF protection for the
// authorize/callback handshake and is never persisted server-side.
package statetoken

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Audience is the audience claim stamped on every state token.
const Audience = "oauth-state"

// ErrInvalidStateToken is returned for any verification failure: bad
// signature, expired token, wrong or missing audience, malformed token.
// Callers are never told which check failed.
var ErrInvalidStateToken = errors.New("invalid state token")

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// registered claims managed by Generate; caller data may not shadow them
var reservedClaims = map[string]struct{}{
	"aud": {}, "exp": {}, "iat": {}, "nbf": {}, "iss": {}, "sub": {}, "jti": {},
}

// Generate signs data as an HS256 JWT with the given audience and lifetime.
// Reserved registered claims in data are ignored; the audience parameter
// always wins.
func Generate(data map[string]string, secret []byte, lifetime time.Duration, audience string) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"aud": audience,
		"iat": now.Unix(),
		"exp": now.Add(lifetime).Unix(),
	}
	for k, v := range data {
		if _, reserved := reservedClaims[k]; reserved {
			continue
		}
		claims[k] = v
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("[statetoken Generate] failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies signature, expiry and audience and returns the custom
// string data carried by the token. Any failure collapses to
// ErrInvalidStateToken.
func Decode(tokenString string, secret []byte, audience string) (map[string]string, error) {
	token, err := jwtlib.Parse(tokenString,
		func(t *jwtlib.Token) (any, error) { return secret, nil },
		jwtlib.WithValidMethods([]string{"HS256"}),
		jwtlib.WithAudience(audience),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidStateToken
	}

	mapClaims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, ErrInvalidStateToken
	}

	// Exact-match audience check. The jwt library treats the expected
	// audience as a membership test, which would let a multi-audience token
	// through.
	if aud, _ := mapClaims["aud"].(string); aud != audience {
		return nil, ErrInvalidStateToken
	}

	data := make(map[string]string)
	for k, v := range mapClaims {
		if _, reserved := reservedClaims[k]; reserved {
			continue
		}
		if s, ok := v.(string); ok {
			data[k] = s
		}
	}
	return data, nil
}

// Codec issues and verifies state tokens bound to the service's shared secret
// and the fixed state-token audience. Safe for concurrent use; it holds no
// mutable state.
type Codec struct {
	secret   []byte
	lifetime time.Duration
}

// NewCodec creates a Codec. lifetime is the default validity window applied
// to every issued token.
func NewCodec(secret []byte, lifetime time.Duration) *Codec {
	return &Codec{secret: secret, lifetime: lifetime}
}

// Issue signs data as a state token with the default lifetime. The audience
// claim is always overwritten with Audience.
func (c *Codec) Issue(data map[string]string) (string, error) {
	return Generate(data, c.secret, c.lifetime, Audience)
}

// Verify checks signature, expiry and audience and returns the custom data.
func (c *Codec) Verify(tokenString string) (map[string]string, error) {
	return Decode(tokenString, c.secret, Audience)
}
