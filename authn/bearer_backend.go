package authn

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-oauth-login/users"
)

// BearerResponse is the body written by the bearer backend on login.
type BearerResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// BearerBackend establishes sessions by returning a JWT in a JSON body.
type BearerBackend struct {
	strategy *JWTStrategy
}

var _ Backend = (*BearerBackend)(nil)

func NewBearerBackend(strategy *JWTStrategy) *BearerBackend {
	return &BearerBackend{strategy: strategy}
}

func (b *BearerBackend) Name() string { return "jwt-bearer" }

func (b *BearerBackend) Login(ctx context.Context, user *users.User, w http.ResponseWriter) error {
	token, err := b.strategy.CreateToken(user)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(BearerResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
