package backendfakes

import (
	"context"
	"net/http"
	"sync"

	"github.com/jrsteele09/go-oauth-login/authn"
	"github.com/jrsteele09/go-oauth-login/users"
)

var _ authn.Backend = (*FakeBackend)(nil)

// FakeBackend records login calls for tests.
type FakeBackend struct {
	BackendName string
	LoginErr    error

	lock       sync.Mutex
	LoginCalls []*users.User
}

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{BackendName: "fakebackend"}
}

func (b *FakeBackend) Name() string { return b.BackendName }

func (b *FakeBackend) Login(ctx context.Context, user *users.User, w http.ResponseWriter) error {
	b.lock.Lock()
	b.LoginCalls = append(b.LoginCalls, user)
	b.lock.Unlock()

	if b.LoginErr != nil {
		return b.LoginErr
	}
	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte(`{"status":"logged_in"}`))
	return err
}
