package fakeaccountrepo

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-oauth-login/accounts"
	autherrors "github.com/jrsteele09/go-oauth-login/internal/errors"
)

var _ accounts.Repo = (*FakeAccountRepo)(nil)

type FakeAccountRepo struct {
	accounts map[string]*accounts.OAuthAccount
	byRemote map[string]string // provider+remote account id to link id
	lock     sync.RWMutex
}

func NewFakeAccountRepo() accounts.Repo {
	return &FakeAccountRepo{
		accounts: make(map[string]*accounts.OAuthAccount),
		byRemote: make(map[string]string),
	}
}

func remoteKey(oauthName, accountID string) string {
	return oauthName + "/" + accountID
}

func (ar *FakeAccountRepo) Upsert(account *accounts.OAuthAccount) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	ar.accounts[account.ID] = account
	ar.byRemote[remoteKey(account.OAuthName, account.AccountID)] = account.ID
	return nil
}

func (ar *FakeAccountRepo) GetByProviderAccount(oauthName, accountID string) (*accounts.OAuthAccount, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	id, ok := ar.byRemote[remoteKey(oauthName, accountID)]
	if !ok {
		return nil, autherrors.ErrOAuthAccountNotFound
	}
	return ar.accounts[id], nil
}

func (ar *FakeAccountRepo) ListForUser(userID string) ([]*accounts.OAuthAccount, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	list := make([]*accounts.OAuthAccount, 0)
	for _, a := range ar.accounts {
		if a.UserID == userID {
			list = append(list, a)
		}
	}
	return list, nil
}

func (ar *FakeAccountRepo) Delete(id string) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	account, ok := ar.accounts[id]
	if !ok {
		return autherrors.ErrOAuthAccountNotFound
	}
	delete(ar.byRemote, remoteKey(account.OAuthName, account.AccountID))
	delete(ar.accounts, id)
	return nil
}
