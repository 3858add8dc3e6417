package accounts

type Repo interface {
	Upsert(account *OAuthAccount) error
	GetByProviderAccount(oauthName, accountID string) (*OAuthAccount, error)
	ListForUser(userID string) ([]*OAuthAccount, error)
	Delete(id string) error
}
