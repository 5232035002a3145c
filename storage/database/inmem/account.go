package inmemdb

import (
	"context"

	"github.com/SaqibAli36/Indoor-Navigation-System/core/account"
)

var pkCount int

type accountRepository struct {
	db *accountTable
}

var _ account.Repository = (*accountRepository)(nil)

func NewAccountRepository(db *DB) *accountRepository {
	return &accountRepository{db: db.account}
}

func (repo *accountRepository) CreateAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, existing := range repo.db.table {
		if existing.Email == acct.Email {
			return account.Account{}, account.ErrEmailExists
		}
	}
	pkCount++
	acct.ID = pkCount
	repo.db.table[acct.ID] = &acct
	return acct, nil
}

func (repo *accountRepository) GetAccountByID(ctx context.Context, id int) (account.Account, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if acct, ok := repo.db.table[id]; ok {
		return *acct, nil
	}
	return account.Account{}, account.ErrNotFound
}

func (repo *accountRepository) GetAccountByEmail(ctx context.Context, email string) (account.Account, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, acct := range repo.db.table {
		if acct.Email == email {
			return *acct, nil
		}
	}
	return account.Account{}, account.ErrNotFound
}

func (repo *accountRepository) UpdateAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[acct.ID]; !ok {
		return account.Account{}, account.ErrNotFound
	}
	for _, existing := range repo.db.table {
		if existing.ID != acct.ID && existing.Email == acct.Email {
			return account.Account{}, account.ErrEmailExists
		}
	}
	repo.db.table[acct.ID] = &acct
	return acct, nil
}
