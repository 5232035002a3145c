package inmemdb

import (
	"context"
	"time"

	"github.com/SaqibAli36/Indoor-Navigation-System/core/account"
)

type sessionRepository struct {
	db *sessionTable
}

var _ account.SessionRepository = (*sessionRepository)(nil)

func NewSessionRepository(db *DB) *sessionRepository {
	return &sessionRepository{db: db.session}
}

func (repo *sessionRepository) CreateSession(ctx context.Context, sess account.Session) (account.Session, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[sess.Token] = &sess
	return sess, nil
}

func (repo *sessionRepository) GetSession(ctx context.Context, token string) (account.Session, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sess, ok := repo.db.table[token]; ok {
		return *sess, nil
	}
	return account.Session{}, account.ErrSessionNotFound
}

func (repo *sessionRepository) DeleteSession(ctx context.Context, token string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[token]; !ok {
		return account.ErrSessionNotFound
	}
	delete(repo.db.table, token)
	return nil
}

func (repo *sessionRepository) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for token, sess := range repo.db.table {
		if !sess.ExpiresAt.After(reference) {
			delete(repo.db.table, token)
		}
	}
	return nil
}
