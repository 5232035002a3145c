package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/SaqibAli36/Indoor-Navigation-System/core/account"
)

type sessionRepository struct {
	db *sqlx.DB
}

var _ account.SessionRepository = (*sessionRepository)(nil)

func NewSessionRepository(db *sqlx.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (repo *sessionRepository) CreateSession(ctx context.Context, sess account.Session) (account.Session, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO session (token, account_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`,
		sess.Token, sess.AccountID, sess.ExpiresAt, sess.CreatedAt,
	)
	if err != nil {
		return account.Session{}, errors.Wrap(err, "inserting session")
	}
	return sess, nil
}

func (repo *sessionRepository) GetSession(ctx context.Context, token string) (account.Session, error) {
	var sess account.Session
	err := repo.db.GetContext(ctx, &sess,
		`SELECT token, account_id AS accountid, expires_at AS expiresat, created_at AS createdat
		 FROM session WHERE token = $1`, token)
	if err != nil {
		if err == sql.ErrNoRows {
			return account.Session{}, account.ErrSessionNotFound
		}
		return account.Session{}, errors.Wrap(err, "selecting session")
	}
	return sess, nil
}

func (repo *sessionRepository) DeleteSession(ctx context.Context, token string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM session WHERE token = $1`, token)
	if err != nil {
		return errors.Wrap(err, "deleting session")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return account.ErrSessionNotFound
	}
	return nil
}

func (repo *sessionRepository) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM session WHERE expires_at <= $1`, reference)
	return errors.Wrap(err, "deleting expired sessions")
}
