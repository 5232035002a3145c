package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/SaqibAli36/Indoor-Navigation-System/core/account"
)

type accountRepository struct {
	db *sqlx.DB
}

var _ account.Repository = (*accountRepository)(nil)

func NewAccountRepository(db *sqlx.DB) *accountRepository {
	return &accountRepository{db: db}
}

type accountRow struct {
	ID           int          `db:"id"`
	Name         string       `db:"name"`
	Email        string       `db:"email"`
	IsActive     bool         `db:"is_active"`
	PasswordHash []byte       `db:"password_hash"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
	LastLogin    sql.NullTime `db:"last_login"`
}

func (row accountRow) toAccount() account.Account {
	acct := account.Account{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		IsActive:     row.IsActive,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.LastLogin.Valid {
		acct.LastLogin = row.LastLogin.Time
	}
	return acct
}

func lastLogin(acct account.Account) sql.NullTime {
	if acct.LastLogin.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: acct.LastLogin, Valid: true}
}

func (repo *accountRepository) CreateAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	err := repo.db.QueryRowContext(ctx,
		`INSERT INTO account (name, email, is_active, password_hash, created_at, updated_at, last_login)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		acct.Name, acct.Email, acct.IsActive, acct.PasswordHash, acct.CreatedAt, acct.UpdatedAt, lastLogin(acct),
	).Scan(&acct.ID)
	if err != nil {
		if uniqueViolation(err, "account_email_key") {
			return account.Account{}, account.ErrEmailExists
		}
		return account.Account{}, errors.Wrap(err, "inserting account")
	}
	return acct, nil
}

func (repo *accountRepository) GetAccountByID(ctx context.Context, id int) (account.Account, error) {
	var row accountRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT id, name, email, is_active, password_hash, created_at, updated_at, last_login
		 FROM account WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, errors.Wrap(err, "selecting account by id")
	}
	return row.toAccount(), nil
}

func (repo *accountRepository) GetAccountByEmail(ctx context.Context, email string) (account.Account, error) {
	var row accountRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT id, name, email, is_active, password_hash, created_at, updated_at, last_login
		 FROM account WHERE email = $1`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, errors.Wrap(err, "selecting account by email")
	}
	return row.toAccount(), nil
}

func (repo *accountRepository) UpdateAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE account
		 SET name = $1, email = $2, is_active = $3, password_hash = $4, updated_at = $5, last_login = $6
		 WHERE id = $7`,
		acct.Name, acct.Email, acct.IsActive, acct.PasswordHash, acct.UpdatedAt, lastLogin(acct), acct.ID,
	)
	if err != nil {
		if uniqueViolation(err, "account_email_key") {
			return account.Account{}, account.ErrEmailExists
		}
		return account.Account{}, errors.Wrap(err, "updating account")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return account.Account{}, account.ErrNotFound
	}
	return acct, nil
}
