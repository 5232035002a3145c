package account

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/SaqibAli36/Indoor-Navigation-System/core"
)

// Account is an admin login identified by a unique email.
type Account struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"is_active"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func (a *Account) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

func (a *Account) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(pwd))
}

// Session is an opaque server-side session bound to an account;
// the token travels in a cookie.
type Session struct {
	Token     string    `json:"-"`
	AccountID int       `json:"account_id"`
	ExpiresAt time.Time `json:"expires_at"` // UTC
	CreatedAt time.Time `json:"created_at"` // UTC
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// NewAccount contains information needed to register a new Account.
type NewAccount struct {
	Name            string `json:"name" form:"name" validate:"required"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required"`
	PasswordConfirm string `json:"confirm_password" form:"confirm_password" validate:"required,eqfield=Password"`
}

func (na *NewAccount) Validate(validate *validator.Validate) error {
	na.Name = core.CleanString(na.Name)
	na.Email = core.CleanString(na.Email, true /* lower */)
	return validate.Struct(na)
}

// ResetAccountPassword carries a password-reset confirmation.
type ResetAccountPassword struct {
	UID             string `json:"uid,omitempty" validate:"required"`
	Token           string `json:"token,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"confirm_password,omitempty" validate:"required,eqfield=Password"`
}

func (rp *ResetAccountPassword) Validate(validate *validator.Validate) error {
	return validate.Struct(rp)
}
