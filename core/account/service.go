package account

import (
	"context"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/SaqibAli36/Indoor-Navigation-System/core"
)

var (
	// errors
	ErrNotFound             = errors.New("account not found")
	ErrEmailExists          = errors.New("an account with this email already exists")
	ErrAuthenticationFailed = errors.New("invalid email or password")
	ErrAccountDeactivated   = errors.New("account deactivated")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")
)

type (
	Repository interface {
		// CreateAccount returns ErrEmailExists when the email is taken;
		// the store must enforce email uniqueness atomically.
		CreateAccount(ctx context.Context, acct Account) (Account, error)
		GetAccountByID(ctx context.Context, id int) (Account, error)
		GetAccountByEmail(ctx context.Context, email string) (Account, error)
		UpdateAccount(ctx context.Context, acct Account) (Account, error)
	}

	SessionRepository interface {
		CreateSession(ctx context.Context, sess Session) (Session, error)
		GetSession(ctx context.Context, token string) (Session, error)
		DeleteSession(ctx context.Context, token string) error
		DeleteExpiredSessions(ctx context.Context, reference time.Time) error
	}

	Service struct {
		repo     Repository
		sessions SessionRepository
		mailSvc  core.EmailService
		conf     *core.Config
	}
)

func NewService(repo Repository, sessions SessionRepository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{repo: repo, sessions: sessions, mailSvc: mailSvc, conf: conf}
}

// Register creates a new active account with a hashed password and
// dispatches a welcome email. A taken email surfaces as a field error.
func (svc *Service) Register(ctx context.Context, na NewAccount) (Account, error) {
	now := time.Now().UTC()
	acct := Account{
		Name:      na.Name,
		Email:     na.Email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := acct.SetPassword(na.Password); err != nil {
		return Account{}, errors.Wrap(err, "hashing password")
	}

	acct, err := svc.repo.CreateAccount(ctx, acct)
	if err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return Account{}, core.NewValidationError(err, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
		}
		return Account{}, errors.Wrap(err, "creating account")
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: acct.Name, Address: acct.Email}},
		Subject:      "Welcome!",
		TemplateName: "welcome",
		TemplateData: struct{ Name string }{acct.Name},
	})
	return acct, nil
}

// Authenticate verifies the credentials and refreshes LastLogin.
func (svc *Service) Authenticate(ctx context.Context, email, pwd string) (Account, error) {
	acct, err := svc.repo.GetAccountByEmail(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Account{}, ErrAuthenticationFailed
		}
		return Account{}, errors.Wrap(err, "finding account by email")
	}
	if err = acct.CheckPassword(pwd); err != nil {
		return Account{}, ErrAuthenticationFailed
	}
	if !acct.IsActive {
		return Account{}, ErrAccountDeactivated
	}

	acct.LastLogin = time.Now().UTC()
	acct.UpdatedAt = acct.LastLogin
	acct, err = svc.repo.UpdateAccount(ctx, acct)
	if err != nil {
		return Account{}, errors.Wrap(err, "setting lastLogin")
	}
	return acct, nil
}

func (svc *Service) GetByID(ctx context.Context, id int) (Account, error) {
	return svc.repo.GetAccountByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (Account, error) {
	return svc.repo.GetAccountByEmail(ctx, core.CleanString(email, true /* lower */))
}

// OpenSession issues an opaque server-side session for the account.
func (svc *Service) OpenSession(ctx context.Context, acct Account) (Session, error) {
	now := time.Now().UTC()
	sess := Session{
		Token:     uuid.NewString(),
		AccountID: acct.ID,
		ExpiresAt: now.Add(svc.conf.SessionTTL),
		CreatedAt: now,
	}
	sess, err := svc.sessions.CreateSession(ctx, sess)
	if err != nil {
		return Session{}, errors.Wrap(err, "creating session")
	}
	return sess, nil
}

// GetSession resolves a session token to its account, rejecting expired
// sessions and sessions of deactivated accounts.
func (svc *Service) GetSession(ctx context.Context, token string) (Session, Account, error) {
	sess, err := svc.sessions.GetSession(ctx, token)
	if err != nil {
		return Session{}, Account{}, err
	}
	if sess.Expired(time.Now().UTC()) {
		return Session{}, Account{}, ErrSessionExpired
	}
	acct, err := svc.repo.GetAccountByID(ctx, sess.AccountID)
	if err != nil {
		return Session{}, Account{}, errors.Wrap(err, "finding session account")
	}
	if !acct.IsActive {
		return Session{}, Account{}, ErrAccountDeactivated
	}
	return sess, acct, nil
}

func (svc *Service) RevokeSession(ctx context.Context, token string) error {
	return svc.sessions.DeleteSession(ctx, token)
}

func (svc *Service) PurgeExpiredSessions(ctx context.Context) error {
	return svc.sessions.DeleteExpiredSessions(ctx, time.Now().UTC())
}

// RequestPasswordReset generates a single-use reset token for the account
// and dispatches it by email. Dispatch failures are reported by the email
// service; already-generated state is not rolled back.
func (svc *Service) RequestPasswordReset(ctx context.Context, email string) error {
	acct, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	token, err := MakeToken(acct, svc.conf)
	if err != nil {
		return errors.Wrap(err, "generating reset token")
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: acct.Name, Address: acct.Email}},
		Subject:      "Password Reset Request",
		TemplateName: "password-reset",
		TemplateData: struct {
			Name  string
			UID   string
			Token string
		}{acct.Name, EncodeUID(acct), token},
	})
	return nil
}

// ResetPassword verifies the reset artifact and rehashes the password.
// The token is single-use: its signature covers the password hash, so a
// successful reset invalidates it.
func (svc *Service) ResetPassword(ctx context.Context, rp ResetAccountPassword) error {
	id, err := decodeUID(rp.UID)
	if err != nil {
		return core.NewValidationError(errInvalidToken)
	}
	acct, err := svc.repo.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return core.NewValidationError(errInvalidToken)
		}
		return errors.Wrap(err, "finding account by id")
	}
	if err = verifyToken(acct, rp.Token, svc.conf); err != nil {
		return core.NewValidationError(err)
	}

	if err = acct.SetPassword(rp.Password); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	acct.UpdatedAt = time.Now().UTC()
	if _, err = svc.repo.UpdateAccount(ctx, acct); err != nil {
		return errors.Wrap(err, "updating account")
	}
	return nil
}
