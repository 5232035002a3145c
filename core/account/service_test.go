package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaqibAli36/Indoor-Navigation-System/core"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/account"
	emailsvc "github.com/SaqibAli36/Indoor-Navigation-System/services/email"
	inmemdb "github.com/SaqibAli36/Indoor-Navigation-System/storage/database/inmem"
	testutil "github.com/SaqibAli36/Indoor-Navigation-System/tests"
)

func setup(t *testing.T) (*account.Service, account.Repository, account.SessionRepository, *core.Config) {
	t.Helper()

	db, err := inmemdb.Open()
	require.NoError(t, err)

	conf := testutil.NewConfig()
	repo := inmemdb.NewAccountRepository(db)
	sessions := inmemdb.NewSessionRepository(db)
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	return account.NewService(repo, sessions, mailSvc, conf), repo, sessions, conf
}

func TestService_Register(t *testing.T) {
	svc, _, _, _ := setup(t)
	ctx := context.Background()

	sentBefore := len(emailsvc.SentMessages)
	acct, err := svc.Register(ctx, account.NewAccount{
		Name:            "Saqib",
		Email:           "saqib@test.test",
		Password:        "S3cret!pwd",
		PasswordConfirm: "S3cret!pwd",
	})
	require.NoError(t, err)
	assert.True(t, acct.IsActive)
	assert.NotZero(t, acct.ID)
	assert.NoError(t, acct.CheckPassword("S3cret!pwd"))
	assert.Error(t, acct.CheckPassword("nope"))

	// welcome email dispatched
	require.Greater(t, len(emailsvc.SentMessages), sentBefore)
	msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
	assert.Equal(t, "Welcome!", msg.Subject)
	require.Len(t, msg.To, 1)
	assert.Equal(t, acct.Email, msg.To[0].Address)

	// duplicate email surfaces as a field error
	_, err = svc.Register(ctx, account.NewAccount{
		Name:            "Other",
		Email:           "saqib@test.test",
		Password:        "S3cret!pwd",
		PasswordConfirm: "S3cret!pwd",
	})
	require.Error(t, err)
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "email", vErr.Fields[0].Field)
}

func TestService_Authenticate(t *testing.T) {
	svc, repo, _, _ := setup(t)
	ctx := context.Background()

	acct := testutil.CreateAccount(t, repo, "Saqib", "saqib@test.test", "S3cret!pwd", true)
	inactive := testutil.CreateAccount(t, repo, "Gone", "gone@test.test", "S3cret!pwd", false)

	tests := []struct {
		name    string
		email   string
		pwd     string
		wantErr error
	}{
		{name: "unknown email", email: "lol@test.test", pwd: "S3cret!pwd", wantErr: account.ErrAuthenticationFailed},
		{name: "wrong password", email: acct.Email, pwd: "nope", wantErr: account.ErrAuthenticationFailed},
		{name: "deactivated", email: inactive.Email, pwd: "S3cret!pwd", wantErr: account.ErrAccountDeactivated},
		{name: "ok", email: acct.Email, pwd: "S3cret!pwd"},
		{name: "ok (mixed case email)", email: "SAQIB@test.test", pwd: "S3cret!pwd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Authenticate(ctx, tt.email, tt.pwd)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, acct.ID, got.ID)
			assert.False(t, got.LastLogin.IsZero())
		})
	}
}

func TestService_Sessions(t *testing.T) {
	svc, repo, sessions, conf := setup(t)
	ctx := context.Background()

	acct := testutil.CreateAccount(t, repo, "Saqib", "saqib@test.test", "S3cret!pwd", true)

	sess, err := svc.OpenSession(ctx, acct)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(conf.SessionTTL), sess.ExpiresAt, time.Minute)

	gotSess, gotAcct, err := svc.GetSession(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.Token, gotSess.Token)
	assert.Equal(t, acct.ID, gotAcct.ID)

	// unknown token
	_, _, err = svc.GetSession(ctx, "nope")
	assert.ErrorIs(t, err, account.ErrSessionNotFound)

	// expired session
	expired, err := sessions.CreateSession(ctx, account.Session{
		Token:     "expired-token",
		AccountID: acct.ID,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
		CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
	})
	require.NoError(t, err)
	_, _, err = svc.GetSession(ctx, expired.Token)
	assert.ErrorIs(t, err, account.ErrSessionExpired)

	// purge drops the expired session only
	require.NoError(t, svc.PurgeExpiredSessions(ctx))
	_, err = sessions.GetSession(ctx, expired.Token)
	assert.ErrorIs(t, err, account.ErrSessionNotFound)
	_, _, err = svc.GetSession(ctx, sess.Token)
	assert.NoError(t, err)

	// revoked session is gone
	require.NoError(t, svc.RevokeSession(ctx, sess.Token))
	_, _, err = svc.GetSession(ctx, sess.Token)
	assert.ErrorIs(t, err, account.ErrSessionNotFound)
}

func TestService_GetSession_deactivatedAccount(t *testing.T) {
	svc, repo, _, _ := setup(t)
	ctx := context.Background()

	acct := testutil.CreateAccount(t, repo, "Saqib", "saqib@test.test", "S3cret!pwd", true)
	sess, err := svc.OpenSession(ctx, acct)
	require.NoError(t, err)

	acct.IsActive = false
	_, err = repo.UpdateAccount(ctx, acct)
	require.NoError(t, err)

	_, _, err = svc.GetSession(ctx, sess.Token)
	assert.ErrorIs(t, err, account.ErrAccountDeactivated)
}

func TestService_PasswordReset(t *testing.T) {
	svc, repo, _, conf := setup(t)
	ctx := context.Background()

	acct := testutil.CreateAccount(t, repo, "Saqib", "saqib@test.test", "S3cret!pwd", true)

	// unknown email bubbles up so the handler can hide it
	err := svc.RequestPasswordReset(ctx, "lol@test.test")
	assert.ErrorIs(t, err, account.ErrNotFound)

	sentBefore := len(emailsvc.SentMessages)
	require.NoError(t, svc.RequestPasswordReset(ctx, acct.Email))
	require.Greater(t, len(emailsvc.SentMessages), sentBefore)
	msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
	assert.Equal(t, "Password Reset Request", msg.Subject)

	token, err := account.MakeToken(acct, conf)
	require.NoError(t, err)
	rp := account.ResetAccountPassword{
		UID:             account.EncodeUID(acct),
		Token:           token,
		Password:        "N3w!passwd",
		PasswordConfirm: "N3w!passwd",
	}
	require.NoError(t, svc.ResetPassword(ctx, rp))

	// new password works
	_, err = svc.Authenticate(ctx, acct.Email, "N3w!passwd")
	assert.NoError(t, err)
	_, err = svc.Authenticate(ctx, acct.Email, "S3cret!pwd")
	assert.ErrorIs(t, err, account.ErrAuthenticationFailed)

	// the token is single-use: the signature covered the old hash
	err = svc.ResetPassword(ctx, rp)
	var vErr *core.ValidationError
	assert.ErrorAs(t, err, &vErr)

	// garbage uid
	err = svc.ResetPassword(ctx, account.ResetAccountPassword{UID: "!!!", Token: token, Password: "N3w!passwd", PasswordConfirm: "N3w!passwd"})
	assert.ErrorAs(t, err, &vErr)
}
