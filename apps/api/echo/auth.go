package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/SaqibAli36/Indoor-Navigation-System/core"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/account"
)

const (
	sessionCookieName = "inav_session"

	contextAccountKey = "account"
	contextSessionKey = "session"
)

// sessionRequired loads the account bound to the request's session cookie
// into the context, rejecting requests without a live session.
func sessionRequired(svc *account.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			cookie, err := ctx.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				return errUnauthorized
			}

			sess, acct, err := svc.GetSession(ctx.Request().Context(), cookie.Value)
			if err != nil {
				switch errors.Cause(err) {
				case account.ErrSessionNotFound, account.ErrSessionExpired:
					clearSessionCookie(ctx)
					return errUnauthorized
				case account.ErrAccountDeactivated:
					clearSessionCookie(ctx)
					return errAccountDeactivated
				}
				return errors.Wrap(err, "resolving session")
			}

			ctx.Set(contextSessionKey, sess)
			ctx.Set(contextAccountKey, acct)
			return next(ctx)
		}
	}
}

func issueSessionCookie(ctx echo.Context, sess account.Session, conf *core.Config) {
	ctx.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   !conf.Debug,
	})
}

func clearSessionCookie(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func getContextAccount(ctx echo.Context) (account.Account, error) {
	if acct, ok := ctx.Get(contextAccountKey).(account.Account); ok {
		return acct, nil
	}
	return account.Account{}, errUnauthorized
}

func getContextSession(ctx echo.Context) (account.Session, error) {
	if sess, ok := ctx.Get(contextSessionKey).(account.Session); ok {
		return sess, nil
	}
	return account.Session{}, errUnauthorized
}
