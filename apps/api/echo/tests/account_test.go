package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	. "github.com/SaqibAli36/Indoor-Navigation-System/apps/api/echo"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/account"
	emailsvc "github.com/SaqibAli36/Indoor-Navigation-System/services/email"
	testutil "github.com/SaqibAli36/Indoor-Navigation-System/tests"
)

func Test_accountApi_signup(t *testing.T) {
	app := setup(t)

	body := func(name, email, pwd, confirm string) []byte {
		return marchallObj(t, account.NewAccount{Name: name, Email: email, Password: pwd, PasswordConfirm: confirm})
	}

	tests := []httpTest{
		{
			name: "empty body", body: []byte("{}"), wantCode: http.StatusBadRequest,
			// the struct-level password policy fires after the field checks
			// and wins the "password" key
			wantData: marchallObj(t, map[string]string{
				"name":             "this field is required",
				"email":            "this field is required",
				"password":         "password must contain at least 8 characters",
				"confirm_password": "this field is required",
			}),
		},
		{
			name: "invalid email", body: body("Saqib", "nope", "S3cret!pwd", "S3cret!pwd"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "email must be a valid email address"}),
		},
		{
			name: "password too short", body: body("Saqib", "saqib@test.test", "S3c!", "S3c!"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password": "password must contain at least 8 characters"}),
		},
		{
			name: "password mismatch", body: body("Saqib", "saqib@test.test", "S3cret!pwd", "S3cret!pwd2"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"confirm_password": "confirm_password must be equal to Password"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/accounts/signup", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("signup opens a session", func(t *testing.T) {
		sentBefore := len(emailsvc.SentMessages)

		req, rec := newRequest(http.MethodPost, "/v1/accounts/signup", body("Saqib", "saqib@test.test", "S3cret!pwd", "S3cret!pwd"))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}

		var acct account.Account
		if err := json.Unmarshal(rec.Body.Bytes(), &acct); err != nil {
			t.Fatalf("unmarshalling account: %v", err)
		}
		if acct.Email != "saqib@test.test" || !acct.IsActive {
			t.Errorf("unexpected account: %+v", acct)
		}

		token := sessionCookieValue(rec)
		if token == "" {
			t.Fatal("no session cookie issued")
		}
		req, rec = newAuthRequest(http.MethodGet, "/v1/accounts/me", token)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, acct)}, rec)

		if len(emailsvc.SentMessages) <= sentBefore {
			t.Error("no welcome email dispatched")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/accounts/signup", body("Other", "saqib@test.test", "S3cret!pwd", "S3cret!pwd"))
		app.ServeHTTP(rec, req)
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "an account with this email already exists"}),
		}
		checkCodeAndData(t, tt, rec)
	})
}

func Test_accountApi_login(t *testing.T) {
	app := setup(t)

	testutil.CreateAccount(t, acctRepo, "Saqib", "saqib@test.test", "S3cret!pwd", true)
	testutil.CreateAccount(t, acctRepo, "Gone", "gone@test.test", "S3cret!pwd", false)

	body := func(email, pwd string) []byte {
		return marchallObj(t, LoginRequest{Email: email, Password: pwd})
	}

	tests := []httpTest{
		{
			name: "missing credentials", body: []byte("{}"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "this field is required", "password": "this field is required"}),
		},
		{
			name: "unknown email", body: body("lol@test.test", "S3cret!pwd"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "wrong password", body: body("saqib@test.test", "nope"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "deactivated account", body: body("gone@test.test", "S3cret!pwd"), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/accounts/login", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("ok", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/accounts/login", body("SAQIB@test.test", "S3cret!pwd"))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		var acct account.Account
		if err := json.Unmarshal(rec.Body.Bytes(), &acct); err != nil {
			t.Fatalf("unmarshalling account: %v", err)
		}
		if acct.LastLogin.IsZero() {
			t.Error("lastLogin not refreshed")
		}

		token := sessionCookieValue(rec)
		if token == "" {
			t.Fatal("no session cookie issued")
		}
		req, rec = newAuthRequest(http.MethodGet, "/v1/accounts/me", token)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, acct)}, rec)
	})
}

func Test_accountApi_logout(t *testing.T) {
	app := setup(t)

	acct := testutil.CreateAccount(t, acctRepo, "Saqib", "saqib@test.test", "S3cret!pwd", true)
	token := getToken(t, acct)

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/accounts/logout")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthenticated)}, rec)
	})

	t.Run("logout revokes the session", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/accounts/logout", token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusNoContent)
		}

		// the revoked token no longer authenticates
		req, rec = newAuthRequest(http.MethodGet, "/v1/accounts/me", token)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthenticated)}, rec)
	})
}

func Test_accountApi_me(t *testing.T) {
	app := setup(t)

	acct := testutil.CreateAccount(t, acctRepo, "Saqib", "saqib@test.test", "S3cret!pwd", true)
	inactive := testutil.CreateAccount(t, acctRepo, "Gone", "gone@test.test", "S3cret!pwd", false)

	tests := []httpTest{
		{name: "auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthenticated)},
		{name: "bad token", token: "lol", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNotAuthenticated)},
		{
			name: "deactivated account", token: getToken(t, inactive), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
		{name: "ok", token: getToken(t, acct), wantCode: http.StatusOK, wantData: marchallObj(t, acct)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/accounts/me", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_accountApi_passwordReset(t *testing.T) {
	app := setup(t)

	acct := testutil.CreateAccount(t, acctRepo, "Saqib", "saqib@test.test", "S3cret!pwd", true)

	genericMsg := SuccessResponse{
		Success: "If the email address supplied is associated with an active account on this system, " +
			"an email will arrive in your inbox shortly with instructions to reset your password.",
	}

	t.Run("unknown email is not disclosed", func(t *testing.T) {
		sentBefore := len(emailsvc.SentMessages)
		req, rec := newRequest(http.MethodPost, "/v1/accounts/password-reset", marchallObj(t, PasswordResetRequest{Email: "lol@test.test"}))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, genericMsg)}, rec)
		if len(emailsvc.SentMessages) != sentBefore {
			t.Error("no email should be dispatched for an unknown address")
		}
	})

	t.Run("known email gets the reset email", func(t *testing.T) {
		sentBefore := len(emailsvc.SentMessages)
		req, rec := newRequest(http.MethodPost, "/v1/accounts/password-reset", marchallObj(t, PasswordResetRequest{Email: acct.Email}))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, genericMsg)}, rec)
		if len(emailsvc.SentMessages) <= sentBefore {
			t.Fatal("no reset email dispatched")
		}
		msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
		if msg.Subject != "Password Reset Request" {
			t.Errorf("subject = %q", msg.Subject)
		}
	})

	t.Run("confirm resets the password once", func(t *testing.T) {
		token, err := account.MakeToken(acct, conf)
		if err != nil {
			t.Fatalf("MakeToken(): %v", err)
		}
		body := marchallObj(t, account.ResetAccountPassword{
			UID:             account.EncodeUID(acct),
			Token:           token,
			Password:        "N3w!passwd",
			PasswordConfirm: "N3w!passwd",
		})

		req, rec := newRequest(http.MethodPost, "/v1/accounts/password-reset-confirm", body)
		app.ServeHTTP(rec, req)
		wantData := marchallObj(t, SuccessResponse{Success: "Password has been reset with the new password."})
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: wantData}, rec)

		// the new password authenticates
		login := marchallObj(t, LoginRequest{Email: acct.Email, Password: "N3w!passwd"})
		req, rec = newRequest(http.MethodPost, "/v1/accounts/login", login)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("login code = %v; body %s", rec.Code, rec.Body.String())
		}

		// the token died with the old password hash
		req, rec = newRequest(http.MethodPost, "/v1/accounts/password-reset-confirm", body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("reused token code = %v; want %v", rec.Code, http.StatusBadRequest)
		}
	})
}
