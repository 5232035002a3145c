package account

import (
	"testing"
	"time"

	"github.com/SaqibAli36/Indoor-Navigation-System/core"
)

func TestMakeVerifyToken(t *testing.T) {
	conf := &core.Config{
		SecretKey:                 "secret",
		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
	}

	now := time.Now()
	acct := Account{
		ID:        1,
		Name:      "T",
		Email:     "t@test.test",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
		LastLogin: now,
	}
	_ = acct.SetPassword("pwd")

	validToken, err := MakeToken(acct, conf)
	if err != nil {
		t.Fatalf("MakeToken() failed: %v", err)
	}

	// generate an expired token
	dayLate := conf.PasswordResetTimeoutDelta + (24 * time.Hour)
	NowFunc = func() time.Time { return time.Now().Add(-dayLate) }
	expiredToken, err := MakeToken(acct, conf)
	if err != nil {
		t.Fatalf("MakeToken() failed: %v", err)
	}
	NowFunc = time.Now // reset

	tests := []struct {
		name    string
		acct    Account
		token   string
		wantErr error
	}{
		{name: "no token", acct: acct, wantErr: errInvalidToken},
		{name: "invalid parts len", acct: acct, token: "lmaooolol", wantErr: errInvalidToken},
		{name: "invalid base32", acct: acct, token: "hahaha-sigsig-sig", wantErr: errInvalidToken},
		{name: "invalid timestamp", acct: acct, token: "NRXWY-sigsig-sig", wantErr: errInvalidToken},
		{name: "invalid token", acct: acct, token: "HE4TS-sigsig-sig", wantErr: errInvalidToken},
		{name: "expired token", acct: acct, token: expiredToken, wantErr: errTokenExpired},
		{name: "valid token", acct: acct, token: validToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := verifyToken(tt.acct, tt.token, conf); err != tt.wantErr {
				t.Errorf("verifyToken() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEncodeDecodeUID(t *testing.T) {
	acct := Account{ID: 42}
	uid := EncodeUID(acct)

	id, err := decodeUID(uid)
	if err != nil {
		t.Fatalf("decodeUID() failed: %v", err)
	}
	if id != acct.ID {
		t.Errorf("decodeUID() = %v, want %v", id, acct.ID)
	}

	if _, err = decodeUID("!!!"); err == nil {
		t.Error("decodeUID() expected error on invalid base64")
	}
	if _, err = decodeUID(EncodeUID(Account{})); err != nil {
		t.Errorf("decodeUID() failed on zero id: %v", err)
	}
}
