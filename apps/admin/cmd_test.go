package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/SaqibAli36/Indoor-Navigation-System/core/account"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/room"
	inmemdb "github.com/SaqibAli36/Indoor-Navigation-System/storage/database/inmem"
	testutil "github.com/SaqibAli36/Indoor-Navigation-System/tests"
)

var (
	acctRepo account.Repository
	roomRepo room.Repository
)

func setup(t *testing.T) *commandLine {
	// set up DB & repos
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open(): %v", err)
	}
	acctRepo = inmemdb.NewAccountRepository(db)
	roomRepo = inmemdb.NewRoomRepository(db)

	// start CLI
	return &commandLine{
		db:       &sqlx.DB{},
		conf:     testutil.NewConfig(),
		acctRepo: acctRepo,
		roomSvc:  room.NewService(roomRepo, testutil.NewMediaStoreMock(), testutil.LoggerMock{}),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "exam", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_addAdmin(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"addadmin"}, wantErr: errHelp},
		{name: "name but no email", args: []string{"addadmin", "-name", "Saqib"}, wantErr: errHelp},
		{name: "no password", args: []string{"addadmin", "-name", "Saqib", "-email", "saqib@test.test"}, wantErr: errHelp},
		{name: "create", args: []string{"addadmin", "-name", "Saqib", "-email", "saqib@test.test"}, extra: extra{pwd: "lol"}},
		{name: "update existing", args: []string{"addadmin", "-name", "Saqib Ali", "-email", "SAQIB@test.test"}, extra: extra{pwd: "lmao"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				acct, err := acctRepo.GetAccountByEmail(context.Background(), "saqib@test.test")
				if err != nil {
					t.Fatalf("GetAccountByEmail() failed: %v", err)
				}
				if !acct.IsActive {
					t.Error("admin account is not active")
				}
				if err := acct.CheckPassword(tt.extra.(extra).pwd); err != nil {
					t.Error("password not set")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	// the update reused the existing record
	acct, err := acctRepo.GetAccountByEmail(context.Background(), "saqib@test.test")
	if err != nil {
		t.Fatalf("GetAccountByEmail() failed: %v", err)
	}
	if acct.Name != "Saqib Ali" {
		t.Errorf("name = %q, want %q", acct.Name, "Saqib Ali")
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	acct := testutil.CreateAccount(t, acctRepo, "Saqib", "saqib@test.test", "mdr", true)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", "lol@test.test"}, wantErr: errHelp},
		{name: "account not found", args: []string{"resetpassword", "-email", "lol@test.test"}, extra: extra{pwd: "lol"}, wantErr: account.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-email", acct.Email}, extra: extra{pwd: "lol"}},
		{name: "reset (mixed case email)", args: []string{"resetpassword", "-email", "SAQIB@test.test"}, extra: extra{pwd: "lmao"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshed, err := acctRepo.GetAccountByEmail(context.Background(), acct.Email)
				if err != nil {
					t.Fatalf("GetAccountByEmail() failed: %v", err)
				}
				if bytes.Equal(refreshed.PasswordHash, acct.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_seedRooms(t *testing.T) {
	cli := setup(t)

	listing := []byte(`[
		{"id": "b12", "name": "Physics Lab", "video": "room_b12.mp4"},
		{"id": "r101", "name": "Room 101", "video": "room_r101.mp4"}
	]`)
	path := filepath.Join(t.TempDir(), "rooms.json")
	if err := os.WriteFile(path, listing, 0o644); err != nil {
		t.Fatalf("WriteFile(): %v", err)
	}

	t.Run("missing file", func(t *testing.T) {
		if err := cli.run([]string{"admin", "seedrooms", "-file", filepath.Join(t.TempDir(), "lol.json")}); err == nil {
			t.Error("cli.run() expected error on a missing listing")
		}
	})

	t.Run("imports the listing", func(t *testing.T) {
		if err := cli.run([]string{"admin", "seedrooms", "-file", path}); err != nil {
			t.Fatalf("cli.run(): %v", err)
		}
		rooms, err := roomRepo.QueryAllRooms(context.Background())
		if err != nil {
			t.Fatalf("QueryAllRooms(): %v", err)
		}
		if len(rooms) != 2 {
			t.Fatalf("len(rooms) = %v, want 2", len(rooms))
		}
	})

	t.Run("re-import is a no-op", func(t *testing.T) {
		if err := cli.run([]string{"admin", "seedrooms", "-file", path}); err != nil {
			t.Fatalf("cli.run(): %v", err)
		}
		rooms, err := roomRepo.QueryAllRooms(context.Background())
		if err != nil {
			t.Fatalf("QueryAllRooms(): %v", err)
		}
		if len(rooms) != 2 {
			t.Errorf("len(rooms) = %v, want 2", len(rooms))
		}
	})
}
