package testutil

import (
	"bytes"
	"context"
	"io"
	"net/mail"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/SaqibAli36/Indoor-Navigation-System/core"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/account"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/room"
)

// NewConfig returns a self-contained test configuration;
// nothing is read from the environment.
func NewConfig() *core.Config {
	return &core.Config{
		Env:      "TEST",
		TestMode: true,
		WorkDir:  core.Getwd(),

		AppName:                   "Indoor Navigation System",
		SecretKey:                 "secret",
		FrontendBaseURL:           "http://localhost:3000",
		DefaultFromEmail:          mail.Address{Name: "Indoor Navigation System", Address: "noreply@test.test"},
		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
		SessionTTL:                time.Hour,
		SeedFile:                  "data.json",
	}
}

func CreateAccount(
	t *testing.T,
	repo account.Repository,
	name, email, pwd string,
	isActive bool,
) account.Account {
	t.Helper()

	now := time.Now().UTC()
	acct := account.Account{
		Name:      name,
		Email:     email,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pwd != "" {
		if err := acct.SetPassword(pwd); err != nil {
			t.Fatalf("CreateAccount() failed: %v", err)
		}
	}
	acct, err := repo.CreateAccount(context.Background(), acct)
	if err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}
	return acct
}

func CreateRoom(
	t *testing.T,
	repo room.Repository,
	id, name string,
	createdAt ...time.Time,
) room.Room {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	rm := room.Room{
		ID:        id,
		Name:      name,
		Video:     room.VideoFilename(id),
		CreatedAt: tstamp,
	}
	rm, err := repo.CreateRoom(context.Background(), rm)
	if err != nil {
		t.Fatalf("CreateRoom() failed: %v", err)
	}
	return rm
}

// MediaStoreMock is an in-memory core.MediaStore.
type MediaStoreMock struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

var _ core.MediaStore = (*MediaStoreMock)(nil)

func NewMediaStoreMock() *MediaStoreMock {
	return &MediaStoreMock{blobs: make(map[string][]byte)}
}

func (store *MediaStoreMock) Save(ctx context.Context, filename string, r io.Reader, size int64, contentType string) error {
	var buff bytes.Buffer
	if _, err := io.Copy(&buff, r); err != nil {
		return err
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	store.blobs[filename] = buff.Bytes()
	return nil
}

func (store *MediaStoreMock) Delete(ctx context.Context, filename string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.blobs, filename)
	return nil
}

func (store *MediaStoreMock) Exists(ctx context.Context, filename string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	_, ok := store.blobs[filename]
	return ok, nil
}

func (store *MediaStoreMock) List(ctx context.Context) ([]string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	names := make([]string, 0, len(store.blobs))
	for name := range store.blobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Put stores a blob directly, bypassing Save.
func (store *MediaStoreMock) Put(filename string, content []byte) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.blobs[filename] = content
}

// LoggerMock is a no-op core.Logger.
type LoggerMock struct{}

var _ core.Logger = (*LoggerMock)(nil)

func (LoggerMock) Debug(msg string, args ...interface{}) {}
func (LoggerMock) Info(msg string, args ...interface{})  {}
func (LoggerMock) Warn(msg string, args ...interface{})  {}
func (LoggerMock) Error(msg string, args ...interface{}) {}
func (LoggerMock) Fatal(msg string, args ...interface{}) {}
