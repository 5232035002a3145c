package mediasvc

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/SaqibAli36/Indoor-Navigation-System/core"
)

type fsStore struct {
	dir string
}

var _ core.MediaStore = (*fsStore)(nil)

// NewFSStore stores blobs as plain files under dir, creating it if needed.
func NewFSStore(dir string) (*fsStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating upload dir")
	}
	return &fsStore{dir: dir}, nil
}

func (store *fsStore) path(filename string) string {
	return filepath.Join(store.dir, filepath.Base(filename))
}

func (store *fsStore) Save(ctx context.Context, filename string, r io.Reader, size int64, contentType string) error {
	tmp, err := os.CreateTemp(store.dir, ".upload-*")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err = io.Copy(tmp, r); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing blob")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing blob")
	}
	return errors.Wrap(os.Rename(tmp.Name(), store.path(filename)), "renaming blob")
}

func (store *fsStore) Delete(ctx context.Context, filename string) error {
	err := os.Remove(store.path(filename))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing blob")
	}
	return nil
}

func (store *fsStore) Exists(ctx context.Context, filename string) (bool, error) {
	_, err := os.Stat(store.path(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "statting blob")
	}
	return true, nil
}

func (store *fsStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(store.dir)
	if err != nil {
		return nil, errors.Wrap(err, "reading upload dir")
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
