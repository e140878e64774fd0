package filerepo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"ipbtracker/internal/models"
	"ipbtracker/internal/repositories/storage"
	"os"
	"path/filepath"
)

const pkg = "fileRepo/"

type repository struct {
	root string
}

func NewRepository(root string) *repository {
	return &repository{root: root}
}

// Init creates the storage directory when it does not exist yet.
func (r *repository) Init() error {
	return os.MkdirAll(r.root, 0o755)
}

func (r *repository) Store(ctx context.Context, name string, contentType string, size int64, reader io.Reader) (string, error) {
	op := pkg + "Store"

	locator := storage.ObjectName(name)

	f, err := os.OpenFile(filepath.Join(r.root, locator), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if _, err := io.Copy(f, reader); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return locator, nil
}

func (r *repository) Fetch(ctx context.Context, locator string) (io.ReadCloser, error) {
	op := pkg + "Fetch"

	path, err := r.path(locator)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrBlobNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return f, nil
}

func (r *repository) Delete(ctx context.Context, locator string) error {
	op := pkg + "Delete"

	path, err := r.path(locator)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", op, models.ErrBlobNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// path rejects locators that would escape the storage root.
func (r *repository) path(locator string) (string, error) {
	if locator == "" || locator != filepath.Base(locator) || locator == "." || locator == ".." {
		return "", models.ErrInvalidParams
	}

	return filepath.Join(r.root, locator), nil
}
