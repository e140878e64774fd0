package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	uuid "github.com/satori/go.uuid"
)

type BlobStore interface {
	Store(ctx context.Context, name string, contentType string, size int64, r io.Reader) (string, error)
	Fetch(ctx context.Context, locator string) (io.ReadCloser, error)
	Delete(ctx context.Context, locator string) error
}

// ObjectName builds a unique, path-safe locator that keeps the original file
// name readable at the end.
func ObjectName(original string) string {
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixNano(), uuid.NewV4().String(), sanitize(original))
}

func sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	s := strings.Trim(b.String(), ".")
	if s == "" {
		return "file"
	}

	return s
}

// OriginalName recovers the sanitized file name from a locator built by
// ObjectName. Other locators are returned unchanged.
func OriginalName(locator string) string {
	stamp, rest, ok := strings.Cut(locator, "-")
	if !ok || stamp == "" || strings.Trim(stamp, "0123456789") != "" {
		return locator
	}

	const uuidLen = 36
	if len(rest) <= uuidLen+1 || rest[uuidLen] != '-' {
		return locator
	}

	if _, err := uuid.FromString(rest[:uuidLen]); err != nil {
		return locator
	}

	return rest[uuidLen+1:]
}
