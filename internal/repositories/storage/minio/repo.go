package miniorepo

import (
	"context"
	"fmt"
	"io"
	"ipbtracker/internal/models"
	"ipbtracker/internal/repositories/storage"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const pkg = "minioRepo/"

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type repository struct {
	client *minio.Client
	bucket string
}

func New(ctx context.Context, cfg Config) (*repository, error) {
	op := pkg + "New"

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create minio client: %w", op, err)
	}

	repo := &repository{
		client: client,
		bucket: cfg.Bucket,
	}

	if err := repo.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return repo, nil
}

func (r *repository) ensureBucket(ctx context.Context) error {
	exists, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

func (r *repository) Store(ctx context.Context, name string, contentType string, size int64, reader io.Reader) (string, error) {
	op := pkg + "Store"

	locator := storage.ObjectName(name)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := r.client.PutObject(ctx, r.bucket, locator, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return locator, nil
}

func (r *repository) Fetch(ctx context.Context, locator string) (io.ReadCloser, error) {
	op := pkg + "Fetch"

	obj, err := r.client.GetObject(ctx, r.bucket, locator, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}

	// GetObject is lazy; Stat surfaces a missing key before the body is streamed.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}

	return obj, nil
}

func (r *repository) Delete(ctx context.Context, locator string) error {
	op := pkg + "Delete"

	if _, err := r.client.StatObject(ctx, r.bucket, locator, minio.StatObjectOptions{}); err != nil {
		return fmt.Errorf("%s: %w", op, translate(err))
	}

	if err := r.client.RemoveObject(ctx, r.bucket, locator, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%s: %w", op, translate(err))
	}

	return nil
}

func translate(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchObject":
		return models.ErrBlobNotFound
	}
	return err
}
