package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/HSouheill/lostfound_backend/config"
	"github.com/google/uuid"
)

// ImageStore stores item photos and returns a URL they can be fetched from
type ImageStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// New builds the store selected by cfg.StorageDriver
func New(ctx context.Context, cfg *config.Config) (ImageStore, error) {
	switch cfg.StorageDriver {
	case "s3":
		return NewS3Store(ctx, cfg)
	case "local", "":
		return NewLocalStore(cfg.UploadDir, "/uploads")
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// randomKey builds a date-partitioned object key
func randomKey(ext string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("lost-items/%d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	}
	return ".jpg"
}
