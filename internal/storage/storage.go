// Package storage uploads and removes user files (thumbnails, lesson resources,
// assignment submissions) in an object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"learnhub/internal/config"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
)

// Object is a stored blob. Key is what Delete expects.
type Object struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (Object, error)
	Delete(ctx context.Context, key string) error
}

// New returns the blob store selected by cfg.StorageDriver.
func New(ctx context.Context, cfg *config.Config) (BlobStore, error) {
	switch strings.ToLower(cfg.StorageDriver) {
	case config.StorageDriverS3:
		return NewS3Store(ctx, cfg)
	case config.StorageDriverSupabase:
		return NewSupabaseStore(cfg), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// ObjectKey builds a unique key such as "thumbnails/intro-to-go-1b9d6bcd.png"
// from a folder and the original file name.
func ObjectKey(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	base := slug.Make(strings.TrimSuffix(path.Base(filename), path.Ext(filename)))
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s/%s-%s%s", folder, base, uuid.NewString()[:8], ext)
}

// DeleteAll removes every key and only logs failures. It is used to clean up
// after a failed write and after cascading deletes.
func DeleteAll(ctx context.Context, store BlobStore, logger zerolog.Logger, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := store.Delete(ctx, key); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Failed to delete blob")
		}
	}
}
