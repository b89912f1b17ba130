package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"learnhub/internal/config"

	storagego "github.com/supabase-community/storage-go"
)

// SupabaseStore keeps blobs in a public Supabase Storage bucket.
type SupabaseStore struct {
	client  *storagego.Client
	bucket  string
	baseURL string
}

func NewSupabaseStore(cfg *config.Config) *SupabaseStore {
	baseURL := strings.TrimRight(cfg.SupabaseURL, "/")
	return &SupabaseStore{
		client:  storagego.NewClient(baseURL+"/storage/v1", cfg.SupabaseKey, nil),
		bucket:  cfg.SupabaseBucket,
		baseURL: baseURL,
	}
}

// Put uploads body. The storage-go client does not take a context.
func (s *SupabaseStore) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) (Object, error) {
	upsert := false
	_, err := s.client.UploadFile(s.bucket, key, body, storagego.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return Object{}, fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return Object{URL: s.PublicURL(key), Key: key}, nil
}

func (s *SupabaseStore) Delete(_ context.Context, key string) error {
	if _, err := s.client.RemoveFile(s.bucket, []string{key}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *SupabaseStore) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, key)
}
