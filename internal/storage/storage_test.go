package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"

	"learnhub/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("thumbnails", "Intro To Go!.PNG")
	assert.Regexp(t, regexp.MustCompile(`^thumbnails/intro-to-go-[0-9a-f]{8}\.png$`), key)

	assert.NotEqual(t, ObjectKey("a", "x.pdf"), ObjectKey("a", "x.pdf"))
	assert.True(t, strings.HasPrefix(ObjectKey("resources", ".docx"), "resources/file-"))
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), &config.Config{StorageDriver: "ftp"})
	assert.Error(t, err)
}

func TestSupabasePublicURL(t *testing.T) {
	store := NewSupabaseStore(&config.Config{SupabaseURL: "http://localhost:54321/", SupabaseKey: "k", SupabaseBucket: "uploads"})
	assert.Equal(t, "http://localhost:54321/storage/v1/object/public/uploads/a/b.png", store.PublicURL("a/b.png"))
}

type recordedRequest struct {
	method string
	path   string
	body   string
}

func TestS3StorePutAndDelete(t *testing.T) {
	var (
		mu       sync.Mutex
		requests []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, recordedRequest{method: r.Method, path: r.URL.Path, body: string(body)})
		mu.Unlock()
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := &config.Config{S3URL: srv.URL, S3Bucket: "learnhub", S3Region: "us-east-1", S3AccessKey: "key", S3SecretKey: "secret"}
	store, err := NewS3Store(context.Background(), cfg)
	require.NoError(t, err)

	payload := []byte("%PDF-1.4")
	obj, err := store.Put(context.Background(), "resources/a.pdf", bytes.NewReader(payload), int64(len(payload)), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/learnhub/resources/a.pdf", obj.URL)
	assert.Equal(t, "resources/a.pdf", obj.Key)

	require.NoError(t, store.Delete(context.Background(), "resources/a.pdf"))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, requests, 2)
	assert.Equal(t, http.MethodPut, requests[0].method)
	assert.Equal(t, "/learnhub/resources/a.pdf", requests[0].path)
	assert.Equal(t, string(payload), requests[0].body)
	assert.Equal(t, http.MethodDelete, requests[1].method)
}

type failingStore struct {
	deleted []string
}

func (f *failingStore) Put(context.Context, string, io.Reader, int64, string) (Object, error) {
	return Object{}, errors.New("not used")
}

func (f *failingStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return errors.New("boom")
}

func TestDeleteAllSkipsEmptyKeysAndContinuesOnError(t *testing.T) {
	store := &failingStore{}
	DeleteAll(context.Background(), store, zerolog.Nop(), "a", "", "b")
	assert.Equal(t, []string{"a", "b"}, store.deleted)
}
