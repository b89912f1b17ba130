package service

import (
	"context"
	"io"
	"path"
	"slices"
	"strings"

	"learnhub/internal/storage"

	"github.com/rs/zerolog"
)

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type fileKind struct {
	name  string
	exts  []string
	types []string
}

var (
	imageFile = fileKind{
		name:  "Images only (JPEG/PNG)",
		exts:  []string{".jpg", ".jpeg", ".png"},
		types: []string{"image/jpeg", "image/png"},
	}
	documentFile = fileKind{
		name: "PDF or DOCX only",
		exts: []string{".pdf", ".docx"},
		types: []string{
			"application/pdf",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		},
	}
)

// checkUpload rejects files whose extension or declared type is not allowed
// or that exceed maxBytes.
func checkUpload(u *Upload, kind fileKind, maxBytes int64) error {
	ext := strings.ToLower(path.Ext(u.Filename))
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(u.ContentType, ";")[0]))
	if !slices.Contains(kind.exts, ext) || !slices.Contains(kind.types, contentType) {
		return validationErr("%s", kind.name)
	}
	if maxBytes > 0 && u.Size > maxBytes {
		return validationErr("File %s exceeds the %d byte limit", u.Filename, maxBytes)
	}
	return nil
}

// uploadAll stores every file under folder. If one upload fails the ones
// already stored are removed before the error is returned.
func uploadAll(ctx context.Context, blobs storage.BlobStore, logger zerolog.Logger, folder string, files []Upload) ([]storage.Object, error) {
	stored := make([]storage.Object, 0, len(files))
	for _, f := range files {
		obj, err := blobs.Put(ctx, storage.ObjectKey(folder, f.Filename), f.Body, f.Size, f.ContentType)
		if err != nil {
			storage.DeleteAll(ctx, blobs, logger, objectKeys(stored)...)
			return nil, err
		}
		stored = append(stored, obj)
	}
	return stored, nil
}

func objectKeys(objs []storage.Object) []string {
	keys := make([]string, 0, len(objs))
	for _, o := range objs {
		keys = append(keys, o.Key)
	}
	return keys
}
