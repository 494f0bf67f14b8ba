// Package storage handles attachment blobs in Google Cloud Storage.
//
// Objects follow the path convention {owner}/{record}/{unique-suffix}.{ext};
// the metadata rows referencing them live in the table store.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	gcsstorage "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// File is one attachment to upload: the original name, MIME type, size, and
// content.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// BucketStore wraps a GCS bucket for attachment uploads and downloads.
type BucketStore struct {
	bucket *gcsstorage.BucketHandle
}

// NewBucketStore creates a BucketStore over the given bucket.
func NewBucketStore(bucket *gcsstorage.BucketHandle) *BucketStore {
	return &BucketStore{bucket: bucket}
}

// Upload writes the reader's content to the given object path.
func (b *BucketStore) Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) error {
	w := b.bucket.Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("upload %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("upload %s: %w", objectPath, err)
	}
	return nil
}

// Download reads the full content of the given object path.
func (b *BucketStore) Download(ctx context.Context, objectPath string) ([]byte, error) {
	reader, err := b.bucket.Object(objectPath).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", objectPath, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", objectPath, err)
	}
	return data, nil
}

// ObjectPath builds the storage path for one attachment file. The unique
// suffix keeps same-named uploads from colliding; the original name survives
// only in the metadata row.
func ObjectPath(userID, recordID, fileName string) string {
	return fmt.Sprintf("%s/%s/%s%s", userID, recordID, uuid.New().String(), path.Ext(fileName))
}
