package storage

import (
	"context"
	"errors"
	"io"
)

// ErrBlobNotFound is returned by Download when no blob exists for the key.
var ErrBlobNotFound = errors.New("storage: blob not found")

// StorageProvider stores and serves binary blobs. The relational schema only
// holds a key and URL; which backend answers for them is a deployment
// choice.
type StorageProvider interface {
	Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error)
	Download(ctx context.Context, key string) (*DownloadResponse, error)
	Delete(ctx context.Context, key string) error
}

type UploadRequest struct {
	Key         string
	Reader      io.Reader
	ContentType string
	Size        int64
}

type UploadResponse struct {
	Key  string
	URL  string
	Size int64
}

type DownloadResponse struct {
	Reader      io.ReadCloser
	Size        int64
	ContentType string
}
