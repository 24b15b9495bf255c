package model

import (
	"context"
	"io"
)

// Storage is the durable object storage behind the upload pipeline. It is
// an independent failure domain from local disk: a Put error must never
// abort an upload that already persisted locally, and the mirror serves
// fetches for files no longer present on disk.
type Storage interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64) (string, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
}
