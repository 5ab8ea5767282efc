package repo

import "context"

// BlobStore persists named text blobs. ok is false when key was never set.
type BlobStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Pinger is implemented by blob stores backed by a server connection.
type Pinger interface {
	Ping(ctx context.Context) error
}
