// Package metadata is the local key/value table of the client database.
// The session token lives here under common.TokenKey.
package metadata

import "context"

// Repository is a small key/value store. Get returns (nil, nil) for a
// missing key and Delete of a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
