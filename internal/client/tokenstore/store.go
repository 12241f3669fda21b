// Package tokenstore persists the single bearer token of the client.
//
// The slot holds at most one token. Save overwrites it, Remove clears it
// (a no-op when empty) and Read reports whether a token is present.
// Backends: SQLite metadata table (default), a bbolt file, and memory.
package tokenstore

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/gophsocial/internal/filex"
)

// Store is the token slot.
type Store interface {
	Save(ctx context.Context, token string) error
	Remove(ctx context.Context) error
	Read(ctx context.Context) (token string, ok bool, err error)
	Close() error
}

// Backend selects a Store implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendBolt   Backend = "bolt"
	BackendMemory Backend = "memory"
)

// Open creates the Store for backend at path. For BackendMemory path is
// ignored. For BackendBolt a ".bolt" suffix replaces the extension of path
// so that both files can live side by side. Missing parent directories of
// the file are created.
func Open(ctx context.Context, backend Backend, path string) (Store, error) {
	switch backend {
	case BackendSQLite, "":
		abs, err := filex.EnsureParentDir(path)
		if err != nil {
			return nil, err
		}
		return OpenSQLite(ctx, abs)
	case BackendBolt:
		abs, err := filex.EnsureParentDir(boltPath(path))
		if err != nil {
			return nil, err
		}
		return OpenBolt(abs)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown token backend %q", backend)
	}
}

func boltPath(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + ".bolt"
}
