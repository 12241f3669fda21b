package tokenstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophsocial/internal/client/migrations"
	"github.com/dmitrijs2005/gophsocial/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophsocial/internal/common"

	_ "modernc.org/sqlite"
)

// SQLite keeps the token in the metadata table of the client database.
type SQLite struct {
	db   *sql.DB
	repo metadata.Repository
}

// OpenSQLite opens (creating if needed) the database at dsn and applies
// the embedded migrations.
func OpenSQLite(ctx context.Context, dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewSQLite(db, metadata.NewSQLiteRepository(db)), nil
}

// NewSQLite wraps an already migrated database. db may be nil when the
// caller owns its lifetime.
func NewSQLite(db *sql.DB, repo metadata.Repository) *SQLite {
	return &SQLite{db: db, repo: repo}
}

func (s *SQLite) Save(ctx context.Context, token string) error {
	if err := s.repo.Set(ctx, common.TokenKey, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *SQLite) Remove(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.TokenKey); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

func (s *SQLite) Read(ctx context.Context) (string, bool, error) {
	v, err := s.repo.Get(ctx, common.TokenKey)
	if err != nil {
		return "", false, fmt.Errorf("read token: %w", err)
	}
	if v == nil {
		return "", false, nil
	}
	return string(v), true, nil
}

func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
