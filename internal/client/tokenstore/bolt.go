package tokenstore

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/common"
	bolt "go.etcd.io/bbolt"
)

var sessionBucket = []byte("session")

// Bolt keeps the token in a bbolt file. Useful where the SQLite driver is
// not wanted; the file is held open with an exclusive lock.
type Bolt struct {
	db *bolt.DB
}

func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Save(_ context.Context, token string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Put([]byte(common.TokenKey), []byte(token))
	})
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (b *Bolt) Remove(_ context.Context) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Delete([]byte(common.TokenKey))
	})
	if err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

func (b *Bolt) Read(_ context.Context) (string, bool, error) {
	var (
		token string
		ok    bool
	)

	err := b.db.View(func(tx *bolt.Tx) error {
		// Values are only valid inside the transaction, so copy out.
		if v := tx.Bucket(sessionBucket).Get([]byte(common.TokenKey)); v != nil {
			token, ok = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("read token: %w", err)
	}
	return token, ok, nil
}

func (b *Bolt) Close() error {
	return b.db.Close()
}
