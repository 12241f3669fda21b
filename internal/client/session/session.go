// Package session owns the signed-in state of the client.
//
// A Session has two states, Anonymous and Authenticated. It is initialised
// once from the token store, mutated only through Login and Logout, and
// handed to route handlers through context.Context (see Provide and
// FromContext). Decoding never verifies the token signature.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophsocial/internal/logging"
)

// State of a Session.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// TokenStore is the persistence a Session needs; tokenstore.Store satisfies it.
type TokenStore interface {
	Save(ctx context.Context, token string) error
	Remove(ctx context.Context) error
	Read(ctx context.Context) (string, bool, error)
}

type Session struct {
	store   TokenStore
	decoder *Decoder
	log     logging.Logger

	initOnce sync.Once
	initErr  error

	mu       sync.RWMutex
	identity *UserIdentity
	closed   bool
}

func New(store TokenStore, decoder *Decoder, log logging.Logger) *Session {
	if decoder == nil {
		decoder = NewDecoder()
	}
	if log == nil {
		log = logging.Nop{}
	}
	return &Session{store: store, decoder: decoder, log: log}
}

// Init restores the session from the stored token. Only the first call
// does any work; later calls return the first result. A stored token that
// does not decode leaves the session Anonymous but is not removed.
func (s *Session) Init(ctx context.Context) error {
	s.initOnce.Do(func() {
		token, ok, err := s.store.Read(ctx)
		if err != nil {
			s.initErr = fmt.Errorf("restore session: %w", err)
			return
		}
		if !ok {
			s.log.Debug(ctx, "no stored session")
			return
		}

		res := s.decoder.Decode(token)
		id, valid := res.Identity()
		if !valid {
			s.log.Warn(ctx, "stored token is malformed, starting anonymous", "error", res.Err())
			return
		}

		s.mu.Lock()
		s.identity = &id
		s.mu.Unlock()
		s.log.Info(ctx, "session restored", "user_id", id.ID)
	})
	return s.initErr
}

// Login decodes token, persists it and switches to Authenticated whatever
// the previous state was. A token that does not decode is rejected with
// ErrMalformedToken before anything is stored, so the stored token and the
// in-memory identity never disagree.
func (s *Session) Login(ctx context.Context, token string) (UserIdentity, error) {
	res := s.decoder.Decode(token)
	id, valid := res.Identity()
	if !valid {
		s.log.Warn(ctx, "login rejected", "error", res.Err())
		return UserIdentity{}, res.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return UserIdentity{}, ErrClosed
	}
	if err := s.store.Save(ctx, token); err != nil {
		return UserIdentity{}, fmt.Errorf("login: %w", err)
	}

	s.identity = &id
	s.log.Info(ctx, "signed in", "user_id", id.ID, "username", id.Username)
	return id, nil
}

// Logout removes the stored token and switches to Anonymous. The state
// change happens even if the store fails; the store error is returned.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	wasAuthenticated := s.identity != nil
	s.identity = nil

	if err := s.store.Remove(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if wasAuthenticated {
		s.log.Info(ctx, "signed out")
	}
	return nil
}

// Identity returns a copy of the current identity.
func (s *Session) Identity() (UserIdentity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return UserIdentity{}, false
	}
	return *s.identity, true
}

func (s *Session) State() State {
	if s.IsAuthenticated() {
		return Authenticated
	}
	return Anonymous
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// Close tears the session down. The stored token is kept for the next run.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.identity = nil
}
