package session

import "context"

type ctxKey struct{}

// NewContext returns a child of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session provided to ctx, or ErrNoSession.
func FromContext(ctx context.Context) (*Session, error) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}

// Provide initialises s and scopes it to the returned context. The release
// func closes the session and must be called when the scope ends.
func Provide(ctx context.Context, s *Session) (context.Context, func(), error) {
	if err := s.Init(ctx); err != nil {
		return ctx, func() {}, err
	}
	return NewContext(ctx, s), s.Close, nil
}
