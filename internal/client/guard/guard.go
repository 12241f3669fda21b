// Package guard wraps route handlers with session-driven access checks.
//
// Protected routes need a signed-in user, Public routes are only for
// anonymous users. A guard that refuses returns a *Redirect naming the
// route to run instead; following it is up to the router.
package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophsocial/internal/client/session"
)

// Handler runs a route.
type Handler func(ctx context.Context, args []string) error

// Redirect asks the router to run route To instead.
type Redirect struct {
	To string
}

func (r *Redirect) Error() string {
	return fmt.Sprintf("redirect to %q", r.To)
}

// AsRedirect reports whether err carries a redirect.
func AsRedirect(err error) (*Redirect, bool) {
	var r *Redirect
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// Protected runs next only for an authenticated session; anonymous users
// are sent to loginRoute.
func Protected(loginRoute string, next Handler) Handler {
	return func(ctx context.Context, args []string) error {
		s, err := session.FromContext(ctx)
		if err != nil {
			return err
		}
		if !s.IsAuthenticated() {
			return &Redirect{To: loginRoute}
		}
		return next(ctx, args)
	}
}

// Public runs next only for an anonymous session; signed-in users are
// sent to homeRoute.
func Public(homeRoute string, next Handler) Handler {
	return func(ctx context.Context, args []string) error {
		s, err := session.FromContext(ctx)
		if err != nil {
			return err
		}
		if s.IsAuthenticated() {
			return &Redirect{To: homeRoute}
		}
		return next(ctx, args)
	}
}
