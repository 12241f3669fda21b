package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/gophsocial/internal/client/guard"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
)

const maxRedirects = 4

var (
	ErrUnknownRoute    = errors.New("unknown command")
	ErrRedirectLoop    = errors.New("redirect loop")
	ErrTooManyRedirect = errors.New("too many redirects")
)

// access decides which guard wraps a route.
type access int

const (
	accessOpen access = iota
	accessPublic
	accessProtected
)

type route struct {
	name    string
	usage   string
	summary string
	access  access
	handler guard.Handler
}

// router maps command names to guarded handlers and follows redirects.
type router struct {
	loginRoute string
	homeRoute  string
	routes     map[string]*route
	log        logging.Logger

	// onRedirect is told about every redirect that is followed.
	onRedirect func(from, to string)
}

func newRouter(loginRoute, homeRoute string, log logging.Logger) *router {
	if log == nil {
		log = logging.Nop{}
	}
	return &router{
		loginRoute: loginRoute,
		homeRoute:  homeRoute,
		routes:     make(map[string]*route),
		log:        log,
		onRedirect: func(string, string) {},
	}
}

// add registers rt under its name and any aliases.
func (r *router) add(rt route, aliases ...string) {
	switch rt.access {
	case accessPublic:
		rt.handler = guard.Public(r.homeRoute, rt.handler)
	case accessProtected:
		rt.handler = guard.Protected(r.loginRoute, rt.handler)
	}

	p := &rt
	r.routes[rt.name] = p
	for _, a := range aliases {
		r.routes[a] = p
	}
}

// dispatch runs the named route. A *guard.Redirect returned by a route is
// followed with no arguments, at most maxRedirects times; visiting a route
// twice in one dispatch is a loop.
func (r *router) dispatch(ctx context.Context, name string, args []string) error {
	seen := make(map[string]bool)

	for hops := 0; ; hops++ {
		rt, ok := r.routes[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownRoute, name)
		}
		if seen[rt.name] {
			return fmt.Errorf("%w at %q", ErrRedirectLoop, rt.name)
		}
		seen[rt.name] = true

		err := rt.handler(ctx, args)
		redirect, ok := guard.AsRedirect(err)
		if !ok {
			return err
		}
		if hops >= maxRedirects {
			return ErrTooManyRedirect
		}

		r.log.Debug(ctx, "redirect", "from", rt.name, "to", redirect.To)
		r.onRedirect(rt.name, redirect.To)
		name, args = redirect.To, nil
	}
}

// help lists the routes usable in the given state.
func (r *router) help(authenticated bool) string {
	uniq := make(map[*route]bool)
	var lines []string
	for _, rt := range r.routes {
		if uniq[rt] {
			continue
		}
		uniq[rt] = true

		if rt.access == accessPublic && authenticated || rt.access == accessProtected && !authenticated {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %-22s %s", rt.usage, rt.summary))
	}
	sort.Strings(lines)
	return "Available commands:\n" + strings.Join(lines, "\n")
}
