package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophsocial/internal/client/client"
	"github.com/dmitrijs2005/gophsocial/internal/client/services"
	"github.com/dmitrijs2005/gophsocial/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	dispatch(ctx context.Context, name string, args []string) error
	help() string
}

// runREPL reads commands from reader until EOF, "exit" or "quit", or until
// ctx is done. The first word is the route name, the rest are its
// arguments. Route errors are reported and never end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("social %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(a.help())

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			if err := a.dispatch(ctx, cmd, args); err != nil {
				reportError(err)
			}
		}
	}
}

// reportError turns a route error into a message for the user.
func reportError(err error) {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, ErrUnknownRoute):
		printlnFn(fmt.Sprintf("%v (type 'help' for commands)", err))
	case errors.Is(err, errUsage):
		printlnFn(err.Error())
	case errors.Is(err, client.ErrUnavailable):
		printlnFn("Server unavailable, try again later.")
	case errors.Is(err, client.ErrUnauthorized):
		printlnFn("Not authorized. If your session has expired, logout and login again.")
	case errors.Is(err, client.ErrNotFound):
		printlnFn("Not found.")
	case errors.Is(err, session.ErrMalformedToken):
		printlnFn("The server returned an unreadable token; you are still signed out.")
	case errors.Is(err, services.ErrSelfFollow):
		printlnFn(err.Error())
	case errors.As(err, &apiErr):
		printlnFn("Request rejected:", apiErr.Message)
	default:
		printlnFn("Error:", err)
	}
}
