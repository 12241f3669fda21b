package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/client/client"
	"github.com/dmitrijs2005/gophsocial/internal/client/config"
	"github.com/dmitrijs2005/gophsocial/internal/client/directory"
	"github.com/dmitrijs2005/gophsocial/internal/client/services"
	"github.com/dmitrijs2005/gophsocial/internal/client/session"
	"github.com/dmitrijs2005/gophsocial/internal/client/tokenstore"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config        *config.Config
	log           logging.Logger
	store         tokenstore.Store
	session       *session.Session
	authService   services.AuthService
	socialService services.SocialService
	pager         *directory.Pager
	router        *router

	reader *bufio.Reader
	out    io.Writer

	mu   sync.RWMutex
	mode Mode
}

// NewApp wires the token store, API client, services and routes for cfg.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	store, err := tokenstore.Open(ctx, tokenstore.Backend(cfg.TokenBackend), cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening token store: %w", err)
	}

	apiClient, err := client.NewHTTPClient(cfg.APIBaseURL, store,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log.With("component", "api")),
	)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	a := &App{
		config:        cfg,
		log:           log,
		store:         store,
		session:       session.New(store, session.NewDecoder(), log.With("component", "session")),
		authService:   services.NewAuthService(apiClient, log),
		socialService: services.NewSocialService(apiClient, log),
		pager:         directory.New(apiClient, cfg.PageSize, log.With("component", "directory")),
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
	}
	a.router = a.routes()
	return a, nil
}

// Run provides the session, starts the online watcher and blocks in the
// REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close(ctx)

	ctx, release, err := session.Provide(ctx, a.session)
	if err != nil {
		return err
	}
	defer release()

	watchCtx, stop := context.WithCancel(ctx)
	defer stop()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	printlnFn("Welcome to gophsocial (type 'help' for commands)")
	if id, ok := a.session.Identity(); ok {
		printlnFn(fmt.Sprintf("Signed in as %s.", displayName(id)))
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// Close releases the API client and the token store.
func (a *App) Close(ctx context.Context) {
	if a.authService != nil {
		if err := a.authService.Close(ctx); err != nil {
			a.log.Warn(ctx, "closing api client", "error", err)
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn(ctx, "closing token store", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session != nil && a.session.IsAuthenticated()
}

func (a *App) dispatch(ctx context.Context, name string, args []string) error {
	return a.router.dispatch(ctx, name, args)
}

func (a *App) help() string {
	return a.router.help(a.isLoggedIn())
}

func (a *App) getMode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "switched mode", "mode", mode)
	}
}

// getStatus renders the prompt status, e.g. "(alice online)".
func (a *App) getStatus() string {
	s := ""
	if a.session != nil {
		if id, ok := a.session.Identity(); ok {
			s = displayName(id) + " "
		}
	}
	if m := a.getMode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher pings the API right away and then every interval
// until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		a.checkOnline(ctx)

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, a.pingTimeout())
	defer cancel()

	err := a.authService.Ping(ctx)
	switch {
	case err == nil:
		a.setMode(ModeOnline)
	case errors.Is(err, context.Canceled):
	default:
		a.setMode(ModeOffline)
	}
}

func (a *App) pingTimeout() time.Duration {
	if a.config != nil && a.config.RequestTimeout > 0 && a.config.RequestTimeout < 3*time.Second {
		return a.config.RequestTimeout
	}
	return 3 * time.Second
}
