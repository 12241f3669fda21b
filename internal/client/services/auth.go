package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophsocial/internal/client/client"
	"github.com/dmitrijs2005/gophsocial/internal/client/models"
	"github.com/dmitrijs2005/gophsocial/internal/client/session"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Login and Logout change the session found in ctx; the other calls only
// talk to the API.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (session.UserIdentity, error)
	Register(ctx context.Context, req models.RegisterRequest) error
	Activate(ctx context.Context, token string) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	log    logging.Logger
}

func NewAuthService(c client.Client, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop{}
	}
	return &authService{client: c, log: log}
}

// Login exchanges credentials for a token and signs the session in with it.
func (a *authService) Login(ctx context.Context, email string, password []byte) (session.UserIdentity, error) {
	s, err := session.FromContext(ctx)
	if err != nil {
		return session.UserIdentity{}, err
	}

	creds := models.Credentials{Email: strings.TrimSpace(email), Password: string(password)}
	if err := validateCredentials(creds); err != nil {
		return session.UserIdentity{}, fmt.Errorf("invalid credentials: %w", err)
	}

	token, err := a.client.CreateToken(ctx, creds)
	if err != nil {
		a.logFailure(ctx, "login", err)
		return session.UserIdentity{}, fmt.Errorf("login error: %w", err)
	}

	id, err := s.Login(ctx, token)
	if err != nil {
		return session.UserIdentity{}, fmt.Errorf("login error: %w", err)
	}
	return id, nil
}

// Register validates the sign-up form and creates the account. The account
// stays inactive until Activate is called with the emailed token.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := validateRegistration(req); err != nil {
		return fmt.Errorf("invalid registration: %w", err)
	}

	if err := a.client.RegisterUser(ctx, req); err != nil {
		a.logFailure(ctx, "register", err)
		return fmt.Errorf("register error: %w", err)
	}
	a.log.Info(ctx, "account registered", "username", req.Username)
	return nil
}

func (a *authService) Activate(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("activation token is required")
	}
	if err := a.client.ActivateUser(ctx, token); err != nil {
		a.logFailure(ctx, "activate", err)
		return fmt.Errorf("activation error: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	s, err := session.FromContext(ctx)
	if err != nil {
		return err
	}
	return s.Logout(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Health(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

func (a *authService) logFailure(ctx context.Context, op string, err error) {
	if errors.Is(err, client.ErrUnavailable) {
		a.log.Warn(ctx, op+" failed: server unavailable", "error", err)
		return
	}
	a.log.Info(ctx, op+" rejected", "error", err)
}
