package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/client/guard"
	"github.com/dmitrijs2005/gophsocial/internal/client/models"
	"github.com/dmitrijs2005/gophsocial/internal/client/session"
	"github.com/dmitrijs2005/gophsocial/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// login prompts for credentials, signs the session in and opens the feed.
func (a *App) login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", displayName(id)))
	return &guard.Redirect{To: routeFeed}
}

// register collects the sign-up form and sends the user to check-email.
func (a *App) register(ctx context.Context, _ []string) error {
	username, err := getSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	req := models.RegisterRequest{
		Username:        username,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	}
	if err := a.authService.Register(ctx, req); err != nil {
		return err
	}

	printlnFn("Registration successful!")
	return &guard.Redirect{To: routeCheckEmail}
}

func (a *App) checkEmail(context.Context, []string) error {
	printlnFn("Check your email.\n" +
		"A confirmation email has been sent to your inbox. Activate your account with:\n" +
		"  activate <token>\n" +
		"Didn't receive the email? Check your spam folder.")
	return nil
}

func (a *App) activate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("activate <token>")
	}
	if err := a.authService.Activate(ctx, args[0]); err != nil {
		return err
	}
	printlnFn("Your account is active. You can now login.")
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Signed out.")
	return nil
}

func (a *App) whoami(ctx context.Context, _ []string) error {
	s, err := session.FromContext(ctx)
	if err != nil {
		return err
	}
	id, ok := s.Identity()
	if !ok {
		return &guard.Redirect{To: routeLogin}
	}

	printlnFn(fmt.Sprintf("User #%d", id.ID))
	if id.Username != "" {
		printlnFn("Username:", id.Username)
	}
	if id.Email != "" {
		printlnFn("Email:   ", id.Email)
	}
	if !id.ExpiresAt.IsZero() {
		printlnFn("Session expires:", id.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

func displayName(id session.UserIdentity) string {
	if id.Username != "" {
		return id.Username
	}
	if id.Email != "" {
		return id.Email
	}
	return fmt.Sprintf("user #%d", id.ID)
}
