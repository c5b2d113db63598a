package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mlevkov/authgate/internal/client/gateway"
	"github.com/mlevkov/authgate/internal/client/services"
	"github.com/mlevkov/authgate/internal/common"
)

// Test seams for the prompt helpers.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// friendlyError maps controller errors to the single-line messages the
// REPL prints. Validation and server rejection messages pass through;
// transport failures collapse into one generic line so the prompt never
// leaks connection details.
func friendlyError(err error) string {
	var rej *gateway.RejectedError

	switch {
	case errors.Is(err, services.ErrValidation):
		return err.Error()
	case errors.Is(err, services.ErrBusy):
		return "another request is already in progress"
	case errors.As(err, &rej):
		return rej.Message
	case errors.Is(err, gateway.ErrTransport):
		return "authentication failed, please try again"
	default:
		return err.Error()
	}
}

func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, os.Stdout, "Username or email")
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.controller.Login(ctx, identifier, string(password)); err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", a.controller.Identity().Username))
	return nil
}

func (a *App) Signup(ctx context.Context) error {
	username, err := getSimpleText(a.reader, os.Stdout, "Username")
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, os.Stdout, "Email")
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.controller.Signup(ctx, username, email, string(password)); err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Account created. Welcome, %s!", a.controller.Identity().Username))
	return nil
}

// Whoami reports the cached identity without a network round trip.
func (a *App) Whoami(ctx context.Context) error {
	identity := a.controller.Identity()
	if identity == nil {
		printlnFn("Not signed in.")
		return nil
	}

	printlnFn(fmt.Sprintf("Signed in as %s (user id %d)", identity.Username, identity.UserID))
	return nil
}

// Refresh re-verifies the stored session against the server.
func (a *App) Refresh(ctx context.Context) error {
	a.controller.Verify(ctx)

	if a.controller.State() == services.StateAuthenticated {
		printlnFn("Session is valid.")
	} else {
		printlnFn("Session could not be verified, signing out shortly.")
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.controller.Logout(ctx)
	printlnFn("Signed out.")
	return nil
}
