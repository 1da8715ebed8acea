package cli

import (
	"context"
	"errors"
	"os"

	"github.com/wroger/gymtrack/internal/client/api"
	"github.com/wroger/gymtrack/internal/common"
)

// genericErrorMessage is shown for transport-level failures; server
// internals never reach the user.
const genericErrorMessage = "Something went wrong. Please try again."

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to the interactive input helpers.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// friendlyError renders an error for the terminal: application errors
// verbatim, transport errors as the generic fallback, local validation
// errors by their own message.
func friendlyError(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage(genericErrorMessage)
	}
	return err.Error()
}

// Register prompts for account details and creates the account. The
// user still signs in afterwards.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter e-mail", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.sessions.SignUp(ctx, name, email, string(password)); err != nil {
		printlnFn(friendlyError(err))
		return err
	}

	printlnFn("Account created. You can now log in.")
	return nil
}

// Login prompts for credentials and establishes a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter e-mail", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.sessions.SignIn(ctx, email, string(password)); err != nil {
		printlnFn(friendlyError(err))
		return err
	}

	if user, ok := a.sessions.Current(); ok {
		printlnFn("Welcome, " + user.Name + "!")
	}
	return nil
}

// Logout destroys the session locally.
func (a *App) Logout(ctx context.Context) error {
	a.sessions.SignOut(ctx)
	printlnFn("Logged out.")
	return nil
}

// Whoami prints the current session.
func (a *App) Whoami(ctx context.Context) error {
	user, ok := a.sessions.Current()
	if !ok {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn("Name:  " + user.Name)
	printlnFn("Email: " + user.Email)
	if user.Avatar != "" {
		printlnFn("Avatar: " + user.Avatar)
	}
	return nil
}
