package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// report prints err in a form fit for the prompt and returns it unchanged.
func (a *App) report(err error) error {
	var re *api.ResponseError
	switch {
	case errors.As(err, &re) && re.Message != "":
		fmt.Fprintln(a.out, "Error:", re.Message)
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Error: server unavailable")
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
	return err
}

func (a *App) printUser(u *api.User) {
	fmt.Fprintf(a.out, "%s  %s <%s>  [%s]\n", u.ID, u.Name, u.Email, strings.Join(u.Permissions, ", "))
}

// Signup prompts for email, name and password and creates an account. The
// new account becomes the current session.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return a.report(err)
	}
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return a.report(err)
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	u, err := a.api.Signup(ctx, email, name, password)
	if err != nil {
		return a.report(err)
	}
	a.user = u
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
	return nil
}

// Signin prompts for credentials and starts a session.
func (a *App) Signin(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return a.report(err)
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	u, err := a.api.Signin(ctx, email, password)
	if err != nil {
		return a.report(err)
	}
	a.user = u
	fmt.Fprintf(a.out, "Signed in as %s\n", u.Email)
	return nil
}

// Signout ends the session.
func (a *App) Signout(ctx context.Context) error {
	msg, err := a.api.Signout(ctx)
	if err != nil {
		return a.report(err)
	}
	a.user = nil
	fmt.Fprintln(a.out, msg)
	return nil
}

// Me asks the server who the session belongs to and refreshes the prompt.
func (a *App) Me(ctx context.Context) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		return a.report(err)
	}
	a.user = u
	if u == nil {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	a.printUser(u)
	return nil
}

// Users lists every account.
func (a *App) Users(ctx context.Context) error {
	list, err := a.api.Users(ctx)
	if err != nil {
		return a.report(err)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No users")
		return nil
	}
	for i := range list {
		a.printUser(&list[i])
	}
	return nil
}

// Permissions replaces the labels of a user: permissions <userId> <LABEL...>.
// Labels are upper-cased before sending.
func (a *App) Permissions(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: permissions <userId> <LABEL...>")
		return common.ErrorValidation
	}

	labels := make([]string, 0, len(args)-1)
	for _, l := range args[1:] {
		labels = append(labels, strings.ToUpper(l))
	}

	u, err := a.api.UpdatePermissions(ctx, args[0], labels)
	if err != nil {
		return a.report(err)
	}
	if a.user != nil && a.user.ID == u.ID {
		a.user = u
	}
	a.printUser(u)
	return nil
}

// RequestReset asks the server to mail a reset token.
func (a *App) RequestReset(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return a.report(err)
	}

	msg, err := a.api.RequestReset(ctx, email)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, msg, "Check your inbox for the reset token.")
	return nil
}

// Reset sets a new password with a mailed token and signs in.
func (a *App) Reset(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter reset token", a.out)
	if err != nil {
		return a.report(err)
	}
	password, err := getPassword("Enter new password", a.out)
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword("Confirm new password", a.out)
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(confirm)

	u, err := a.api.ResetPassword(ctx, token, password, confirm)
	if err != nil {
		return a.report(err)
	}
	a.user = u
	fmt.Fprintf(a.out, "Password changed, signed in as %s\n", u.Email)
	return nil
}
