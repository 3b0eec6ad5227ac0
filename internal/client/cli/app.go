package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/config"
)

// storefrontAPI is the part of api.Client the commands use.
type storefrontAPI interface {
	Signup(ctx context.Context, email, name string, password []byte) (*api.User, error)
	Signin(ctx context.Context, email string, password []byte) (*api.User, error)
	Signout(ctx context.Context) (string, error)
	Me(ctx context.Context) (*api.User, error)
	Users(ctx context.Context) ([]api.User, error)
	UpdatePermissions(ctx context.Context, userID string, permissions []string) (*api.User, error)
	RequestReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token string, password, confirm []byte) (*api.User, error)
}

type App struct {
	config *config.Config
	api    storefrontAPI
	user   *api.User
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	client, err := api.NewClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{config: c, api: client, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

// Run greets the user, picks up an existing session if the server reports
// one and enters the REPL.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to the storefront CLI (type 'help' for commands)")
	printlnFn("Server:", a.config.ServerURL)
	_ = a.Me(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) getStatus() string {
	if a.user == nil {
		return "(anonymous)"
	}
	return fmt.Sprintf("(%s)", a.user.Email)
}
