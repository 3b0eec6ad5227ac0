package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Signin(ctx context.Context) error
	Signout(ctx context.Context) error
	Me(ctx context.Context) error
	Users(ctx context.Context) error
	Permissions(ctx context.Context, args []string) error
	RequestReset(ctx context.Context) error
	Reset(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF, on "exit" or "quit", or when ctx is done.
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Anonymous:
//	  - help            show available commands
//	  - signup          create an account
//	  - signin          sign in
//	  - request-reset   mail a password reset token
//	  - reset           set a new password with a reset token
//	  - me              ask the server who you are
//	  - exit | quit     leave the program
//
//	Signed in, additionally:
//	  - signout
//	  - users                          list accounts
//	  - permissions <id> <LABEL...>    replace a user's permissions
//
// Errors returned by command handlers are ignored here; handlers print
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("shop %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: me, users, permissions <userId> <LABEL...>, signout, request-reset, reset, exit")
			} else {
				printlnFn("Available commands: signup, signin, me, request-reset, reset, exit")
			}

		case "signup":
			_ = a.Signup(ctx)

		case "signin", "login":
			_ = a.Signin(ctx)

		case "signout", "logout":
			_ = a.Signout(ctx)

		case "me":
			_ = a.Me(ctx)

		case "users":
			_ = a.Users(ctx)

		case "permissions":
			_ = a.Permissions(ctx, args)

		case "request-reset":
			_ = a.RequestReset(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
