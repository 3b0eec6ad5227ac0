package cli

import (
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Signup(ctx context.Context) error {
	f.calls = append(f.calls, "signup")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Signin(ctx context.Context) error {
	f.calls = append(f.calls, "signin")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Signout(ctx context.Context) error {
	f.calls = append(f.calls, "signout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Me(ctx context.Context) error    { f.calls = append(f.calls, "me"); return nil }
func (f *fakeExec) Users(ctx context.Context) error { f.calls = append(f.calls, "users"); return nil }
func (f *fakeExec) Permissions(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "permissions")
	f.args = args
	return nil
}
func (f *fakeExec) RequestReset(ctx context.Context) error {
	f.calls = append(f.calls, "request-reset")
	return nil
}
func (f *fakeExec) Reset(ctx context.Context) error {
	f.calls = append(f.calls, "reset")
	return nil
}

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			parts = append(parts, toString(v))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	lines := capturePrintln(t)

	input := strings.Join([]string{
		"help",
		"signin",
		"",
		"me",
		"users",
		"permissions abc ADMIN USER",
		"signout",
		"request-reset",
		"reset",
		"foobar",
		"exit",
		"me",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(input))

	want := []string{"signin", "me", "users", "permissions", "signout", "request-reset", "reset"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
	if strings.Join(exec.args, " ") != "abc ADMIN USER" {
		t.Fatalf("permissions args = %v", exec.args)
	}

	out := strings.Join(*lines, "\n")
	for _, s := range []string{"shop status> ", "Available commands: signup", "Unknown command: foobar", "Bye!"} {
		if !strings.Contains(out, s) {
			t.Fatalf("output missing %q:\n%s", s, out)
		}
	}
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("help\nquit\n"))

	out := strings.Join(*lines, "\n")
	if !strings.Contains(out, "permissions <userId> <LABEL...>") {
		t.Fatalf("signed-in help missing admin commands:\n%s", out)
	}
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("signup"))

	if len(exec.calls) != 1 || exec.calls[0] != "signup" {
		t.Fatalf("calls = %v", exec.calls)
	}
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, rdr("signup\n"))

	if len(exec.calls) != 0 {
		t.Fatalf("expected no calls, got %v", exec.calls)
	}
}
