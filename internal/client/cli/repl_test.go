package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	err      error
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeExec) Signup(ctx context.Context) error  { return f.record("signup") }
func (f *fakeExec) Login(ctx context.Context) error   { return f.record("login") }
func (f *fakeExec) Whoami(ctx context.Context) error  { return f.record("whoami") }
func (f *fakeExec) Refresh(ctx context.Context) error { return f.record("refresh") }
func (f *fakeExec) Logout(ctx context.Context) error  { return f.record("logout") }

func captureOutput(t *testing.T) *[]string {
	t.Helper()

	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	t.Cleanup(func() { printlnFn = orig })

	return &lines
}

func runScript(t *testing.T, f *fakeExec, script string) {
	t.Helper()
	runREPL(context.Background(), f, func() string { return "" }, bufio.NewScanner(strings.NewReader(script)))
}

func TestREPLAnonymousCommands(t *testing.T) {
	captureOutput(t)

	f := &fakeExec{}
	runScript(t, f, "login\nsignup\nexit\n")

	require.Equal(t, []string{"login", "signup"}, f.calls)
}

func TestREPLAuthenticatedCommands(t *testing.T) {
	captureOutput(t)

	f := &fakeExec{loggedIn: true}
	runScript(t, f, "whoami\nrefresh\nlogout\nexit\n")

	require.Equal(t, []string{"whoami", "refresh", "logout"}, f.calls)
}

func TestREPLCommandsGatedByState(t *testing.T) {
	lines := captureOutput(t)

	// logout makes no sense while anonymous, login none while signed in
	f := &fakeExec{}
	runScript(t, f, "logout\nexit\n")
	require.Empty(t, f.calls)

	f = &fakeExec{loggedIn: true}
	runScript(t, f, "login\nexit\n")
	require.Empty(t, f.calls)

	require.Contains(t, *lines, "Unknown command: logout")
	require.Contains(t, *lines, "Unknown command: login")
}

func TestREPLBlankLinesIgnored(t *testing.T) {
	captureOutput(t)

	f := &fakeExec{}
	runScript(t, f, "\n   \nlogin\nexit\n")

	require.Equal(t, []string{"login"}, f.calls)
}

func TestREPLStopsOnEOF(t *testing.T) {
	captureOutput(t)

	f := &fakeExec{}
	runScript(t, f, "login\n")

	require.Equal(t, []string{"login"}, f.calls)
}

func TestREPLPrintsCommandError(t *testing.T) {
	lines := captureOutput(t)

	f := &fakeExec{err: context.DeadlineExceeded}
	runScript(t, f, "login\nexit\n")

	require.Contains(t, *lines, "Error: context deadline exceeded")
}

func TestREPLHelpMatchesState(t *testing.T) {
	lines := captureOutput(t)

	runScript(t, &fakeExec{}, "help\nexit\n")
	require.Contains(t, *lines, "Available commands: help, login, signup, exit")

	runScript(t, &fakeExec{loggedIn: true}, "help\nexit\n")
	require.Contains(t, *lines, "Available commands: help, whoami, refresh, logout, exit")
}
