package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// Test seam.
var printlnFn = func(a ...any) { fmt.Println(a...) }

// execIface lists every REPL command. App implements it; tests swap in
// a recorder.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Whoami(ctx context.Context) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
}

func commandList(loggedIn bool) []string {
	if loggedIn {
		return []string{"help", "whoami", "refresh", "logout", "exit"}
	}
	return []string{"help", "login", "signup", "exit"}
}

func printHelp(loggedIn bool) {
	printlnFn("Available commands:", strings.Join(commandList(loggedIn), ", "))
}

// runREPL reads commands line by line until exit or EOF. The command
// set changes with the session state, so an unknown command in one
// state may be valid in the other.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	printlnFn("Type 'help' to see the list of available commands.")

	for {
		fmt.Printf("%s> ", statusFn())
		if !scanner.Scan() {
			return
		}

		cmd := strings.TrimSpace(scanner.Text())
		if cmd == "" {
			continue
		}

		var err error

		switch cmd {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "help":
			printHelp(a.isLoggedIn())
			continue
		}

		if a.isLoggedIn() {
			switch cmd {
			case "whoami":
				err = a.Whoami(ctx)
			case "refresh":
				err = a.Refresh(ctx)
			case "logout":
				err = a.Logout(ctx)
			default:
				printlnFn("Unknown command:", cmd)
				printHelp(true)
				continue
			}
		} else {
			switch cmd {
			case "login":
				err = a.Login(ctx)
			case "signup":
				err = a.Signup(ctx)
			default:
				printlnFn("Unknown command:", cmd)
				printHelp(false)
				continue
			}
		}

		if err != nil {
			printlnFn("Error:", friendlyError(err))
		}
	}
}
