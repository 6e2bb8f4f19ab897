package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for menu output. In tests, replace it with a stub.
var printlnFn = fmt.Println

const (
	mainMenu = `1) Login
2) Register
3) Recover password (simulated)
4) Exit`

	sessionMenu = `1) Info
2) Edit profile (simulated)
3) Logout`
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Recover(ctx context.Context) error
	Info(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL prints the menu for the current state, reads one choice per line
// from reader and dispatches it to a. Choices are matched by number or by
// name, case-insensitively:
//
//	Logged out:
//	  1 | login
//	  2 | register
//	  3 | recover
//	  4 | exit | quit
//
//	Logged in:
//	  1 | info
//	  2 | edit
//	  3 | logout
//	  exit | quit      logs out, then leaves
//
// Errors returned by handlers are ignored here; handlers report them to the
// user themselves. The loop exits on end of input, on exit, or once ctx is
// cancelled.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for ctx.Err() == nil {
		if a.isLoggedIn() {
			printlnFn(sessionMenu)
		} else {
			printlnFn(mainMenu)
		}
		printlnFn(fmt.Sprintf("hybridauth%s> ", prefixSpace(statusFn())))

		line, readErr := reader.ReadString('\n')
		cmd := strings.ToLower(strings.TrimSpace(line))

		if cmd != "" {
			var done bool
			if a.isLoggedIn() {
				done = dispatchSession(ctx, a, cmd)
			} else {
				done = dispatchMain(ctx, a, cmd)
			}
			if done {
				printlnFn("Bye!")
				return
			}
		}

		if readErr != nil {
			return
		}
	}
}

func dispatchMain(ctx context.Context, a execIface, cmd string) bool {
	switch cmd {
	case "1", "login":
		_ = a.Login(ctx)
	case "2", "register":
		_ = a.Register(ctx)
	case "3", "recover":
		_ = a.Recover(ctx)
	case "4", "exit", "quit":
		return true
	default:
		printlnFn("Unknown option:", cmd)
	}
	return false
}

func dispatchSession(ctx context.Context, a execIface, cmd string) bool {
	switch cmd {
	case "1", "info":
		_ = a.Info(ctx)
	case "2", "edit":
		_ = a.EditProfile(ctx)
	case "3", "logout":
		_ = a.Logout(ctx)
	case "exit", "quit":
		_ = a.Logout(ctx)
		return true
	default:
		printlnFn("Unknown option:", cmd)
	}
	return false
}

func prefixSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}
