package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = func(args ...any) { fmt.Println(args...) }

// execIface defines the minimal command surface the REPL needs. The
// real App satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Profile(ctx context.Context) error
	Avatar(ctx context.Context, path string) error
	Groups(ctx context.Context) error
	Exercises(ctx context.Context, group string) error
	Exercise(ctx context.Context, id int) error
	History(ctx context.Context) error
}

// runREPL reads a line, parses the first token as the command, and
// dispatches to a. Unknown commands are reported back. The loop exits on
// scanner EOF or when the user types "exit" or "quit".
//
// Command handlers print their own errors; the loop stays focused on
// line handling.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	printlnFn("gymtrack (type 'help' for commands)")

	for {
		fmt.Printf("gym %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, profile, avatar <path>, groups, exercises <group>, exercise <id>, history, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "avatar":
			if len(args) == 0 {
				printlnFn("Usage: avatar <path-to-image>")
				continue
			}
			_ = a.Avatar(ctx, args[0])

		case "groups":
			_ = a.Groups(ctx)

		case "exercises":
			if len(args) == 0 {
				printlnFn("Usage: exercises <group>")
				continue
			}
			_ = a.Exercises(ctx, args[0])

		case "exercise":
			if len(args) == 0 {
				printlnFn("Usage: exercise <id>")
				continue
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				printlnFn("Exercise id must be a number")
				continue
			}
			_ = a.Exercise(ctx, id)

		case "history":
			_ = a.History(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
