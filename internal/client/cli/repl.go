package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/aztectemple/internal/logging"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Verify(ctx context.Context) error
	Propose(ctx context.Context, args []string) error
	Leaderboard(ctx context.Context) error
	CloseLeaderboard(ctx context.Context) error
	Stats(ctx context.Context) error
	Messages(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the temple CLI.
//
// It reads a line from in, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF, when ctx is done
// (Ctrl-C), or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help                show available commands
//	  - leaderboard | lb    show the leaderboard
//	  - close               hide the leaderboard
//	  - messages            replay recent game messages
//	  - whoami              show the session and stored token
//	  - exit | quit         leave the program
//
//	Not logged in:
//	  - login [username]    verify a Twitter username and enter the temple
//
//	Logged in:
//	  - verify              submit an attestation
//	  - propose [text]      submit a governance proposal
//	  - stats               refresh the profile from the server
//	  - logout              forget the session
//
// Errors from handlers have already been reported through the view, so they
// are only logged here. A panicking handler is recovered and logged; the loop
// keeps running.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *lineSource, w io.Writer, log logging.Logger) {
	for {
		if ctx.Err() != nil {
			fmt.Fprintln(w)
			return
		}
		fmt.Fprintf(w, "temple %s> ", statusFn())

		line, err := in.next(ctx)
		if err != nil {
			switch {
			case ctx.Err() != nil:
				log.Info(ctx, "interrupted, leaving the temple")
			case !errors.Is(err, io.EOF):
				log.Error(ctx, "error reading input", "error", err)
			}
			fmt.Fprintln(w)
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
				fmt.Fprintln(w, "Available commands: verify, propose [text], leaderboard, close, stats, messages, whoami, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login [username], leaderboard, close, messages, whoami, exit")
			}

		case "login":
			dispatch(ctx, log, cmd, func() error { return a.Login(ctx, args) })

		case "verify":
			dispatch(ctx, log, cmd, func() error { return a.Verify(ctx) })

		case "propose":
			dispatch(ctx, log, cmd, func() error { return a.Propose(ctx, args) })

		case "leaderboard", "lb":
			dispatch(ctx, log, cmd, func() error { return a.Leaderboard(ctx) })

		case "close":
			dispatch(ctx, log, cmd, func() error { return a.CloseLeaderboard(ctx) })

		case "stats":
			dispatch(ctx, log, cmd, func() error { return a.Stats(ctx) })

		case "messages":
			dispatch(ctx, log, cmd, func() error { return a.Messages(ctx) })

		case "whoami":
			dispatch(ctx, log, cmd, func() error { return a.WhoAmI(ctx) })

		case "logout":
			dispatch(ctx, log, cmd, func() error { return a.Logout(ctx) })

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}

func dispatch(ctx context.Context, log logging.Logger, cmd string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(ctx, "global error", "command", cmd, "panic", r)
		}
	}()

	if err := fn(); err != nil {
		log.Debug(ctx, "command failed", "command", cmd, "error", err)
	}
}
