package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/aztectemple/internal/client/tokenstore"
)

// Login uses the first argument as the Twitter username, or asks for one.
func (a *App) Login(ctx context.Context, args []string) error {
	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		var err error
		username, err = ask(ctx, a.out, a.input, "Enter your Twitter username")
		if err != nil {
			return err
		}
	}
	return a.game.Login(ctx, username)
}

func (a *App) Verify(ctx context.Context) error {
	return a.game.Verify(ctx)
}

// Propose joins the arguments into the proposal text; empty text is replaced
// with the default proposal by the game.
func (a *App) Propose(ctx context.Context, args []string) error {
	return a.game.Propose(ctx, strings.Join(args, " "))
}

func (a *App) Leaderboard(ctx context.Context) error {
	return a.game.ShowLeaderboard(ctx)
}

func (a *App) CloseLeaderboard(ctx context.Context) error {
	a.game.HideLeaderboard()
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	return a.game.RefreshProfile(ctx)
}

func (a *App) Messages(ctx context.Context) error {
	a.view.PrintMessages()
	return nil
}

// WhoAmI prints the session and what is known locally about the stored token.
// The server is not contacted.
func (a *App) WhoAmI(ctx context.Context) error {
	if s, ok := a.game.Session(); ok {
		fmt.Fprintf(a.out, "Logged in as @%s\n", s.Username)
	} else {
		fmt.Fprintln(a.out, "Not logged in")
	}

	info, err := a.tokens.Info(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Cannot read stored token: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, describeToken(info))
	return nil
}

func describeToken(info tokenstore.Info) string {
	if !info.Present {
		return "No token stored"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Token: %s", info.Format)
	if info.Subject != "" {
		fmt.Fprintf(&b, ", subject %s", info.Subject)
	}
	if !info.SavedAt.IsZero() {
		fmt.Fprintf(&b, ", saved %s", info.SavedAt.UTC().Format(time.RFC3339))
	}
	if !info.ExpiresAt.IsZero() {
		state := "expires"
		if info.Expired {
			state = "expired"
		}
		fmt.Fprintf(&b, ", %s %s", state, info.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return b.String()
}

func (a *App) Logout(ctx context.Context) error {
	return a.game.Logout(ctx)
}
