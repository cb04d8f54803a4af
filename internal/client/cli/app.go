package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/aztectemple/internal/client/client"
	"github.com/dmitrijs2005/aztectemple/internal/client/config"
	"github.com/dmitrijs2005/aztectemple/internal/client/models"
	"github.com/dmitrijs2005/aztectemple/internal/client/services"
	"github.com/dmitrijs2005/aztectemple/internal/client/tokenstore"
	"github.com/dmitrijs2005/aztectemple/internal/filex"
	"github.com/dmitrijs2005/aztectemple/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// pingTimeout bounds a single liveness probe.
const pingTimeout = 3 * time.Second

// gameService is the controller surface the commands drive.
type gameService interface {
	Init(ctx context.Context) error
	Login(ctx context.Context, username string) error
	Verify(ctx context.Context) error
	Propose(ctx context.Context, content string) error
	ShowLeaderboard(ctx context.Context) error
	HideLeaderboard()
	RefreshProfile(ctx context.Context) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Session() (models.Session, bool)
}

type tokenInspector interface {
	Info(ctx context.Context) (tokenstore.Info, error)
}

type App struct {
	config *config.Config
	game   gameService
	tokens tokenInspector
	view   *TerminalView
	log    logging.Logger
	closer io.Closer
	input  *lineSource
	out    io.Writer

	mu   sync.Mutex
	mode Mode
}

// NewApp opens the local store and wires the API client, game controller and
// terminal view together.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if _, err := filex.EnsureParentDir(c.StorePath); err != nil {
		log.Error(ctx, "error preparing store directory", "path", c.StorePath, "error", err)
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.StorePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.StorePath, "error", err)
		return nil, err
	}

	store := tokenstore.New(db)

	api, err := client.NewHTTPClient(ctx, c.ServerBaseURL, store, log, client.WithTimeout(c.RequestTimeout))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	view := NewTerminalView(os.Stdout)
	g := services.NewGame(api, view, log)

	return &App{
		config: c,
		game:   g,
		tokens: store,
		view:   view,
		log:    log,
		closer: db,
		input:  newLineSource(bufio.NewReader(os.Stdin)),
		out:    os.Stdout,
	}, nil
}

// Run initializes the game and then serves the REPL until the user exits,
// input ends or ctx is cancelled. The liveness probe runs alongside the REPL and stops with
// it. A failed initialization prints the diagnostic panel and is returned.
func (a *App) Run(ctx context.Context) error {
	defer a.close(ctx)

	printBanner(a.out)

	if err := a.init(ctx); err != nil {
		a.log.Error(ctx, "initialization failed", "error", err)
		printDiagnostic(a.out, a.config.ServerBaseURL, err)
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	gctx, cancel := context.WithCancel(gctx)

	g.Go(func() error {
		a.StartOnlineStatusWatcher(gctx, a.config.OnlineCheckInterval)
		return nil
	})

	g.Go(func() error {
		defer cancel()
		runREPL(gctx, a, a.getStatus, a.input, a.out, a.log)
		return nil
	})

	return g.Wait()
}

// init runs Game.Init, turning a panic into an error so the diagnostic panel
// is still shown.
func (a *App) init(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during initialization: %v", r)
		}
	}()
	return a.game.Init(ctx)
}

func (a *App) close(ctx context.Context) {
	if a.closer == nil {
		return
	}
	if err := a.closer.Close(); err != nil {
		a.log.Warn(ctx, "error closing store", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.game.Session()
	return ok
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// setMode records the prompt mode. Only an actual change is logged.
func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	prev := a.mode
	a.mode = mode
	a.mu.Unlock()

	if prev != mode {
		a.log.Debug(ctx, "connection mode changed", "from", string(prev), "to", string(mode))
	}
}

// getStatus renders the prompt suffix, e.g. "(@quetzal online)".
func (a *App) getStatus() string {
	s := ""
	if session, ok := a.game.Session(); ok {
		s = "@" + session.Username
	}
	if mode := a.Mode(); mode != ModeUnknown {
		if s != "" {
			s += " "
		}
		s += string(mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// probe runs a single liveness check, logs its outcome and records the
// resulting mode.
func (a *App) probe(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.game.Ping(pctx)
	cancel()

	if err != nil {
		a.log.Warn(ctx, "lost connection to temple", "error", err)
		a.setMode(ctx, ModeOffline)
		return
	}
	a.log.Info(ctx, "connection to temple is strong")
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher probes the server every interval until ctx is
// done. Results are only logged and reflected in the prompt.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}
