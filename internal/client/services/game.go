package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/aztectemple/internal/client/client"
	"github.com/dmitrijs2005/aztectemple/internal/client/models"
	"github.com/dmitrijs2005/aztectemple/internal/logging"
)

const DefaultProposalContent = "Aztec Temple Proposal"

type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
)

// Game drives the login -> play loop. It owns the session, enforces the
// client-side cooldowns and tells the View what changed. Scores always come
// from the server.
//
// Remote failures are converted into view messages at the call site and
// also returned, so callers may inspect them without having to display them.
type Game struct {
	client      client.Client
	view        View
	log         logging.Logger
	clock       Clock
	cooldowns   Cooldowns
	switchDelay time.Duration

	mu       sync.Mutex
	state    State
	session  *models.Session
	last     map[Action]time.Time
	disabled map[Control]bool
	ready    bool
}

type GameOption func(*Game)

func WithClock(c Clock) GameOption {
	return func(g *Game) { g.clock = c }
}

func WithCooldowns(c Cooldowns) GameOption {
	return func(g *Game) { g.cooldowns = c }
}

func WithSwitchDelay(d time.Duration) GameOption {
	return func(g *Game) { g.switchDelay = d }
}

func NewGame(c client.Client, v View, log logging.Logger, opts ...GameOption) *Game {
	g := &Game{
		client:      c,
		view:        v,
		log:         log.With("component", "game"),
		clock:       realClock{},
		cooldowns:   DefaultCooldowns(),
		switchDelay: DefaultSwitchDelay,
		state:       StateUnauthenticated,
		last:        make(map[Action]time.Time),
		disabled:    make(map[Control]bool),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Init restores a previous session when a token is stored. A token the
// server no longer accepts is cleared and the login view is shown; that is
// not an error. Init marks the game ready for commands on every path.
func (g *Game) Init(ctx context.Context) error {
	g.log.Info(ctx, "initializing game")

	var err error
	if g.client.Token() == "" {
		g.view.ShowLogin()
	} else if perr := g.loadProfile(ctx); perr != nil {
		g.log.Info(ctx, "token expired, showing login", "error", perr)
		g.view.ShowLogin()
		if cerr := g.client.ClearToken(ctx); cerr != nil {
			err = fmt.Errorf("clear expired token: %w", cerr)
		}
	} else {
		g.showGame()
	}

	g.mu.Lock()
	g.ready = true
	g.mu.Unlock()

	return err
}

func (g *Game) loadProfile(ctx context.Context) error {
	profile, err := g.client.GetProfile(ctx)
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.session = &models.Session{
		Username:  profile.Username,
		GameStats: profile.GameStats,
		JoinedAt:  profile.JoinedAt,
	}
	g.state = StateAuthenticated
	g.mu.Unlock()
	return nil
}

// Login checks connectivity, then asks the server to verify username. The
// issued token and session are adopted on success and the game view appears
// after the switch delay.
func (g *Game) Login(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		g.view.SetStatus(ErrValidation.Error(), KindError)
		return ErrValidation
	}

	if !g.disable(ControlJoin) {
		return ErrActionInFlight
	}
	defer g.enable(ControlJoin)

	if err := g.login(ctx, username); err != nil {
		g.log.Warn(ctx, "login failed", "username", username, "error", err)
		g.view.SetStatus(err.Error(), KindError)
		return err
	}
	return nil
}

func (g *Game) login(ctx context.Context, username string) error {
	g.view.SetStatus("Testing connection to game server...", KindInfo)
	if err := g.client.Health(ctx); err != nil {
		return err
	}

	g.view.SetStatus("Verifying Twitter username...", KindInfo)
	res, err := g.client.VerifyUsername(ctx, username)
	if err != nil {
		return err
	}

	if !res.Success || res.Token == "" || res.User == nil {
		msg := res.Message
		if msg == "" {
			msg = "server did not issue a session"
		}
		return fmt.Errorf("%w: %s", ErrLoginRejected, msg)
	}

	if err := g.client.SetToken(ctx, res.Token); err != nil {
		return err
	}

	session := *res.User
	g.mu.Lock()
	g.session = &session
	g.state = StateAuthenticated
	g.mu.Unlock()

	g.log.Info(ctx, "logged in", "username", session.Username)
	g.view.SetStatus(res.Message, KindSuccess)
	g.after(g.switchDelay, "show game", g.showGame)
	return nil
}

func (g *Game) showGame() {
	s, ok := g.Session()
	if !ok {
		return
	}
	g.view.ShowGame()
	g.view.RenderUser(s)
	g.view.RenderStats(s.GameStats)
}

// Verify submits an attestation unless the verification cooldown is running.
func (g *Game) Verify(ctx context.Context) error {
	if err := g.begin(ActionVerification, ControlVerify); err != nil {
		return err
	}
	defer g.enableAfter(ControlVerify, g.cooldowns.Verification)

	res, err := g.client.VerifyAttestation(ctx)
	if err != nil {
		g.log.Warn(ctx, "verification failed", "error", err)
		g.view.AddMessage("Verification failed: "+err.Error(), KindError)
		return err
	}

	stats := g.record(ActionVerification, res.NewStats)

	kind := KindSuccess
	if !res.Success {
		kind = KindError
	}
	g.view.AddMessage(joinMessage(res.Message, res.Honk), kind)
	g.view.RenderStats(stats)
	return nil
}

// Propose submits content (DefaultProposalContent when blank) unless the
// proposal cooldown is running.
func (g *Game) Propose(ctx context.Context, content string) error {
	if err := g.begin(ActionProposal, ControlPropose); err != nil {
		return err
	}
	defer g.enableAfter(ControlPropose, g.cooldowns.Proposal)

	if strings.TrimSpace(content) == "" {
		content = DefaultProposalContent
	}

	res, err := g.client.SubmitProposal(ctx, content)
	if err != nil {
		g.log.Warn(ctx, "proposal failed", "error", err)
		g.view.AddMessage("Proposal failed: "+err.Error(), KindError)
		return err
	}

	stats := g.record(ActionProposal, res.NewStats)
	g.view.AddMessage(joinMessage(res.Message, res.Honk), KindSuccess)
	g.view.RenderStats(stats)
	return nil
}

// begin runs the local checks of an action and disables its control. A
// rejected action produces a message but no network call.
func (g *Game) begin(a Action, c Control) error {
	g.mu.Lock()
	var err error
	switch {
	case g.session == nil:
		err = ErrNotLoggedIn
	default:
		if left := remaining(g.last[a], g.cooldowns.window(a), g.clock.Now()); left > 0 {
			err = &CooldownError{Action: a, Remaining: left}
		} else if g.disabled[c] {
			err = ErrActionInFlight
		} else {
			g.disabled[c] = true
		}
	}
	g.mu.Unlock()

	var cd *CooldownError
	switch {
	case err == nil:
		g.view.SetControl(c, false)
	case errors.As(err, &cd):
		g.view.AddMessage(cd.Error(), KindInfo)
	case errors.Is(err, ErrNotLoggedIn):
		g.view.AddMessage("Log in to the temple first", KindError)
	case errors.Is(err, ErrActionInFlight):
		g.view.AddMessage(fmt.Sprintf("The %s is still in progress", a), KindInfo)
	}
	return err
}

// record replaces the session stats wholesale and starts the cooldown.
func (g *Game) record(a Action, stats models.GameStats) models.GameStats {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.session != nil {
		g.session.GameStats = stats
	}
	g.last[a] = g.clock.Now()
	return stats
}

func (g *Game) disable(c Control) bool {
	g.mu.Lock()
	if g.disabled[c] {
		g.mu.Unlock()
		return false
	}
	g.disabled[c] = true
	g.mu.Unlock()

	g.view.SetControl(c, false)
	return true
}

func (g *Game) enable(c Control) {
	g.mu.Lock()
	delete(g.disabled, c)
	g.mu.Unlock()

	g.view.SetControl(c, true)
}

// enableAfter re-enables c once d has passed, whether or not the action
// succeeded. The timer starts when the action returns.
func (g *Game) enableAfter(c Control, d time.Duration) {
	g.after(d, "enable "+string(c), func() { g.enable(c) })
}

// after runs f on a timer goroutine once d has passed. A panic in f is
// logged as a global error instead of crashing the process.
func (g *Game) after(d time.Duration, name string, f func()) Timer {
	return g.clock.AfterFunc(d, func() {
		defer func() {
			if r := recover(); r != nil {
				g.log.Error(context.Background(), "global error", "timer", name, "panic", r)
			}
		}()
		f()
	})
}

// ShowLeaderboard renders the ranking exactly in server order.
func (g *Game) ShowLeaderboard(ctx context.Context) error {
	lb, err := g.client.GetLeaderboard(ctx)
	if err != nil {
		g.log.Warn(ctx, "leaderboard failed", "error", err)
		g.view.AddMessage("Failed to load leaderboard: "+err.Error(), KindError)
		return err
	}
	g.view.RenderLeaderboard(BuildLeaderboard(lb))
	return nil
}

func (g *Game) HideLeaderboard() {
	g.view.HideLeaderboard()
}

// RefreshProfile reloads the session from the server and redraws it.
func (g *Game) RefreshProfile(ctx context.Context) error {
	if _, ok := g.Session(); !ok {
		g.view.AddMessage("Log in to the temple first", KindError)
		return ErrNotLoggedIn
	}
	if err := g.loadProfile(ctx); err != nil {
		g.view.AddMessage("Failed to load profile: "+err.Error(), KindError)
		return err
	}
	g.showGame()
	return nil
}

// Logout forgets the session locally and removes the stored token. The
// server is not told.
func (g *Game) Logout(ctx context.Context) error {
	err := g.client.ClearToken(ctx)

	g.mu.Lock()
	g.session = nil
	g.state = StateUnauthenticated
	g.mu.Unlock()

	g.view.ShowLogin()
	return err
}

// Ping probes server liveness without touching game state.
func (g *Game) Ping(ctx context.Context) error {
	return g.client.Health(ctx)
}

func (g *Game) Session() (models.Session, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return models.Session{}, false
	}
	return *g.session, true
}

func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Game) Ready() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ready
}

func (g *Game) Enabled(c Control) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.disabled[c]
}

func joinMessage(msg, honk string) string {
	return strings.TrimSpace(msg + " " + honk)
}
