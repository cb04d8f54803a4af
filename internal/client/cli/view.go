package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"github.com/dmitrijs2005/aztectemple/internal/client/models"
	"github.com/dmitrijs2005/aztectemple/internal/client/services"
)

// maxMessages bounds the in-game message log; the oldest entry is dropped first.
const maxMessages = 10

const defaultWidth = 80

// Test seams for terminal detection.
var (
	isTerminal = term.IsTerminal
	getSize    = term.GetSize
)

const (
	ansiReset = "\033[0m"
	ansiCyan  = "\033[36m"
	ansiGreen = "\033[32m"
	ansiRed   = "\033[31m"
	ansiGold  = "\033[33m"
)

// Screen is the currently visible view.
type Screen string

const (
	ScreenNone  Screen = ""
	ScreenLogin Screen = "login"
	ScreenGame  Screen = "game"
)

// TerminalView renders game state as lines of text. It is safe for concurrent
// use: timers fired by the game call into it from their own goroutines.
type TerminalView struct {
	mu       sync.Mutex
	w        io.Writer
	color    bool
	width    int
	now      func() time.Time
	screen   Screen
	messages []string
	controls map[services.Control]bool
	board    bool
}

// NewTerminalView writes to w. Colour is enabled only when w is a terminal,
// and the terminal width bounds the horizontal rules.
func NewTerminalView(w io.Writer) *TerminalView {
	v := &TerminalView{
		w:        w,
		width:    defaultWidth,
		now:      time.Now,
		controls: make(map[services.Control]bool),
	}
	if f, ok := w.(*os.File); ok {
		fd := int(f.Fd())
		if isTerminal(fd) {
			v.color = true
			if width, _, err := getSize(fd); err == nil && width > 0 {
				v.width = width
			}
		}
	}
	return v
}

func (v *TerminalView) paint(kind services.MessageKind, s string) string {
	if !v.color {
		return s
	}
	var code string
	switch kind {
	case services.KindSuccess:
		code = ansiGreen
	case services.KindError:
		code = ansiRed
	default:
		code = ansiCyan
	}
	return code + s + ansiReset
}

func (v *TerminalView) rule() string {
	n := v.width
	if n > 48 {
		n = 48
	}
	return strings.Repeat("─", n)
}

func (v *TerminalView) println(a ...any) {
	fmt.Fprintln(v.w, a...)
}

func (v *TerminalView) ShowLogin() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.screen = ScreenLogin
	v.println("🏺 Enter the temple: login <twitter-username>")
}

func (v *TerminalView) ShowGame() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.screen = ScreenGame
	v.println(v.rule())
	v.println("🦅 The temple is open. Commands: verify, propose [text], leaderboard, stats, logout")
}

func (v *TerminalView) SetStatus(msg string, kind services.MessageKind) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.println(v.paint(kind, "» "+msg))
}

func (v *TerminalView) AddMessage(msg string, kind services.MessageKind) {
	v.mu.Lock()
	defer v.mu.Unlock()

	line := fmt.Sprintf("[%s] %s", v.now().Format("15:04:05"), msg)
	v.messages = append(v.messages, v.paint(kind, line))
	if len(v.messages) > maxMessages {
		v.messages = v.messages[len(v.messages)-maxMessages:]
	}
	v.println(v.paint(kind, line))
}

// Messages returns the retained message log, newest last.
func (v *TerminalView) Messages() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, len(v.messages))
	copy(out, v.messages)
	return out
}

// PrintMessages replays the retained message log.
func (v *TerminalView) PrintMessages() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.messages) == 0 {
		v.println("No messages yet")
		return
	}
	for _, m := range v.messages {
		v.println(m)
	}
}

func (v *TerminalView) RenderUser(s models.Session) {
	v.mu.Lock()
	defer v.mu.Unlock()

	joined := "unknown"
	if !s.JoinedAt.IsZero() {
		joined = s.JoinedAt.Local().Format("Jan 2, 2006")
	}
	v.println(fmt.Sprintf("Welcome, @%s! Member since %s", s.Username, joined))
}

func (v *TerminalView) RenderStats(st models.GameStats) {
	v.mu.Lock()
	defer v.mu.Unlock()

	tw := tabwriter.NewWriter(v.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Score\t%d\n", st.Score)
	fmt.Fprintf(tw, "HONK points\t%d\n", st.HonkPoints)
	fmt.Fprintf(tw, "Verifications\t%d\n", st.VerificationsCompleted)
	fmt.Fprintf(tw, "Proposals\t%d\n", st.ProposalsSubmitted)
	fmt.Fprintf(tw, "Slashing events\t%d\n", st.SlashingEvents)
	_ = tw.Flush()
}

func (v *TerminalView) RenderLeaderboard(lb services.LeaderboardView) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.board = true
	v.println(v.rule())
	v.println(fmt.Sprintf("🏆 Temple leaderboard (%d players)", lb.TotalPlayers))
	if len(lb.Rows) == 0 {
		v.println("No players yet")
		v.println(v.rule())
		return
	}

	tw := tabwriter.NewWriter(v.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tPLAYER\tSCORE\tHONK")
	for _, r := range lb.Rows {
		marker := r.Marker
		if v.color && r.Rank <= 3 {
			marker = ansiGold + marker + ansiReset
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", marker, r.Handle, r.Score, r.HonkPoints)
	}
	_ = tw.Flush()
	v.println(v.rule())
}

func (v *TerminalView) HideLeaderboard() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.board {
		return
	}
	v.board = false
	v.println("Leaderboard closed")
}

func (v *TerminalView) SetControl(c services.Control, enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.controls[c] = enabled
}

// Screen reports which view was shown last.
func (v *TerminalView) Screen() Screen {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.screen
}

// Enabled reports the last state set for c; controls never touched are enabled.
func (v *TerminalView) Enabled(c services.Control) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	enabled, ok := v.controls[c]
	return !ok || enabled
}
