package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/aztectemple/internal/client/models"
	"github.com/dmitrijs2005/aztectemple/internal/client/services"
)

func newTestView() (*TerminalView, *bytes.Buffer) {
	var out bytes.Buffer
	v := NewTerminalView(&out)
	v.now = func() time.Time { return time.Date(2026, 10, 18, 9, 30, 15, 0, time.Local) }
	return v, &out
}

func TestTerminalView_MessageLogIsCapped(t *testing.T) {
	v, _ := newTestView()

	for i := 1; i <= 12; i++ {
		v.AddMessage(fmt.Sprintf("msg %d", i), services.KindInfo)
	}

	got := v.Messages()
	require.Len(t, got, maxMessages)
	assert.Equal(t, "[09:30:15] msg 3", got[0], "oldest messages are dropped first")
	assert.Equal(t, "[09:30:15] msg 12", got[9])
}

func TestTerminalView_PrintMessages(t *testing.T) {
	v, out := newTestView()

	v.PrintMessages()
	assert.Contains(t, out.String(), "No messages yet")

	v.AddMessage("hello", services.KindSuccess)
	out.Reset()
	v.PrintMessages()
	assert.Equal(t, "[09:30:15] hello\n", out.String())
}

func TestTerminalView_Screens(t *testing.T) {
	v, out := newTestView()
	assert.Equal(t, ScreenNone, v.Screen())

	v.ShowLogin()
	assert.Equal(t, ScreenLogin, v.Screen())
	assert.Contains(t, out.String(), "login <twitter-username>")

	v.ShowGame()
	assert.Equal(t, ScreenGame, v.Screen())
}

func TestTerminalView_RenderUserAndStats(t *testing.T) {
	v, out := newTestView()

	v.RenderUser(models.Session{Username: "quetzal"})
	v.RenderStats(models.GameStats{Score: 120, HonkPoints: 15, VerificationsCompleted: 3, ProposalsSubmitted: 1})

	text := out.String()
	assert.Contains(t, text, "Welcome, @quetzal! Member since unknown")
	assert.Regexp(t, `Score\s+120`, text)
	assert.Regexp(t, `HONK points\s+15`, text)
	assert.Regexp(t, `Verifications\s+3`, text)
	assert.Regexp(t, `Slashing events\s+0`, text)
}

func TestTerminalView_Leaderboard(t *testing.T) {
	v, out := newTestView()

	v.HideLeaderboard()
	assert.Empty(t, out.String(), "closing a hidden leaderboard prints nothing")

	v.RenderLeaderboard(services.LeaderboardView{
		TotalPlayers: 4,
		Rows: []services.LeaderboardRow{
			{Rank: 1, Marker: "🥇", Handle: "@b", Score: 50, HonkPoints: 5},
			{Rank: 4, Marker: "#4", Handle: "@a", Score: 10, HonkPoints: 1},
		},
	})

	text := out.String()
	assert.Contains(t, text, "4 players")
	assert.Less(t, strings.Index(text, "@b"), strings.Index(text, "@a"), "server order is kept")
	assert.Contains(t, text, "#4")

	v.HideLeaderboard()
	assert.Contains(t, out.String(), "Leaderboard closed")
}

func TestTerminalView_EmptyLeaderboard(t *testing.T) {
	v, out := newTestView()
	v.RenderLeaderboard(services.LeaderboardView{})
	assert.Contains(t, out.String(), "No players yet")
}

func TestTerminalView_Controls(t *testing.T) {
	v, _ := newTestView()

	assert.True(t, v.Enabled(services.ControlVerify))
	v.SetControl(services.ControlVerify, false)
	assert.False(t, v.Enabled(services.ControlVerify))
	v.SetControl(services.ControlVerify, true)
	assert.True(t, v.Enabled(services.ControlVerify))
}

func TestTerminalView_NoColourForPlainWriters(t *testing.T) {
	v, out := newTestView()
	v.SetStatus("Verifying Twitter username...", services.KindInfo)
	assert.Equal(t, "» Verifying Twitter username...\n", out.String())
}

func TestNewTerminalView_TerminalSeams(t *testing.T) {
	origTerm, origSize := isTerminal, getSize
	t.Cleanup(func() { isTerminal, getSize = origTerm, origSize })

	isTerminal = func(int) bool { return true }
	getSize = func(int) (int, int, error) { return 20, 10, nil }

	f, err := os.CreateTemp(t.TempDir(), "tty")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	v := NewTerminalView(f)
	assert.True(t, v.color)
	assert.Equal(t, 20, v.width)
	assert.Equal(t, strings.Repeat("─", 20), v.rule())
}
