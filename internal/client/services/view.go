package services

import (
	"fmt"

	"github.com/dmitrijs2005/aztectemple/internal/client/models"
)

type MessageKind string

const (
	KindInfo    MessageKind = "info"
	KindSuccess MessageKind = "success"
	KindError   MessageKind = "error"
)

// Control identifies a user-triggered action that is disabled while it runs.
type Control string

const (
	ControlJoin    Control = "join"
	ControlVerify  Control = "verify"
	ControlPropose Control = "propose"
)

// View renders state changes. Game calls it after every transition and never
// reads anything back, so implementations only draw.
type View interface {
	ShowLogin()
	ShowGame()
	SetStatus(msg string, kind MessageKind)
	AddMessage(msg string, kind MessageKind)
	RenderUser(s models.Session)
	RenderStats(st models.GameStats)
	RenderLeaderboard(lb LeaderboardView)
	HideLeaderboard()
	SetControl(c Control, enabled bool)
}

type LeaderboardRow struct {
	Rank       int
	Marker     string
	Handle     string
	Score      int64
	HonkPoints int64
}

type LeaderboardView struct {
	TotalPlayers int
	Rows         []LeaderboardRow
}

// RankMarker returns the medal for the top three ranks and "#N" otherwise.
func RankMarker(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("#%d", rank)
	}
}

// BuildLeaderboard ranks players in the order the server returned them.
func BuildLeaderboard(lb *models.Leaderboard) LeaderboardView {
	v := LeaderboardView{
		TotalPlayers: lb.TotalPlayers,
		Rows:         make([]LeaderboardRow, 0, len(lb.Leaderboard)),
	}
	for i, p := range lb.Leaderboard {
		rank := i + 1
		v.Rows = append(v.Rows, LeaderboardRow{
			Rank:       rank,
			Marker:     RankMarker(rank),
			Handle:     "@" + p.TwitterUsername,
			Score:      p.GameStats.Score,
			HonkPoints: p.GameStats.HonkPoints,
		})
	}
	return v
}
