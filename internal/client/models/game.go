// Package models defines the client-side shapes of the game server payloads.
package models

import "time"

// GameStats is the server-owned scoreboard of one player. The client never
// computes these values; it only replaces them with what the server returns.
type GameStats struct {
	Score                  int64 `json:"score"`
	HonkPoints             int64 `json:"honkPoints"`
	VerificationsCompleted int64 `json:"verificationsCompleted"`
	ProposalsSubmitted     int64 `json:"proposalsSubmitted"`
	SlashingEvents         int64 `json:"slashingEvents"`
}

// Session is the authenticated user for the lifetime of the process.
type Session struct {
	Username  string    `json:"username"`
	GameStats GameStats `json:"gameStats"`
	JoinedAt  time.Time `json:"joinedAt"`
}

type LeaderboardEntry struct {
	TwitterUsername string    `json:"twitterUsername"`
	GameStats       GameStats `json:"gameStats"`
}

// Leaderboard lists players in the order decided by the server.
type Leaderboard struct {
	TotalPlayers int                `json:"totalPlayers"`
	Leaderboard  []LeaderboardEntry `json:"leaderboard"`
}
