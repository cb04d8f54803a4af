// Package testserver is an in-memory stand-in for the Aztec Temple game API.
// It serves the same endpoints and payloads as the real backend with
// deterministic scoring, records every request, and lets tests force any
// route to fail. cmd/fakeserver exposes it for manual runs.
package testserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/aztectemple/internal/client/models"
	"github.com/dmitrijs2005/aztectemple/internal/common"
)

// Route names accepted by Fail.
const (
	RouteHealth         = "health"
	RouteVerifyUsername = "verify-username"
	RouteProfile        = "profile"
	RouteAttestation    = "verify-attestation"
	RouteProposal       = "submit-proposal"
	RouteLeaderboard    = "leaderboard"
)

// Points awarded per action.
var (
	AttestationReward = models.GameStats{Score: 10, HonkPoints: 5, VerificationsCompleted: 1}
	ProposalReward    = models.GameStats{Score: 25, HonkPoints: 10, ProposalsSubmitted: 1}
)

const maxBody = 64 << 10

// Call is one request as seen by the server.
type Call struct {
	Route         string
	Method        string
	Path          string
	Authorization string
	RequestID     string
	Body          []byte
}

type failure struct {
	status  int
	message string
}

type player struct {
	session models.Session
}

type Server struct {
	mu       sync.Mutex
	players  map[string]*player
	tokens   tokenIssuer
	calls    []Call
	failures map[string]failure
	now      func() time.Time
	router   *mux.Router
}

type Option func(*Server)

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithTokenTTL sets the lifetime of issued session tokens.
func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.tokens.ttl = d }
}

func New(opts ...Option) (*Server, error) {
	s := &Server{
		players:  make(map[string]*player),
		failures: make(map[string]failure),
		now:      time.Now,
		tokens:   tokenIssuer{ttl: DefaultTokenTTL},
	}
	for _, o := range opts {
		o(s)
	}
	s.tokens.now = func() time.Time { return s.now() }
	if err := s.tokens.rotate(); err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Handle("/health", s.route(RouteHealth, s.health)).Methods(http.MethodGet)
	api.Handle("/twitter/verify-username", s.route(RouteVerifyUsername, s.verifyUsername)).Methods(http.MethodPost)
	api.Handle("/game/profile", s.route(RouteProfile, s.authed(s.profile))).Methods(http.MethodGet)
	api.Handle("/game/verify-attestation", s.route(RouteAttestation, s.authed(s.verifyAttestation))).Methods(http.MethodPost)
	api.Handle("/game/submit-proposal", s.route(RouteProposal, s.authed(s.submitProposal))).Methods(http.MethodPost)
	api.Handle("/game/leaderboard", s.route(RouteLeaderboard, s.leaderboard)).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	s.router = r
	return s, nil
}

// Handler serves the API under /api.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Fail makes route answer with status and an {"error": message} body until
// Recover is called.
func (s *Server) Fail(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, message: message}
}

func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Calls returns the recorded requests in arrival order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Routes returns just the route names of Calls.
func (s *Server) Routes() []string {
	calls := s.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Route
	}
	return out
}

// Seed registers a player with the given stats.
func (s *Server) Seed(username string, stats models.GameStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.playerLocked(username)
	p.session.GameStats = stats
}

// Issue returns a valid token for username, registering the player if needed.
func (s *Server) Issue(username string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playerLocked(username)
	return s.tokens.issue(username)
}

// Revoke invalidates every token, as a server restart would.
func (s *Server) Revoke() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens.rotate()
}

func (s *Server) playerLocked(username string) *player {
	p, ok := s.players[username]
	if !ok {
		p = &player{session: models.Session{Username: username, JoinedAt: s.now().UTC()}}
		s.players[username] = p
	}
	return p
}

func (s *Server) route(name string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable body")
			return
		}
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Route:         name,
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get(common.AuthorizationHeader),
			RequestID:     r.Header.Get(common.RequestIDHeader),
			Body:          body,
		})
		f, failing := s.failures[name]
		s.mu.Unlock()

		if failing {
			writeError(w, f.status, f.message)
			return
		}
		next(w, r)
	})
}

func (s *Server) authed(next func(w http.ResponseWriter, r *http.Request, username string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get(common.AuthorizationHeader), "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		s.mu.Lock()
		username, err := s.tokens.username(token)
		_, known := s.players[username]
		s.mu.Unlock()
		if err != nil || !known {
			writeError(w, http.StatusForbidden, "Invalid or expired token")
			return
		}
		next(w, r, username)
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) verifyUsername(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		writeError(w, http.StatusBadRequest, "Twitter username is required")
		return
	}

	token, err := s.Issue(username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cannot issue session")
		return
	}

	s.mu.Lock()
	session := s.players[username].session
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, models.LoginResult{
		Success: true,
		Token:   token,
		User:    &session,
		Message: "Welcome to the Aztec Temple, @" + username + "!",
	})
}

func (s *Server) profile(w http.ResponseWriter, _ *http.Request, username string) {
	s.mu.Lock()
	session := s.players[username].session
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) verifyAttestation(w http.ResponseWriter, r *http.Request, username string) {
	var req models.AttestationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AttestationData == "" {
		writeError(w, http.StatusBadRequest, "attestation data is required")
		return
	}

	stats := s.reward(username, AttestationReward)
	writeJSON(w, http.StatusOK, models.AttestationResult{
		Success:  true,
		Message:  "Attestation verified",
		Honk:     "HONK!",
		NewStats: stats,
	})
}

func (s *Server) submitProposal(w http.ResponseWriter, r *http.Request, username string) {
	var req models.ProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.ProposalContent) == "" {
		writeError(w, http.StatusBadRequest, "proposal content is required")
		return
	}

	stats := s.reward(username, ProposalReward)
	writeJSON(w, http.StatusOK, models.ProposalResult{
		Message:  "Proposal submitted to the council",
		Honk:     "HONK HONK!",
		NewStats: stats,
	})
}

func (s *Server) reward(username string, r models.GameStats) models.GameStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := &s.players[username].session.GameStats
	st.Score += r.Score
	st.HonkPoints += r.HonkPoints
	st.VerificationsCompleted += r.VerificationsCompleted
	st.ProposalsSubmitted += r.ProposalsSubmitted
	st.SlashingEvents += r.SlashingEvents
	return *st
}

// leaderboard orders players by score, then by name for ties.
func (s *Server) leaderboard(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	entries := make([]models.LeaderboardEntry, 0, len(s.players))
	for name, p := range s.players {
		entries = append(entries, models.LeaderboardEntry{TwitterUsername: name, GameStats: p.session.GameStats})
	}
	s.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].GameStats.Score != entries[j].GameStats.Score {
			return entries[i].GameStats.Score > entries[j].GameStats.Score
		}
		return entries[i].TwitterUsername < entries[j].TwitterUsername
	})

	writeJSON(w, http.StatusOK, models.Leaderboard{TotalPlayers: len(entries), Leaderboard: entries})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", common.ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorBody{Error: msg})
}
