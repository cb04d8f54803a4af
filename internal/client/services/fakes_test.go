package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/aztectemple/internal/client/models"
)

// fakeClient implements client.Client and records every call in order.
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	token    string
	clearErr error
	setErr   error

	healthErr error

	loginRes *models.LoginResult
	loginErr error

	profile    *models.Session
	profileErr error

	attestRes *models.AttestationResult
	attestErr error

	proposalRes     *models.ProposalResult
	proposalErr     error
	lastProposal    string
	leaderboard     *models.Leaderboard
	leaderboardErr  error
	lastUsername    string
	clearTokenCalls int
}

func (f *fakeClient) call(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Health(context.Context) error {
	f.call("health")
	return f.healthErr
}

func (f *fakeClient) VerifyUsername(_ context.Context, username string) (*models.LoginResult, error) {
	f.call("verify-username")
	f.lastUsername = username
	return f.loginRes, f.loginErr
}

func (f *fakeClient) GetProfile(context.Context) (*models.Session, error) {
	f.call("profile")
	return f.profile, f.profileErr
}

func (f *fakeClient) VerifyAttestation(context.Context) (*models.AttestationResult, error) {
	f.call("verify-attestation")
	return f.attestRes, f.attestErr
}

func (f *fakeClient) SubmitProposal(_ context.Context, content string) (*models.ProposalResult, error) {
	f.call("submit-proposal")
	f.lastProposal = content
	return f.proposalRes, f.proposalErr
}

func (f *fakeClient) GetLeaderboard(context.Context) (*models.Leaderboard, error) {
	f.call("leaderboard")
	return f.leaderboard, f.leaderboardErr
}

func (f *fakeClient) Token() string { return f.token }

func (f *fakeClient) SetToken(_ context.Context, token string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.token = token
	return nil
}

func (f *fakeClient) ClearToken(context.Context) error {
	f.clearTokenCalls++
	f.token = ""
	return f.clearErr
}

type viewMessage struct {
	Text string
	Kind MessageKind
}

// fakeView records what the game asked it to draw.
type fakeView struct {
	mu sync.Mutex

	screen      string
	statuses    []viewMessage
	messages    []viewMessage
	user        *models.Session
	stats       *models.GameStats
	leaderboard *LeaderboardView
	controls    map[Control]bool
}

func newFakeView() *fakeView {
	return &fakeView{controls: make(map[Control]bool)}
}

func (v *fakeView) ShowLogin() { v.mu.Lock(); v.screen = "login"; v.mu.Unlock() }
func (v *fakeView) ShowGame()  { v.mu.Lock(); v.screen = "game"; v.mu.Unlock() }

func (v *fakeView) SetStatus(msg string, kind MessageKind) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.statuses = append(v.statuses, viewMessage{msg, kind})
}

func (v *fakeView) AddMessage(msg string, kind MessageKind) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.messages = append(v.messages, viewMessage{msg, kind})
}

func (v *fakeView) RenderUser(s models.Session) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.user = &s
}

func (v *fakeView) RenderStats(st models.GameStats) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stats = &st
}

func (v *fakeView) RenderLeaderboard(lb LeaderboardView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.leaderboard = &lb
}

func (v *fakeView) HideLeaderboard() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.leaderboard = nil
}

func (v *fakeView) SetControl(c Control, enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.controls[c] = enabled
}

func (v *fakeView) lastMessage() viewMessage {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.messages) == 0 {
		return viewMessage{}
	}
	return v.messages[len(v.messages)-1]
}

func (v *fakeView) lastStatus() viewMessage {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.statuses) == 0 {
		return viewMessage{}
	}
	return v.statuses[len(v.statuses)-1]
}

func (v *fakeView) currentScreen() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.screen
}

// fakeClock only moves when Advance is called; due timers fire inline.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped && !t.fired
	t.stopped = true
	return was
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.fired && !t.stopped && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}
