package cli

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/dmitrijs2005/aztectemple/internal/client/models"
	"github.com/dmitrijs2005/aztectemple/internal/client/tokenstore"
	"github.com/dmitrijs2005/aztectemple/internal/logging"
)

// syncBuffer lets the watcher goroutine and the test share a log sink.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger(t *testing.T) (logging.Logger, *syncBuffer) {
	t.Helper()
	buf := &syncBuffer{}
	h := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return logging.NewSlogLogger(slog.New(h)), buf
}

type fakeGame struct {
	mu    sync.Mutex
	calls []string

	session  *models.Session
	initErr  error
	initHook func()
	pingErr  error
	pings    int

	lastUsername string
	lastProposal string
}

func (f *fakeGame) call(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeGame) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeGame) Init(context.Context) error {
	f.call("init")
	if f.initHook != nil {
		f.initHook()
	}
	return f.initErr
}

func (f *fakeGame) Login(_ context.Context, username string) error {
	f.call("login")
	f.mu.Lock()
	f.lastUsername = username
	f.session = &models.Session{Username: username}
	f.mu.Unlock()
	return nil
}

func (f *fakeGame) Verify(context.Context) error { f.call("verify"); return nil }

func (f *fakeGame) Propose(_ context.Context, content string) error {
	f.call("propose")
	f.lastProposal = content
	return nil
}

func (f *fakeGame) ShowLeaderboard(context.Context) error { f.call("leaderboard"); return nil }
func (f *fakeGame) HideLeaderboard()                      { f.call("close") }
func (f *fakeGame) RefreshProfile(context.Context) error  { f.call("stats"); return nil }

func (f *fakeGame) Logout(context.Context) error {
	f.call("logout")
	f.mu.Lock()
	f.session = nil
	f.mu.Unlock()
	return nil
}

func (f *fakeGame) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeGame) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

func (f *fakeGame) Session() (models.Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return models.Session{}, false
	}
	return *f.session, true
}

type fakeTokens struct {
	info tokenstore.Info
	err  error
}

func (f *fakeTokens) Info(context.Context) (tokenstore.Info, error) { return f.info, f.err }
