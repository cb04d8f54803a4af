package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func lines(s string) *lineSource {
	return newLineSource(rdr(s))
}

func TestAsk(t *testing.T) {
	var out bytes.Buffer
	got, err := ask(context.Background(), &out, lines("  quetzal \n"), "Name?")
	require.NoError(t, err)
	assert.Equal(t, "quetzal", got)
	assert.Equal(t, "Name?: ", out.String())
}

func TestAsk_LastLineWithoutNewline(t *testing.T) {
	got, err := ask(context.Background(), io.Discard, lines("lastline"), "Name?")
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)
}

func TestAsk_EmptyInput(t *testing.T) {
	_, err := ask(context.Background(), io.Discard, lines(""), "Name?")
	assert.ErrorIs(t, err, io.EOF)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestAsk_WriteError(t *testing.T) {
	_, err := ask(context.Background(), failingWriter{}, lines("x\n"), "Name?")
	require.Error(t, err)
}

func TestLineSource_Sequential(t *testing.T) {
	in := lines("login\n\n  propose  more gas \n")
	ctx := context.Background()

	for _, want := range []string{"login", "", "propose  more gas"} {
		got, err := in.next(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := in.next(ctx)
	assert.ErrorIs(t, err, io.EOF)
	_, err = in.next(ctx)
	assert.ErrorIs(t, err, io.EOF, "EOF is sticky")
}

func TestLineSource_StopsWaitingOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	in := newLineSource(bufio.NewReader(pr))

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := in.next(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// A line that arrives later is still delivered to the next caller.
	go func() { _, _ = io.WriteString(pw, "stats\n") }()
	got, err := in.next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stats", got)
}

func TestLineSource_CancelledBeforeRead(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := lines("stats\n").next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
