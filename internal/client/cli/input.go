package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

type lineResult struct {
	line string
	err  error
}

// lineSource hands out input lines read by a single background goroutine, so
// a caller blocked on input can give up when its context ends. Every consumer
// of the same input must go through one lineSource.
type lineSource struct {
	reader *bufio.Reader
	once   sync.Once
	ch     chan lineResult
	err    error
}

func newLineSource(reader *bufio.Reader) *lineSource {
	return &lineSource{reader: reader, ch: make(chan lineResult)}
}

func (s *lineSource) start() {
	go func() {
		for {
			line, err := readLine(s.reader)
			s.ch <- lineResult{line: line, err: err}
			if err != nil {
				return
			}
		}
	}()
}

// next returns the next line, or ctx.Err() once ctx is done. It is not safe
// for concurrent use. After a read error every call returns that error.
func (s *lineSource) next(ctx context.Context) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.once.Do(s.start)

	select {
	case r := <-s.ch:
		if r.err != nil {
			s.err = r.err
		}
		return r.line, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// ask writes question to w as "question: " and returns the trimmed answer.
func ask(ctx context.Context, w io.Writer, in *lineSource, question string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", question); err != nil {
		return "", err
	}
	return in.next(ctx)
}

// readLine returns the next line without surrounding whitespace. A last line
// with no trailing newline still counts; io.EOF means nothing was left.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
