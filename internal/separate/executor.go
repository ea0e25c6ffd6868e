package separate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/handiism/stem-splitter/internal/model"
)

// Streams configures where the child's output goes.
type Streams struct {
	// Stdout and Stderr receive the child's raw output as it is produced.
	// Nil discards it.
	Stdout io.Writer
	Stderr io.Writer

	// OnLine, if set, is called for every complete output line. Carriage
	// returns end a line too, so progress bars arrive one update at a time.
	// It may be called from two goroutines at once.
	OnLine func(line string, stderr bool)

	// TailLines is how many trailing lines to keep in Result.Tail. Zero
	// means the configured default when run through Manager; a negative
	// value disables capture so the child writes to Stdout/Stderr directly.
	TailLines int
}

// Executor runs one external command to completion.
type Executor interface {
	// Execute starts cmd, waits for it and reports how it ended. A non-nil
	// error means it did not exit with status 0; Result is always non-nil.
	Execute(ctx context.Context, cmd model.Command, streams Streams) (*model.Result, error)
}

// ExecExecutor runs commands as child processes via os/exec.
//
// No timeout is applied. Cancelling ctx kills the child.
type ExecExecutor struct{}

// NewExecExecutor creates an ExecExecutor.
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{}
}

// Execute implements Executor.
func (e *ExecExecutor) Execute(ctx context.Context, cmd model.Command, streams Streams) (*model.Result, error) {
	result := &model.Result{ExitCode: -1}
	if len(cmd.Args) == 0 {
		return result, errors.New("empty command")
	}

	tail := newTailBuffer(streams.TailLines)
	c := exec.CommandContext(ctx, cmd.Args[0], cmd.Args[1:]...)
	c.Stdout = streams.writer(streams.Stdout, tail, false)
	c.Stderr = streams.writer(streams.Stderr, tail, true)

	start := time.Now()
	err := c.Run()
	result.Duration = time.Since(start)

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	}

	if lw, ok := c.Stdout.(*lineWriter); ok {
		lw.flush()
	}
	if lw, ok := c.Stderr.(*lineWriter); ok {
		lw.flush()
	}
	result.Tail = tail.lines()

	if err != nil {
		return result, fmt.Errorf("%s: %w", cmd.Program(), err)
	}
	return result, nil
}

// writer returns the destination for one child stream. Plain writers are
// passed straight through so a terminal child keeps its own buffering.
func (s Streams) writer(dst io.Writer, tail *tailBuffer, stderr bool) io.Writer {
	if s.OnLine == nil && tail == nil {
		if dst == nil {
			return io.Discard
		}
		return dst
	}
	return &lineWriter{dst: dst, tail: tail, onLine: s.OnLine, stderr: stderr}
}

// lineWriter forwards bytes to dst and splits them into lines for OnLine and
// the tail buffer.
type lineWriter struct {
	dst    io.Writer
	tail   *tailBuffer
	onLine func(string, bool)
	stderr bool

	buf []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	if w.dst != nil {
		if _, err := w.dst.Write(p); err != nil {
			return 0, err
		}
	}

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexAny(w.buf, "\r\n")
		if i < 0 {
			break
		}
		w.emit(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *lineWriter) flush() {
	if len(w.buf) > 0 {
		w.emit(string(w.buf))
		w.buf = nil
	}
}

func (w *lineWriter) emit(line string) {
	line = strings.TrimRight(line, " \t")
	if line == "" {
		return
	}
	if w.tail != nil {
		w.tail.add(line)
	}
	if w.onLine != nil {
		w.onLine(line, w.stderr)
	}
}

// tailBuffer keeps the last n lines written by either stream.
type tailBuffer struct {
	mu  sync.Mutex
	n   int
	buf []string
}

func newTailBuffer(n int) *tailBuffer {
	if n <= 0 {
		return nil
	}
	return &tailBuffer{n: n}
}

func (t *tailBuffer) add(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf = append(t.buf, line)
	if len(t.buf) > t.n {
		t.buf = t.buf[len(t.buf)-t.n:]
	}
}

func (t *tailBuffer) lines() []string {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]string(nil), t.buf...)
}
