package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/handiism/stem-splitter/internal/model"
	"github.com/handiism/stem-splitter/internal/separate"
)

type fakeExecutor struct {
	calls    [][]string
	exitCode int
}

func (f *fakeExecutor) Execute(ctx context.Context, cmd model.Command, streams separate.Streams) (*model.Result, error) {
	f.calls = append(f.calls, cmd.Args)

	if err := ctx.Err(); err != nil {
		return &model.Result{ExitCode: -1}, err
	}
	if f.exitCode != 0 {
		return &model.Result{ExitCode: f.exitCode}, fmt.Errorf("exit status %d", f.exitCode)
	}
	return &model.Result{}, nil
}

// testApp wires an app to buffers and records when the run context is made.
type testApp struct {
	*app
	stdout *bytes.Buffer
	stderr *bytes.Buffer

	// outAtRun is what had been printed when the run context was created;
	// empty when it never was.
	outAtRun  string
	runCtxSet int
}

func newTestApp(stdin string, exec separate.Executor, cancelled bool) *testApp {
	ta := &testApp{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	ta.app = &app{
		stdin:    strings.NewReader(stdin),
		stdout:   ta.stdout,
		stderr:   ta.stderr,
		executor: exec,
		runContext: func() (context.Context, context.CancelFunc) {
			ta.runCtxSet++
			ta.outAtRun = ta.stdout.String()
			ctx, cancel := context.WithCancel(context.Background())
			if cancelled {
				cancel()
			}
			return ctx, cancel
		},
	}
	return ta
}

func musicDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRun(t *testing.T) {
	tests := []struct {
		name      string
		files     []string // nil: folder does not exist
		args      []string
		stdin     string // %[1]s is replaced by the folder
		exitCode  int
		cancelled bool

		wantCode  int
		wantOut   []string
		wantCalls int
		wantRun   bool
	}{
		{
			name:     "invalid folder",
			stdin:    "%[1]s\n1\n",
			wantCode: 1,
			wantOut:  []string{"Invalid folder path."},
		},
		{
			name:     "empty folder",
			files:    []string{},
			stdin:    "%[1]s\n1\n",
			wantCode: 1,
			wantOut:  []string{"No audio files found in the folder."},
		},
		{
			name:      "tool failure",
			files:     []string{"a.mp3"},
			stdin:     "%[1]s\n1\n",
			exitCode:  2,
			wantCode:  1,
			wantOut:   []string{"Running Demucs with the following command:", "An error occurred while running Demucs: ", "exit status 2"},
			wantCalls: 1,
			wantRun:   true,
		},
		{
			name:      "success two stems",
			files:     []string{"a.mp3", "b.wav"},
			stdin:     "  %[1]s  \n2\n",
			wantCode:  0,
			wantOut:   []string{"Found 2 audio file(s)", "--two-stems vocals", "✅ Demucs processing completed.", "Finished in 0s"},
			wantCalls: 1,
			wantRun:   true,
		},
		{
			name:      "invalid choice falls back to four stems",
			files:     []string{"a.flac"},
			stdin:     "%[1]s\n7\n",
			wantCode:  0,
			wantOut:   []string{"⚠️  Invalid choice; defaulting to 4-stems separation."},
			wantCalls: 1,
			wantRun:   true,
		},
		{
			name:      "interrupted while running",
			files:     []string{"a.mp3"},
			stdin:     "%[1]s\n1\n",
			cancelled: true,
			wantCode:  130,
			wantOut:   []string{"Separation cancelled."},
			wantCalls: 1,
			wantRun:   true,
		},
		{
			name:     "input closed at folder prompt",
			files:    []string{"a.mp3"},
			stdin:    "",
			wantCode: 1,
		},
		{
			name:     "input closed at mode prompt",
			files:    []string{"a.mp3"},
			stdin:    "%[1]s\n",
			wantCode: 1,
			wantOut:  []string{"Split options:"},
		},
		{
			name:     "dry run with flags",
			files:    []string{"a.mp3"},
			args:     []string{"-mode", "2", "-dry-run"},
			wantCode: 0,
			wantOut:  []string{"--two-stems vocals", "[Dry run - not running]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			folder := filepath.Join(t.TempDir(), "missing")
			if tt.files != nil {
				folder = musicDir(t, tt.files...)
			}

			args := tt.args
			if tt.args != nil {
				args = append([]string{"-folder", folder}, tt.args...)
			}
			stdin := tt.stdin
			if strings.Contains(stdin, "%[1]s") {
				stdin = fmt.Sprintf(stdin, folder)
			}

			exec := &fakeExecutor{exitCode: tt.exitCode}
			ta := newTestApp(stdin, exec, tt.cancelled)

			if got := ta.run(args); got != tt.wantCode {
				t.Errorf("run() = %d, want %d\nstdout:\n%s\nstderr:\n%s", got, tt.wantCode, ta.stdout, ta.stderr)
			}

			out := ta.stdout.String()
			for _, want := range tt.wantOut {
				if !strings.Contains(out, want) {
					t.Errorf("stdout missing %q:\n%s", want, out)
				}
			}
			if len(exec.calls) != tt.wantCalls {
				t.Errorf("executor called %d times, want %d", len(exec.calls), tt.wantCalls)
			}
			if got := ta.runCtxSet == 1; got != tt.wantRun {
				t.Errorf("run context created %d times, want run=%v", ta.runCtxSet, tt.wantRun)
			}
		})
	}
}

func TestRun_SignalContextOnlyAfterPrompts(t *testing.T) {
	dir := musicDir(t, "a.mp3")
	ta := newTestApp(dir+"\n2\n", &fakeExecutor{}, false)

	if code := ta.run(nil); code != 0 {
		t.Fatalf("run() = %d\n%s", code, ta.stderr)
	}

	// Both questions were asked before signals were caught.
	if !strings.Contains(ta.outAtRun, "Enter the folder path containing audio files: ") ||
		!strings.Contains(ta.outAtRun, "Enter your choice (1 or 2): ") {
		t.Errorf("run context created before the prompts finished; output so far:\n%s", ta.outAtRun)
	}
	if strings.Contains(ta.outAtRun, "Running Demucs") {
		t.Error("run context should be created before the command starts")
	}
}

func TestRun_CommandArgs(t *testing.T) {
	dir := musicDir(t, "a.mp3")
	exec := &fakeExecutor{}
	ta := newTestApp("", exec, false)

	if code := ta.run([]string{"-folder", dir, "-mode", "1", "-program", "/opt/demucs"}); code != 0 {
		t.Fatalf("run() = %d\n%s", code, ta.stderr)
	}

	want := []string{"/opt/demucs", "--out", dir, filepath.Join(dir, "a.mp3")}
	if len(exec.calls) != 1 || strings.Join(exec.calls[0], " ") != strings.Join(want, " ") {
		t.Errorf("calls = %q, want %q", exec.calls, want)
	}
}

func TestRun_Flags(t *testing.T) {
	tests := []struct {
		args     []string
		wantCode int
		wantOut  string
	}{
		{[]string{"-version"}, 0, "stem-splitter " + version},
		{[]string{"-no-such-flag"}, 2, ""},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			ta := newTestApp("", &fakeExecutor{}, false)
			if got := ta.run(tt.args); got != tt.wantCode {
				t.Errorf("run() = %d, want %d", got, tt.wantCode)
			}
			if !strings.Contains(ta.stdout.String(), tt.wantOut) {
				t.Errorf("stdout = %q, want %q", ta.stdout, tt.wantOut)
			}
		})
	}
}
