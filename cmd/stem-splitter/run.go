package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/handiism/stem-splitter/internal/config"
	ioutils "github.com/handiism/stem-splitter/internal/io"
	"github.com/handiism/stem-splitter/internal/prompt"
	"github.com/handiism/stem-splitter/internal/separate"
)

// Exit codes
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

type app struct {
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	executor separate.Executor

	// runContext returns the context the separation command runs under.
	runContext func() (context.Context, context.CancelFunc)
}

func (a *app) run(args []string) int {
	fs := flag.NewFlagSet("stem-splitter", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	// Command line flags
	var (
		folderFlag   = fs.String("folder", "", "Folder containing audio files (prompted when empty)")
		modeFlag     = fs.String("mode", "", "Split mode: 1 = 4 stems, 2 = vocals/accompaniment (prompted when unset)")
		configFlag   = fs.String("config", "", "Path to config file (.json, .yaml or .yml)")
		programFlag  = fs.String("program", "", "Separation program to run (overrides config)")
		playlistFlag = fs.Bool("playlist", false, "Write a playlist of the produced stems into the folder")
		verboseFlag  = fs.Bool("verbose", false, "Show verbose output")
		dryRunFlag   = fs.Bool("dry-run", false, "Print the command without running it")
		versionFlag  = fs.Bool("version", false, "Print version and exit")
	)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if *versionFlag {
		fmt.Fprintln(a.stdout, "stem-splitter "+version)
		return exitOK
	}

	modeSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "mode" {
			modeSet = true
		}
	})

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(a.stderr, "Error loading config: %v\n", err)
			return exitFailure
		}
	}

	// Apply flags
	if *programFlag != "" {
		settings.Program = *programFlag
	}
	if *playlistFlag {
		settings.CreatePlaylist = true
	}

	manager := separate.NewManager(settings, a.executor, func(event separate.ProgressEvent) {
		if event.Level == separate.LevelVerbose && !*verboseFlag {
			return
		}

		var prefix string
		switch event.Level {
		case separate.LevelError:
			prefix = "❌ "
		case separate.LevelWarning:
			prefix = "⚠️  "
		case separate.LevelSuccess:
			prefix = "✅ "
		}

		fmt.Fprintln(a.stdout, prefix+event.Message)
	})

	p := prompt.New(a.stdin, a.stdout)

	folder := *folderFlag
	if folder == "" {
		var err error
		if folder, err = p.Folder(); err != nil {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
			return exitFailure
		}
	}

	if err := manager.Initialize(context.Background(), folder); err != nil {
		switch {
		case errors.Is(err, ioutils.ErrInvalidFolder):
			fmt.Fprintln(a.stdout, "Invalid folder path.")
			if *verboseFlag {
				fmt.Fprintln(a.stderr, err)
			}
		case errors.Is(err, ioutils.ErrNoAudioFiles):
			fmt.Fprintln(a.stdout, "No audio files found in the folder.")
		default:
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
		}
		return exitFailure
	}

	mode := *modeFlag
	if !modeSet {
		var err error
		if mode, err = p.Mode(); err != nil {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
			return exitFailure
		}
	}

	if *dryRunFlag {
		cmd, err := manager.Prepare(mode)
		if err != nil {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
			return exitFailure
		}
		fmt.Fprintln(a.stdout)
		fmt.Fprintln(a.stdout, cmd.String())
		fmt.Fprintln(a.stdout, "\n[Dry run - not running]")
		return exitOK
	}

	fmt.Fprintln(a.stdout)

	ctx, stop := a.runContext()
	defer stop()

	// Negative TailLines keeps the child attached to the terminal directly,
	// so its output has already been seen when it fails.
	streams := separate.Streams{Stdout: a.stdout, Stderr: a.stderr, TailLines: -1}
	result, err := manager.Start(ctx, mode, streams)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(a.stdout, "\nSeparation cancelled.")
			return exitInterrupted
		}
		fmt.Fprintf(a.stdout, "An error occurred while running Demucs: %v\n", err)
		if result != nil {
			for _, line := range result.Tail {
				fmt.Fprintln(a.stdout, "  "+line)
			}
		}
		return exitFailure
	}

	fmt.Fprintf(a.stdout, "Finished in %s\n", result.Duration.Round(time.Second))
	return exitOK
}
