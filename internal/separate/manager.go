package separate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/handiism/stem-splitter/internal/audio"
	"github.com/handiism/stem-splitter/internal/config"
	ioutils "github.com/handiism/stem-splitter/internal/io"
	"github.com/handiism/stem-splitter/internal/model"
)

// ErrCommandFailed wraps any failure of the external separation command:
// a non-zero exit, a start failure or a kill.
var ErrCommandFailed = errors.New("separation command failed")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Manager coordinates a single separation run.
type Manager struct {
	settings  *config.Settings
	executor  Executor
	inspector *audio.Inspector
	playlist  *audio.PlaylistCreator

	request   *model.Request
	startedAt time.Time
	stems     []*model.Stem

	onProgress func(ProgressEvent)
}

// NewManager creates a new Manager.
func NewManager(settings *config.Settings, executor Executor, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		executor:   executor,
		inspector:  audio.NewInspector(settings.MaxConcurrentTag),
		playlist:   audio.NewPlaylistCreator(settings.ToPlaylistFormat(), settings.M3UExtended),
		onProgress: onProgress,
	}
}

// Initialize validates rawFolder and discovers the audio files inside it.
//
// It fails with ioutils.ErrInvalidFolder or ioutils.ErrNoAudioFiles before
// anything is executed.
func (m *Manager) Initialize(ctx context.Context, rawFolder string) error {
	folder, err := ioutils.ResolveFolder(rawFolder)
	if err != nil {
		return err
	}

	files, err := ioutils.DiscoverAudioFiles(folder, m.settings.Extensions)
	if err != nil {
		return fmt.Errorf("%w: %v", ioutils.ErrInvalidFolder, err)
	}
	if len(files) == 0 {
		return ioutils.ErrNoAudioFiles
	}

	if m.settings.InspectTags {
		if err := m.inspector.Inspect(ctx, files); err != nil {
			return err
		}
	}

	m.request = &model.Request{Folder: folder, Files: files}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d audio file(s) in %s", len(files), folder), Level: LevelInfo})
	for _, f := range files {
		m.progress(ProgressEvent{Message: fmt.Sprintf("  %s (%s)", f.Label(), f.Name()), Level: LevelVerbose})
	}

	return nil
}

// Prepare builds the command for modeToken without running it.
// Initialize must have succeeded first.
func (m *Manager) Prepare(modeToken string) (model.Command, error) {
	if m.request == nil {
		return model.Command{}, errors.New("manager not initialized")
	}

	cmd, ok := BuildCommand(m.settings, m.request.Folder, m.request.Paths(), modeToken)
	if !ok {
		m.progress(ProgressEvent{Message: "Invalid choice; defaulting to 4-stems separation.", Level: LevelWarning})
	}

	m.request.ModeToken = modeToken
	return cmd, nil
}

// Start builds the command for modeToken and runs it once, blocking until
// the external tool exits.
//
// On success the stems written under the folder are collected and, if
// enabled, listed in a playlist. Failures of that bookkeeping are reported as
// warnings and do not fail the run.
func (m *Manager) Start(ctx context.Context, modeToken string, streams Streams) (*model.Result, error) {
	cmd, err := m.Prepare(modeToken)
	if err != nil {
		return nil, err
	}

	m.progress(ProgressEvent{Message: "Running Demucs with the following command:", Level: LevelInfo})
	m.progress(ProgressEvent{Message: cmd.String(), Level: LevelInfo})

	if streams.TailLines == 0 {
		streams.TailLines = m.settings.OutputTailLines
	}

	m.startedAt = time.Now()
	result, err := m.executor.Execute(ctx, cmd, streams)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrCommandFailed, err)
	}

	m.progress(ProgressEvent{Message: "Demucs processing completed.", Level: LevelSuccess})
	m.progress(ProgressEvent{Message: fmt.Sprintf("The separated stems have been saved in the folder: %s", m.request.Folder), Level: LevelInfo})

	m.collectStems()

	return result, nil
}

// Request returns the current request, or nil before Initialize.
func (m *Manager) Request() *model.Request {
	return m.request
}

// Stems returns the stems collected after a successful Start.
func (m *Manager) Stems() []*model.Stem {
	return m.stems
}

func (m *Manager) collectStems() {
	if !m.settings.ListStems && !m.settings.CreatePlaylist {
		return
	}

	stems, err := ioutils.CollectStems(m.request.Folder, m.startedAt.Truncate(time.Second), m.settings.Extensions)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error listing stems: %v", err), Level: LevelWarning})
		return
	}
	m.stems = stems

	if m.settings.ListStems {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d stem file(s)", len(stems)), Level: LevelInfo})
		for _, s := range stems {
			m.progress(ProgressEvent{Message: "  " + s.Path, Level: LevelVerbose})
		}
	}

	if m.settings.CreatePlaylist && len(stems) > 0 {
		path := m.settings.PlaylistPath(m.request.Folder)
		content := m.playlist.CreatePlaylist(m.request.Folder, stems)
		if err := ioutils.WriteFile(path, []byte(content)); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		} else {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s", path), Level: LevelSuccess})
		}
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
