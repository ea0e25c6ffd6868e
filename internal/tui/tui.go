// Package tui provides a Bubble Tea terminal user interface for stem-splitter.
package tui

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/stem-splitter/internal/config"
	ioutils "github.com/handiism/stem-splitter/internal/io"
	"github.com/handiism/stem-splitter/internal/model"
	"github.com/handiism/stem-splitter/internal/separate"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

const (
	maxLogs       = 10
	maxOutput     = 8
	maxFilesShown = 12
)

// State represents the current UI state.
type State int

const (
	StateFolder State = iota
	StateScanning
	StateMode
	StateRunning
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   separate.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	executor  separate.Executor
	logs      []LogEntry
	output    []string
	err       error

	// Run context
	ctx    context.Context
	cancel context.CancelFunc
	events chan tea.Msg

	manager *separate.Manager
	files   []*model.AudioFile
	percent float64
	stems   int
	result  *model.Result

	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model that runs the configured separation program.
func NewModel(settings *config.Settings) Model {
	return newModel(settings, separate.NewExecExecutor())
}

func newModel(settings *config.Settings, executor separate.Executor) Model {
	ti := textinput.New()
	ti.Placeholder = "/path/to/music"
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateFolder,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		executor:  executor,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		events:    make(chan tea.Msg, 256),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries a manager progress event.
	ProgressMsg struct {
		Event separate.ProgressEvent
	}

	// OutputMsg carries one line printed by the separation program.
	OutputMsg struct {
		Line string
	}

	// InitDoneMsg is sent when folder validation and discovery finish.
	InitDoneMsg struct {
		Manager *separate.Manager
		Files   []*model.AudioFile
		Err     error
	}

	// RunDoneMsg is sent when the separation program exits.
	RunDoneMsg struct {
		Result *model.Result
		Stems  int
		Err    error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StateFolder, StateMode:
				m.cancel()
				return m, tea.Quit
			case StateScanning, StateRunning:
				m.cancel()
			}

		case "enter":
			switch m.state {
			case StateFolder:
				if strings.TrimSpace(m.textInput.Value()) != "" {
					m.state = StateScanning
					return m, tea.Batch(m.initialize(m.textInput.Value()), m.waitForEvent(), m.spinner.Tick)
				}
			case StateMode:
				token := strings.TrimSpace(m.textInput.Value())
				m.state = StateRunning
				m.textInput.Blur()
				return m, tea.Batch(m.startRun(token), m.spinner.Tick)
			}

		case "tab":
			if m.state == StateFolder {
				m.verbose = !m.verbose
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				return m.reset(), textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Event.Level != separate.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
			if len(m.logs) > maxLogs {
				m.logs = m.logs[len(m.logs)-maxLogs:]
			}
		}
		cmds = append(cmds, m.waitForEvent())

	case OutputMsg:
		if p, ok := parsePercent(msg.Line); ok {
			m.percent = p
			cmds = append(cmds, m.progress.SetPercent(p))
		} else {
			m.output = append(m.output, msg.Line)
			if len(m.output) > maxOutput {
				m.output = m.output[len(m.output)-maxOutput:]
			}
		}
		cmds = append(cmds, m.waitForEvent())

	case InitDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.manager = msg.Manager
			m.files = msg.Files
			m.state = StateMode
			m.textInput.Reset()
			m.textInput.Placeholder = model.TokenFourStems + " or " + model.TokenTwoStems
			m.textInput.CharLimit = 16
		}

	case RunDoneMsg:
		m.stems = msg.Stems
		m.result = msg.Result
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errors.New("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
			m.percent = 1
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateFolder || m.state == StateMode {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// reset prepares the model for another folder.
func (m Model) reset() Model {
	m.cancel()
	m.state = StateFolder
	m.logs = nil
	m.output = nil
	m.err = nil
	m.manager = nil
	m.files = nil
	m.percent = 0
	m.stems = 0
	m.result = nil
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.events = make(chan tea.Msg, 256)
	m.textInput.Reset()
	m.textInput.Placeholder = "/path/to/music"
	m.textInput.CharLimit = 1024
	m.textInput.Focus()
	return m
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎚  Stem Splitter"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Separate songs into stems with " + m.settings.Program))
	b.WriteString("\n\n")

	switch m.state {
	case StateFolder:
		b.WriteString(m.viewFolder())
	case StateScanning:
		b.WriteString(m.spinner.View() + " " + subtitleStyle.Render("Scanning folder..."))
		b.WriteString("\n")
	case StateMode:
		b.WriteString(m.viewMode())
	case StateRunning:
		b.WriteString(m.viewRunning())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewFolder() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter the folder path containing audio files:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}
	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Verbose output (tab)\n", verboseCheck))
	b.WriteString(dimStyle.Render("Extensions: " + strings.Join(m.settings.Extensions, " ")))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewMode() string {
	var b strings.Builder

	b.WriteString(successStyle.Render(fmt.Sprintf("Found %d audio file(s):", len(m.files))))
	b.WriteString("\n")
	for i, f := range m.files {
		if i == maxFilesShown {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  … and %d more", len(m.files)-maxFilesShown)))
			b.WriteString("\n")
			break
		}
		b.WriteString(fileStyle.Render("  ♪ " + f.Label()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(subtitleStyle.Render("Split options:"))
	b.WriteString("\n")
	for _, mode := range model.Modes() {
		b.WriteString(fmt.Sprintf("  %s. %s\n", mode.Token(), mode))
	}
	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Separating..."))
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(m.percent))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())
	if len(m.output) > 0 {
		b.WriteString("\n")
		for _, line := range m.output {
			b.WriteString(dimStyle.Render("  " + line))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	folder := ""
	mode := model.DefaultMode
	if m.manager != nil && m.manager.Request() != nil {
		req := m.manager.Request()
		folder = req.Folder
		if parsed, ok := model.ParseMode(req.ModeToken); ok {
			mode = parsed
		}
	}

	var elapsed time.Duration
	if m.result != nil {
		elapsed = m.result.Duration.Round(time.Second)
	}

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Separation complete!\n\n"+
			"Mode: %s\n"+
			"Inputs: %d\n"+
			"Stems: %d\n"+
			"Time: %s\n"+
			"Folder: %s",
		mode,
		len(m.files),
		m.stems,
		elapsed,
		folder,
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", describeError(m.err)))
		b.WriteString("\n")
	}

	// The executor's tail holds the last lines of the failed run, including
	// progress bar lines the live view consumed.
	output := m.output
	if m.result != nil && len(m.result.Tail) > 0 {
		output = m.result.Tail
	}
	if len(output) > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Last output:"))
		b.WriteString("\n")
		for _, line := range output {
			b.WriteString(dimStyle.Render("  " + line))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case separate.LevelError:
			style = errorStyle
			prefix = "✗"
		case separate.LevelWarning:
			style = warningStyle
			prefix = "!"
		case separate.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case separate.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateFolder:
		return "enter: scan folder • tab: verbose • esc: quit"
	case StateMode:
		return "enter: start • esc: quit"
	case StateScanning, StateRunning:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: another folder • q: quit"
	}
	return ""
}

// describeError maps pipeline errors to the messages the CLI prints.
func describeError(err error) string {
	switch {
	case errors.Is(err, ioutils.ErrInvalidFolder):
		return "Invalid folder path."
	case errors.Is(err, ioutils.ErrNoAudioFiles):
		return "No audio files found in the folder."
	case errors.Is(err, separate.ErrCommandFailed):
		return "An error occurred while running Demucs: " + err.Error()
	default:
		return err.Error()
	}
}

// sender returns a function delivering messages to events until ctx is done.
func sender(ctx context.Context, events chan<- tea.Msg) func(tea.Msg) {
	return func(msg tea.Msg) {
		select {
		case events <- msg:
		case <-ctx.Done():
		}
	}
}

// waitForEvent returns a command that delivers the next queued event.
func (m Model) waitForEvent() tea.Cmd {
	ctx, events := m.ctx, m.events
	return func() tea.Msg {
		select {
		case msg := <-events:
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}

// initialize validates the folder and discovers audio files in background.
func (m Model) initialize(folder string) tea.Cmd {
	ctx, executor, settings := m.ctx, m.executor, m.settings
	send := sender(m.ctx, m.events)
	return func() tea.Msg {
		manager := separate.NewManager(settings, executor, func(event separate.ProgressEvent) {
			send(ProgressMsg{Event: event})
		})

		if err := manager.Initialize(ctx, folder); err != nil {
			return InitDoneMsg{Err: err}
		}

		return InitDoneMsg{
			Manager: manager,
			Files:   manager.Request().Files,
		}
	}
}

// startRun runs the separation program in background.
func (m Model) startRun(token string) tea.Cmd {
	ctx, manager, events := m.ctx, m.manager, m.events
	return func() tea.Msg {
		if manager == nil {
			return RunDoneMsg{Err: errors.New("no folder scanned")}
		}

		streams := separate.Streams{
			OnLine: func(line string, _ bool) {
				// Output lines are best effort; drop them rather than stall the child.
				select {
				case events <- OutputMsg{Line: line}:
				default:
				}
			},
		}

		result, err := manager.Start(ctx, token, streams)
		return RunDoneMsg{Result: result, Stems: len(manager.Stems()), Err: err}
	}
}

var percentPattern = regexp.MustCompile(`(\d{1,3})%\|`)

// parsePercent extracts the completion ratio from a progress bar line such
// as " 42%|████      | 12.0/28.5 [00:10<00:14]".
func parsePercent(line string) (float64, bool) {
	match := percentPattern.FindStringSubmatch(line)
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil || n > 100 {
		return 0, false
	}
	return float64(n) / 100, true
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	m := NewModel(settings)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
