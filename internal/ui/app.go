package ui

import (
	"errors"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"sandbox/internal/appinfo"
	"sandbox/internal/debug"
	"sandbox/internal/update"
)

const (
	minViewportWidth  = 20
	minViewportHeight = 5
)

// UpdateChecker is the part of the update initiator the UI talks to.
type UpdateChecker interface {
	CheckForUpdates() bool
	Current() update.Request
	Updates() <-chan update.Request
}

// Config configures the UI application.
type Config struct {
	Info           appinfo.Info
	Checker        UpdateChecker
	OutputFormat   string
	CheckOnStartup bool
	InstallMethod  update.InstallMethod
	// Clipboard writes text to the system clipboard; defaults to atotto/clipboard.
	Clipboard func(string) error
	// SaveTheme persists the chosen theme; nil keeps theme changes in memory.
	SaveTheme func(string) error
	// Now is the clock used for toast countdowns.
	Now func() time.Time
}

// OverlayType identifies which modal, if any, owns the keyboard.
type OverlayType int

const (
	OverlayNone OverlayType = iota
	OverlayMenu
	OverlayHelp
	OverlayAbout
	OverlayNotes
)

// App implements the Bubble Tea model for Sandbox.
type App struct {
	info          appinfo.Info
	checker       UpdateChecker
	outputFormat  string
	checkOnStart  bool
	installMethod update.InstallMethod

	keys       KeyMap
	menu       *Menu
	menuCursor int

	activeOverlay OverlayType
	notes         viewport.Model

	width  int
	height int
	ready  bool

	// lastUpdate is the most recent snapshot from the checker.
	lastUpdate update.Request
	// available is the last UpdateAvailable result; it keeps the release
	// notes and link commands enabled after the toast goes away. An
	// up-to-date result clears it.
	available *update.Request

	toast   *toast
	spinner spinner.Model

	clipboardWrite func(string) error
	saveTheme      func(string) error
	now            func() time.Time
}

// NewApp creates a new UI app instance.
func NewApp(cfg Config) (*App, error) {
	if cfg.Checker == nil {
		return nil, errors.New("ui: update checker is required")
	}
	if strings.TrimSpace(cfg.Info.Name) == "" {
		cfg.Info.Name = appinfo.DefaultName
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = clipboard.WriteAll
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	app := &App{
		info:           cfg.Info,
		checker:        cfg.Checker,
		outputFormat:   cfg.OutputFormat,
		checkOnStart:   cfg.CheckOnStartup,
		installMethod:  cfg.InstallMethod,
		keys:           DefaultKeyMap(),
		menu:           NewMenu(),
		lastUpdate:     cfg.Checker.Current(),
		spinner:        sp,
		clipboardWrite: cfg.Clipboard,
		saveTheme:      cfg.SaveTheme,
		now:            cfg.Now,
	}
	app.menu.MustRegister(defaultCommands(app.info.Name)...)
	return app, nil
}

// Menu exposes the command menu so callers can register extra commands.
func (m *App) Menu() *Menu {
	return m.menu
}

func (m *App) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForUpdate(m.checker.Updates())}
	if m.checkOnStart {
		debug.Log("startup update check requested")
		cmds = append(cmds, m.startUpdateCheck())
	}
	return tea.Batch(cmds...)
}

// updateAvailable reports whether a newer release has been found this session.
func (m *App) updateAvailable() bool {
	return m.available != nil
}

// checking reports whether the checker has a request in flight.
func (m *App) checking() bool {
	return m.checker.Current().Status == update.StatusChecking
}
