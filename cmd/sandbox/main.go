package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sandbox/internal/appinfo"
	"sandbox/internal/config"
	"sandbox/internal/debug"
	"sandbox/internal/ui"
	"sandbox/internal/ui/theme"
	"sandbox/internal/update"
)

// errCheckFailed marks a headless check that ended in Failed. The result has
// already been printed, so main only sets the exit code.
var errCheckFailed = errors.New("update check failed")

// stdoutIsTerminal is swapped in tests.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	debug.Close()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errCheckFailed):
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

// rootOptions mirrors the persistent flags. Only flags the user actually set
// are applied over the loaded configuration.
type rootOptions struct {
	debug          bool
	noColor        bool
	theme          string
	outputFormat   string
	checkOnStartup bool
	updateSource   string
	updateTimeout  time.Duration
	metadataPath   string
	version        bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "sandbox",
		Short:         "A terminal app that checks for its own updates",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.version {
				printVersion(stdout)
				return nil
			}
			return runTUI(stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.BoolVar(&opts.debug, "debug", false, "Write a debug log to ~/.sandbox/debug.log")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colors")
	flags.StringVar(&opts.theme, "theme", "", "UI theme ("+strings.Join(theme.Available(), ", ")+")")
	flags.StringVar(&opts.outputFormat, "output-format", "", "Release notes markdown style (rich, light, plain)")
	flags.BoolVar(&opts.checkOnStartup, "check-on-startup", false, "Check for updates when the UI starts")
	flags.StringVar(&opts.updateSource, "update-source", "", "Update source (github, appcast)")
	flags.DurationVar(&opts.updateTimeout, "update-timeout", 0, "Deadline for a single update check")
	flags.StringVar(&opts.metadataPath, "metadata", "", "Path to an Info.plist with the app metadata")
	root.Flags().BoolVar(&opts.version, "version", false, "Print version information and exit")

	root.AddCommand(newCheckCmd(stdout), newVersionCmd(stdout))
	return root
}

// setup loads configuration, applies explicit flags over it and starts the
// debug log.
func setup(cmd *cobra.Command, opts *rootOptions) error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("initialize config: %w", err)
	}
	if err := config.ApplyOverrides(flagOverrides(cmd, opts)); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}
	if err := debug.Init(opts.debug); err != nil {
		return fmt.Errorf("initialize debug log: %w", err)
	}
	if opts.noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	name := config.GetString(config.KeyTheme)
	if !theme.SetTheme(name) {
		debug.Logf("unknown theme %q, keeping %s", name, theme.CurrentName())
	}
	return nil
}

func flagOverrides(cmd *cobra.Command, opts *rootOptions) map[string]any {
	overrides := map[string]any{}
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("theme") {
		overrides[config.KeyTheme] = strings.TrimSpace(opts.theme)
	}
	if changed("output-format") {
		overrides[config.KeyOutputFormat] = strings.TrimSpace(opts.outputFormat)
	}
	if changed("check-on-startup") {
		overrides[config.KeyUpdateCheckOnStartup] = opts.checkOnStartup
	}
	if changed("update-source") {
		overrides[config.KeyUpdateSource] = strings.TrimSpace(opts.updateSource)
	}
	if changed("update-timeout") {
		overrides[config.KeyUpdateTimeout] = opts.updateTimeout.String()
	}
	if changed("metadata") {
		overrides[config.KeyMetadataPath] = strings.TrimSpace(opts.metadataPath)
	}
	return overrides
}

// loadApp resolves the app metadata and builds the update initiator from the
// current configuration.
func loadApp() (appinfo.Info, *update.Initiator, error) {
	info, err := appinfo.Load(appinfo.Options{
		MetadataPath: config.GetString(config.KeyMetadataPath),
		Fallback: appinfo.Info{
			Name:    appinfo.DefaultName,
			Version: Version,
			Build:   Build,
		},
	})
	if err != nil {
		return appinfo.Info{}, nil, fmt.Errorf("load app metadata: %w", err)
	}
	debug.Logf("app %s %s (build %s) from %s", info.Name, info.Version, info.Build, info.Source)

	source, err := update.NewSource(update.SourceConfig{
		Kind:    config.GetString(config.KeyUpdateSource),
		Owner:   config.GetString(config.KeyUpdateOwner),
		Repo:    config.GetString(config.KeyUpdateRepo),
		APIURL:  config.GetString(config.KeyUpdateAPIURL),
		FeedURL: config.GetString(config.KeyUpdateFeedURL),
	})
	if err != nil {
		return appinfo.Info{}, nil, err
	}

	initiator := update.NewInitiator(source, info.Version,
		update.WithCheckTimeout(config.UpdateTimeout()),
	)
	return info, initiator, nil
}

func runTUI(stderr io.Writer) error {
	if !stdoutIsTerminal() {
		fmt.Fprintln(stderr, "sandbox needs a terminal. Use `sandbox check` for a headless update check.")
		return errors.New("stdout is not a terminal")
	}

	info, initiator, err := loadApp()
	if err != nil {
		return err
	}
	defer initiator.Close()

	appCfg := ui.Config{
		Info:           info,
		Checker:        initiator,
		OutputFormat:   config.GetString(config.KeyOutputFormat),
		CheckOnStartup: config.GetBool(config.KeyUpdateCheckOnStartup),
		InstallMethod:  update.DetectInstallMethod(),
		SaveTheme:      config.SaveTheme,
	}
	return runProgram(appCfg, ui.NewApp, func(app *ui.App) programRunner {
		return tea.NewProgram(app, tea.WithAltScreen())
	})
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

func runProgram(cfg ui.Config, builder func(ui.Config) (*ui.App, error), factory programFactory) error {
	app, err := builder(cfg)
	if err != nil {
		return fmt.Errorf("initialize UI: %w", err)
	}
	if factory == nil {
		return fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}
