package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/artpar/ccol/internal/config"
	"github.com/artpar/ccol/internal/core"
	"github.com/artpar/ccol/internal/history"
	"github.com/artpar/ccol/internal/history/sqlite"
	"github.com/artpar/ccol/internal/logging"
	"github.com/artpar/ccol/internal/logging/events"
	"github.com/artpar/ccol/internal/tui/views"
	"github.com/atotto/clipboard"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when the interactive menu is started without a
// terminal attached.
var ErrNotTerminal = errors.New("ccol needs an interactive terminal; use `ccol get` or `ccol list` instead")

// runtime carries what the commands share: resolved settings and the sinks
// they write to. Tests swap the sinks.
type runtime struct {
	settings config.Settings

	out io.Writer

	environ        func() []string
	writeClipboard func(string) error
	isTerminal     func() bool
	runProgram     func(*views.MainView) (*views.MainView, error)
	openHistory    func(path string) (history.Store, error)
}

func defaultRuntime() *runtime {
	return &runtime{
		out:            color.Output,
		environ:        os.Environ,
		writeClipboard: clipboard.WriteAll,
		isTerminal:     stdioIsTerminal,
		runProgram:     runProgram,
		openHistory:    openSQLiteHistory,
	}
}

type rootFlags struct {
	configFile string
	logFile    string
	trace      bool
	noHistory  bool
}

// NewRootCommand creates the root command.
func NewRootCommand(version string) *cobra.Command {
	return newRootCommand(version, defaultRuntime())
}

func newRootCommand(version string, rt *runtime) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "ccol",
		Short:         "Command Collection - a terminal menu of your shell commands",
		Long:          about(rt.environ()),
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.configure(cmd, flags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.runTUI()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "configuration file (default <config dir>/ccol.json)")
	pf.StringVar(&flags.logFile, "log-file", "", "log file (env "+config.EnvLogFile+")")
	pf.BoolVar(&flags.trace, "trace", false, "write JSON trace events to the log file (env "+config.EnvTrace+")")
	pf.BoolVar(&flags.noHistory, "no-history", false, "do not record selections (env "+config.EnvNoHistory+")")

	cmd.AddCommand(newPathCommand(rt))
	cmd.AddCommand(newListCommand(rt))
	cmd.AddCommand(newGetCommand(rt))
	cmd.AddCommand(newRecentCommand(rt))

	return cmd
}

func about(environ []string) string {
	dir := "unavailable"
	if settings, err := config.SettingsFromEnv(environ); err == nil {
		dir = settings.ConfigDir
	}
	return fmt.Sprintf(`ccol keeps named shell commands in a nested collection and copies the one
you pick to the clipboard. Navigate with the arrow keys or h/j/k/l, press
Enter to open a group or pick a command, q to quit.

Config directory: %s`, dir)
}

// configure resolves settings from the environment and flags and sets up
// logging.
func (rt *runtime) configure(cmd *cobra.Command, flags rootFlags) error {
	settings, err := config.SettingsFromEnv(rt.environ())
	if err != nil {
		return err
	}

	fs := cmd.Flags()
	if fs.Changed("config") {
		settings.ConfigFile = flags.configFile
	}
	if fs.Changed("log-file") {
		settings.LogFile = flags.logFile
	}
	if fs.Changed("trace") {
		settings.Trace = flags.trace
	}
	if fs.Changed("no-history") {
		settings.History = !flags.noHistory
	}
	rt.settings = settings

	logging.Configure(settings.LogFile)
	logging.SetTraceEnabled(settings.Trace)

	payload := make(map[string]interface{}, 8)
	for k, v := range settings.Flags() {
		payload[k] = v
	}
	payload["command"] = cmd.Name()
	events.App.Start(payload)
	return nil
}

// loadCatalog reads the configuration file and builds the catalog.
func loadCatalog(path string) (*core.Catalog, error) {
	raw, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	root, err := core.FromValue(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	catalog, err := core.NewCatalog(root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	events.App.ConfigLoaded(path, catalog.Len())
	return catalog, nil
}

// runTUI starts the interactive menu and delivers the committed selection.
func (rt *runtime) runTUI() error {
	catalog, err := loadCatalog(rt.settings.ConfigFile)
	if err != nil {
		return err
	}

	if !rt.isTerminal() {
		return ErrNotTerminal
	}

	view := views.NewMainView(catalog)
	view.SetEmptyText(fmt.Sprintf("No commands configured. Add some to %s", rt.settings.ConfigFile))

	final, err := rt.runProgram(view)
	if err != nil {
		logging.Error(err)
		return err
	}
	if final == nil || final.Result() == nil {
		return nil
	}

	rt.deliver(*final.Result())
	return nil
}

// tuiModel wraps the MainView for bubbletea
type tuiModel struct {
	view *views.MainView
}

func (m tuiModel) Init() tea.Cmd {
	return m.view.Init()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.view.Update(msg)
	m.view = updated.(*views.MainView)
	return m, cmd
}

func (m tuiModel) View() string {
	return m.view.View()
}

// runProgram runs view in the alternate screen. The program restores the
// terminal on every exit path, panics included.
func runProgram(view *views.MainView) (*views.MainView, error) {
	p := tea.NewProgram(tuiModel{view: view}, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run TUI: %w", err)
	}
	if m, ok := final.(tuiModel); ok {
		return m.view, nil
	}
	return view, nil
}

func stdioIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func openSQLiteHistory(path string) (history.Store, error) {
	return sqlite.New(path)
}
