package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/artpar/ccol/internal/config"
	"github.com/artpar/ccol/internal/tui/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleConfig = `{
	// comments are allowed
	"git": {
		"status": "git status",
		"branch": {"delete": "git branch -D "},
	},
	"q": "exit",
}`

// testEnv wires a runtime to a temporary config directory with fake
// clipboard, terminal and program sinks.
type testEnv struct {
	dir string
	rt  *runtime

	out       *bytes.Buffer
	clipboard []string
	clipErr   error
	terminal  bool
	keys      []tea.Msg
	ran       bool
}

func newTestEnv(t *testing.T, configBody string) *testEnv {
	t.Helper()

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	dir := t.TempDir()
	if configBody != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(configBody), 0o644))
	}

	env := &testEnv{dir: dir, out: &bytes.Buffer{}, terminal: true}
	rt := defaultRuntime()
	rt.out = env.out
	rt.environ = func() []string {
		return []string{config.EnvConfigPath + "=" + dir}
	}
	rt.writeClipboard = func(s string) error {
		if env.clipErr != nil {
			return env.clipErr
		}
		env.clipboard = append(env.clipboard, s)
		return nil
	}
	rt.isTerminal = func() bool { return env.terminal }
	rt.runProgram = func(view *views.MainView) (*views.MainView, error) {
		env.ran = true
		return drive(view, env.keys...), nil
	}
	env.rt = rt
	return env
}

// drive feeds msgs to view the way the program loop would, stopping at quit.
func drive(view *views.MainView, msgs ...tea.Msg) *views.MainView {
	view.SetSize(80, 24)
	for _, msg := range msgs {
		for msg != nil {
			updated, cmd := view.Update(msg)
			view = updated.(*views.MainView)
			if cmd == nil {
				break
			}
			msg = cmd()
			if _, ok := msg.(tea.QuitMsg); ok {
				return view
			}
		}
	}
	return view
}

func (e *testEnv) command(args ...string) *cobra.Command {
	cmd := newRootCommand("1.0.0", e.rt)
	cmd.SetOut(e.out)
	cmd.SetErr(e.out)
	cmd.SetArgs(args)
	return cmd
}

func (e *testEnv) execute(args ...string) error {
	return e.command(args...).Execute()
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	keyEdit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestNewRootCommand(t *testing.T) {
	t.Run("creates root command", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		assert.Equal(t, "ccol", cmd.Use)
		assert.Equal(t, "1.0.0", cmd.Version)
		assert.Contains(t, cmd.Long, "Config directory:")
	})

	t.Run("has persistent flags", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		for _, name := range []string{"config", "log-file", "trace", "no-history"} {
			assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
		}
		assert.Equal(t, "c", cmd.PersistentFlags().Lookup("config").Shorthand)
	})

	t.Run("has subcommands", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		for _, name := range []string{"path", "list", "get", "recent"} {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		}
	})

	t.Run("about names the config directory", func(t *testing.T) {
		env := newTestEnv(t, "")
		cmd := env.command()
		assert.Contains(t, cmd.Long, "Config directory: "+env.dir)
	})
}

func TestRootCommandSettings(t *testing.T) {
	t.Run("environment decides defaults", func(t *testing.T) {
		env := newTestEnv(t, exampleConfig)
		require.NoError(t, env.execute("path"))

		assert.Equal(t, env.dir, env.rt.settings.ConfigDir)
		assert.Equal(t, filepath.Join(env.dir, config.FileName), env.rt.settings.ConfigFile)
		assert.True(t, env.rt.settings.History)
		assert.False(t, env.rt.settings.Trace)
	})

	t.Run("flags override the environment", func(t *testing.T) {
		env := newTestEnv(t, "")
		other := filepath.Join(t.TempDir(), "other.yaml")
		logFile := filepath.Join(env.dir, "logs", "trace.log")

		require.NoError(t, env.execute("--config", other, "--log-file", logFile, "--trace", "--no-history", "path"))

		assert.Equal(t, other, env.rt.settings.ConfigFile)
		assert.Equal(t, logFile, env.rt.settings.LogFile)
		assert.True(t, env.rt.settings.Trace)
		assert.False(t, env.rt.settings.History)
	})
}

func TestRootCommandTUI(t *testing.T) {
	t.Run("commits a leaf and copies it", func(t *testing.T) {
		env := newTestEnv(t, exampleConfig)
		env.keys = []tea.Msg{keyDown, keyDown, keyEnter}

		require.NoError(t, env.execute("--no-history"))

		assert.True(t, env.ran)
		assert.Equal(t, []string{"exit"}, env.clipboard)
		output := env.out.String()
		assert.Contains(t, output, copiedMessage)
		assert.Contains(t, output, "\n\nq\n\nexit\n\n")
	})

	t.Run("commits a nested leaf", func(t *testing.T) {
		env := newTestEnv(t, exampleConfig)
		env.keys = []tea.Msg{keyDown, keyRight, keyDown, keyEnter}

		require.NoError(t, env.execute("--no-history"))

		assert.Equal(t, []string{"git status"}, env.clipboard)
		assert.Contains(t, env.out.String(), "status")
	})

	t.Run("quit without selection prints nothing", func(t *testing.T) {
		env := newTestEnv(t, exampleConfig)
		env.keys = []tea.Msg{keyDown, keyEdit, keyEsc, keyQuit}

		require.NoError(t, env.execute("--no-history"))

		assert.True(t, env.ran)
		assert.Empty(t, env.clipboard)
		assert.Empty(t, env.out.String())
	})

	t.Run("clipboard failure is reported", func(t *testing.T) {
		env := newTestEnv(t, exampleConfig)
		env.clipErr = errors.New("no clipboard utility")
		env.keys = []tea.Msg{keyDown, keyDown, keyEnter}

		require.NoError(t, env.execute("--no-history"))

		assert.Contains(t, env.out.String(), notCopiedMessage)
		assert.Contains(t, env.out.String(), "exit")
	})

	t.Run("invalid config fails before the terminal is used", func(t *testing.T) {
		env := newTestEnv(t, `{"a": 1}`)

		err := env.execute()
		require.Error(t, err)
		assert.False(t, env.ran)
	})

	t.Run("corrupt config fails", func(t *testing.T) {
		env := newTestEnv(t, `{"a": `)

		err := env.execute()
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrCorruptConfig)
		assert.False(t, env.ran)
	})

	t.Run("missing config is created empty", func(t *testing.T) {
		env := newTestEnv(t, "")
		env.keys = []tea.Msg{keyQuit}

		require.NoError(t, env.execute())

		data, err := os.ReadFile(filepath.Join(env.dir, config.FileName))
		require.NoError(t, err)
		assert.Equal(t, "{}", strings.TrimSpace(string(data)))
		assert.True(t, env.ran)
	})

	t.Run("refuses to run without a terminal", func(t *testing.T) {
		env := newTestEnv(t, exampleConfig)
		env.terminal = false

		err := env.execute()
		assert.ErrorIs(t, err, ErrNotTerminal)
		assert.False(t, env.ran)
	})

	t.Run("rejects arguments", func(t *testing.T) {
		env := newTestEnv(t, exampleConfig)
		assert.Error(t, env.execute("git"))
		assert.False(t, env.ran)
	})

	t.Run("program errors are returned", func(t *testing.T) {
		env := newTestEnv(t, exampleConfig)
		env.rt.runProgram = func(*views.MainView) (*views.MainView, error) {
			return nil, errors.New("tty lost")
		}

		err := env.execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tty lost")
	})
}

func TestPathCommand(t *testing.T) {
	t.Run("prints the config file", func(t *testing.T) {
		env := newTestEnv(t, "")
		require.NoError(t, env.execute("path"))
		assert.Equal(t, filepath.Join(env.dir, config.FileName)+"\n", env.out.String())
	})

	t.Run("prints the config directory", func(t *testing.T) {
		env := newTestEnv(t, "")
		require.NoError(t, env.execute("path", "--dir"))
		assert.Equal(t, env.dir+"\n", env.out.String())
	})
}
