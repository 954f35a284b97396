package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_JSON(t *testing.T) {
	t.Run("keeps key order", func(t *testing.T) {
		v, err := Parse([]byte(`{"zeta": "z", "alpha": {"b": "2", "a": "1"}, "mid": "m"}`), FormatJSON)
		require.NoError(t, err)

		obj, ok := v.(*Object)
		require.True(t, ok)
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())

		alpha, _ := obj.Get("alpha")
		assert.Equal(t, []string{"b", "a"}, alpha.(*Object).Keys())
	})

	t.Run("allows comments and trailing commas", func(t *testing.T) {
		data := []byte(`{
			// git helpers
			"git": {"st": "git status",},
			/* shell */
			"q": "exit",
		}`)
		v, err := Parse(data, FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, []string{"git", "q"}, v.(*Object).Keys())
	})

	t.Run("duplicate keys keep first position and last value", func(t *testing.T) {
		v, err := Parse([]byte(`{"a": "1", "b": "2", "a": "3"}`), FormatJSON)
		require.NoError(t, err)
		obj := v.(*Object)
		assert.Equal(t, []string{"a", "b"}, obj.Keys())
		a, _ := obj.Get("a")
		assert.Equal(t, "3", a)
	})

	t.Run("keeps scalar kinds", func(t *testing.T) {
		v, err := Parse([]byte(`{"n": 1, "b": true, "x": null, "l": ["a"]}`), FormatJSON)
		require.NoError(t, err)
		obj := v.(*Object)

		n, _ := obj.Get("n")
		assert.Equal(t, json.Number("1"), n)
		b, _ := obj.Get("b")
		assert.Equal(t, true, b)
		x, ok := obj.Get("x")
		assert.True(t, ok)
		assert.Nil(t, x)
		l, _ := obj.Get("l")
		assert.Equal(t, []any{"a"}, l)
	})

	t.Run("scalar root", func(t *testing.T) {
		v, err := Parse([]byte(`"ls"`), FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, "ls", v)
	})

	t.Run("blank input is an empty object", func(t *testing.T) {
		v, err := Parse([]byte("  \n"), FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, 0, v.(*Object).Len())
	})

	t.Run("corrupt input", func(t *testing.T) {
		_, err := Parse([]byte(`{"a": `), FormatJSON)
		assert.ErrorIs(t, err, ErrCorruptConfig)
	})

	t.Run("trailing garbage", func(t *testing.T) {
		_, err := Parse([]byte(`{"a": "1"} {"b": "2"}`), FormatJSON)
		assert.ErrorIs(t, err, ErrCorruptConfig)
	})
}

func TestParse_YAML(t *testing.T) {
	t.Run("keeps key order", func(t *testing.T) {
		data := []byte("zeta: z\nalpha:\n  b: \"2\"\n  a: \"1\"\nmid: m\n")
		v, err := Parse(data, FormatYAML)
		require.NoError(t, err)

		obj := v.(*Object)
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())
		alpha, _ := obj.Get("alpha")
		assert.Equal(t, []string{"b", "a"}, alpha.(*Object).Keys())
	})

	t.Run("resolves aliases", func(t *testing.T) {
		data := []byte("base: &b\n  ls: ls -la\ncopy: *b\n")
		v, err := Parse(data, FormatYAML)
		require.NoError(t, err)

		copied, _ := v.(*Object).Get("copy")
		ls, _ := copied.(*Object).Get("ls")
		assert.Equal(t, "ls -la", ls)
	})

	t.Run("numbers stay numbers", func(t *testing.T) {
		v, err := Parse([]byte("port: 8080\n"), FormatYAML)
		require.NoError(t, err)
		port, _ := v.(*Object).Get("port")
		assert.Equal(t, 8080, port)
	})

	t.Run("corrupt input", func(t *testing.T) {
		_, err := Parse([]byte("a: [b\n"), FormatYAML)
		assert.ErrorIs(t, err, ErrCorruptConfig)
	})
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFor("/x/ccol.json"))
	assert.Equal(t, FormatYAML, FormatFor("/x/ccol.yaml"))
	assert.Equal(t, FormatYAML, FormatFor("/x/ccol.YML"))
	assert.Equal(t, FormatJSON, FormatFor("/x/ccol"))
	assert.Equal(t, "yaml", FormatYAML.String())
}

func TestLoad(t *testing.T) {
	t.Run("creates missing file with empty mapping", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "ccol.json")

		v, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 0, v.(*Object).Len())

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{}\n", string(content))
	})

	t.Run("reads existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ccol.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"q": "exit"}`), 0644))

		v, err := Load(path)
		require.NoError(t, err)
		q, _ := v.(*Object).Get("q")
		assert.Equal(t, "exit", q)
	})

	t.Run("reads yaml by extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ccol.yaml")
		require.NoError(t, os.WriteFile(path, []byte("q: exit\n"), 0644))

		v, err := Load(path)
		require.NoError(t, err)
		q, _ := v.(*Object).Get("q")
		assert.Equal(t, "exit", q)
	})

	t.Run("reports corrupt file with path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ccol.json")
		require.NoError(t, os.WriteFile(path, []byte(`{oops`), 0644))

		_, err := Load(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCorruptConfig)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("directory in place of file is an io error", func(t *testing.T) {
		path := t.TempDir()

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrConfigIO)
	})
}

func TestDir(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		dir, err := Dir("/tmp/ccol-config")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/ccol-config", dir)
	})

	t.Run("expands home", func(t *testing.T) {
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		dir, err := Dir("~/ccol")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "ccol"), dir)
	})

	t.Run("falls back to user config dir", func(t *testing.T) {
		base, err := os.UserConfigDir()
		require.NoError(t, err)

		dir, err := Dir("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "ccol"), dir)
	})
}

func TestSettingsFromEnv(t *testing.T) {
	t.Run("defaults live in the config dir", func(t *testing.T) {
		s, err := SettingsFromEnv([]string{EnvConfigPath + "=/tmp/c"})
		require.NoError(t, err)

		assert.Equal(t, "/tmp/c", s.ConfigDir)
		assert.Equal(t, filepath.Join("/tmp/c", FileName), s.ConfigFile)
		assert.Equal(t, filepath.Join("/tmp/c", HistoryFileName), s.HistoryFile)
		assert.Equal(t, filepath.Join("/tmp/c", LogFileName), s.LogFile)
		assert.True(t, s.History)
		assert.False(t, s.Trace)
	})

	t.Run("environment overrides", func(t *testing.T) {
		s, err := SettingsFromEnv([]string{
			EnvConfigPath + "=/tmp/c",
			EnvConfigFile + "=/tmp/other.yaml",
			EnvLogFile + "=/tmp/ccol.log",
			EnvTrace + "=true",
			EnvNoHistory + "=1",
			"MALFORMED",
			"",
		})
		require.NoError(t, err)

		assert.Equal(t, "/tmp/other.yaml", s.ConfigFile)
		assert.Equal(t, "/tmp/ccol.log", s.LogFile)
		assert.True(t, s.Trace)
		assert.False(t, s.History)
	})

	t.Run("invalid booleans fall back", func(t *testing.T) {
		s, err := SettingsFromEnv([]string{EnvConfigPath + "=/tmp/c", EnvTrace + "=maybe"})
		require.NoError(t, err)
		assert.False(t, s.Trace)
	})

	t.Run("flags payload", func(t *testing.T) {
		s := Settings{ConfigFile: "/c/ccol.json", Trace: true}
		flags := s.Flags()
		assert.Equal(t, "/c/ccol.json", flags["configFile"])
		assert.Equal(t, "true", flags["trace"])
		assert.Equal(t, "false", flags["history"])
	})
}
