package config

import (
	"path/filepath"
	"strconv"
	"strings"
)

const (
	EnvConfigPath = "CCOL_CONFIG_PATH"
	EnvConfigFile = "CCOL_CONFIG_FILE"
	EnvLogFile    = "CCOL_LOG_FILE"
	EnvTrace      = "CCOL_TRACE"
	EnvNoHistory  = "CCOL_NO_HISTORY"
)

// Settings captures runtime options resolved from the environment. CLI
// flags override them.
type Settings struct {
	ConfigDir   string
	ConfigFile  string
	HistoryFile string
	History     bool
	LogFile     string
	Trace       bool
}

// SettingsFromEnv resolves settings from an environ slice ("KEY=value").
func SettingsFromEnv(environ []string) (Settings, error) {
	env := parseEnv(environ)

	dir, err := Dir(envOrDefault(env, EnvConfigPath, ""))
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		ConfigDir:   dir,
		ConfigFile:  envOrDefault(env, EnvConfigFile, filepath.Join(dir, FileName)),
		HistoryFile: filepath.Join(dir, HistoryFileName),
		History:     !envOrBool(env, EnvNoHistory, false),
		LogFile:     envOrDefault(env, EnvLogFile, filepath.Join(dir, LogFileName)),
		Trace:       envOrBool(env, EnvTrace, false),
	}, nil
}

// Flags returns the settings as strings for trace payloads.
func (s Settings) Flags() map[string]string {
	return map[string]string{
		"configDir":   s.ConfigDir,
		"configFile":  s.ConfigFile,
		"historyFile": s.HistoryFile,
		"history":     strconv.FormatBool(s.History),
		"logFile":     s.LogFile,
		"trace":       strconv.FormatBool(s.Trace),
	}
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
