package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// UserConfig is the CLI's on-disk configuration: default timeouts and the
// preferred shell `termdrive text`/`termdrive wait` launch when invoked with
// no command after "--". It does not affect library use of pkg/termdrive,
// which takes LaunchOptions/TextOptions explicitly.
type UserConfig struct {
	Shell    ShellConfig    `toml:"shell"`
	Timeouts TimeoutsConfig `toml:"timeouts"`
}

// ShellConfig controls what termdrive launches when no command is given.
type ShellConfig struct {
	// Command is the program to launch (default: $SHELL, falling back to "bash").
	Command string `toml:"command"`
	// Args are appended after Command.
	Args []string `toml:"args"`
}

// TimeoutsConfig holds operation timeouts in milliseconds. Only
// WaitForTextMS is read: the CLI uses it as the --timeout flag's default,
// and zero there means "use the built-in default". TextMS, WaitIdleMS and
// ClickMS are written and loaded but nothing reads them.
type TimeoutsConfig struct {
	TextMS        int `toml:"text_ms"`
	WaitForTextMS int `toml:"wait_for_text_ms"`
	WaitIdleMS    int `toml:"wait_idle_ms"`
	ClickMS       int `toml:"click_ms"`
}

// DefaultConfig returns the built-in configuration used when no config file
// is present or a loaded file omits a section.
func DefaultConfig() *UserConfig {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "bash"
	}
	return &UserConfig{
		Shell: ShellConfig{
			Command: shell,
		},
		Timeouts: TimeoutsConfig{
			TextMS:        int(TextTimeout / time.Millisecond),
			WaitForTextMS: int(WaitForTextTimeout / time.Millisecond),
			WaitIdleMS:    int(WaitIdleTimeout / time.Millisecond),
			ClickMS:       int(ClickTimeout / time.Millisecond),
		},
	}
}

// LoadUserConfig reads the CLI config file, falling back to DefaultConfig
// when no file exists. An existing file with unreadable TOML is an error;
// a missing file is not.
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	// #nosec G304 - configPath is derived from the user's own config directory
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// WriteDefaultConfig writes a commented default config file to GetConfigPath,
// creating parent directories as needed. It does not overwrite an existing
// file.
func WriteDefaultConfig() (string, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o750); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# termdrive configuration\n")
	sb.WriteString("#\n")
	sb.WriteString("# [shell]     what `text`/`wait` launch when no command is given\n")
	sb.WriteString("# [timeouts]  default operation timeouts in milliseconds, 0 = built-in default\n\n")
	sb.Write(data)

	if err := os.WriteFile(configPath, []byte(sb.String()), 0o600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}

// GetConfigPath returns the path to the user's config file, under the OS
// user-config directory, without requiring it to exist.
func GetConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "termdrive", "config.toml"), nil
}
