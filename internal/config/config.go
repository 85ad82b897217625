// Package config loads the editor's JSON configuration.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/stlalpha/vedit/internal/editor"
)

// DefaultPath is used when neither -config nor VEDIT_CONFIG_PATH is set.
const DefaultPath = "configs/editor.json"

// PathEnvVar overrides DefaultPath.
const PathEnvVar = "VEDIT_CONFIG_PATH"

// EditorConfig holds the settings read from editor.json.
type EditorConfig struct {
	DefaultFormat string `json:"defaultFormat"` // ascii, utf16le, utf16be or utf8
	UntitledDir   string `json:"untitledDir"`   // where noname###.txt files go ("" = working dir)
	LogFile       string `json:"logFile"`       // log destination ("" = vedit.log in the user cache dir)
	Debug         bool   `json:"debug"`
	AltScreen     bool   `json:"altScreen"` // preserve the shell scrollback
}

// Defaults returns the configuration used when no file is present.
func Defaults() EditorConfig {
	return EditorConfig{
		DefaultFormat: editor.DefaultFormat.String(),
		AltScreen:     true,
	}
}

// ResolvePath picks the config path: the flag value, then the
// environment, then DefaultPath.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(PathEnvVar); env != "" {
		return env
	}
	return DefaultPath
}

// LoadEditorConfig reads path over the defaults. A missing file is not an
// error; unreadable or invalid files are.
func LoadEditorConfig(path string) (EditorConfig, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("WARN: %s not found. Using default editor settings.", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Defaults(), fmt.Errorf("failed to parse config JSON from %s: %w", path, err)
	}
	if _, err := cfg.Format(); err != nil {
		return Defaults(), fmt.Errorf("invalid config %s: %w", path, err)
	}

	log.Printf("INFO: Loaded editor configuration from %s", path)
	return cfg, nil
}

// Format returns the configured default text format.
func (c EditorConfig) Format() (editor.TextFormat, error) {
	if c.DefaultFormat == "" {
		return editor.DefaultFormat, nil
	}
	return editor.ParseTextFormat(c.DefaultFormat)
}

// LogPath returns where the log should go: LogFile if set, otherwise
// vedit.log in the user cache directory, otherwise the working directory.
func (c EditorConfig) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "vedit", "vedit.log")
	}
	return "vedit.log"
}
