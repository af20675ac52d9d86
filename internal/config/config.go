// Package config loads projects' JSONC configuration files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
	"go.uber.org/zap/zapcore"

	"github.com/calvinalkan/projects/internal/project"
)

// Error variables for configuration loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrDateLayoutEmpty    = errors.New("date_layout cannot be empty")
	ErrPromptEmpty        = errors.New("prompt cannot be empty")
	ErrInvalidIDScheme    = errors.New("invalid id_scheme (must be counter or short)")
	ErrInvalidLogLevel    = errors.New("invalid log_level")
	ErrKeyEmpty           = errors.New("key binding cannot be empty")
	ErrKeyConflict        = errors.New("key bound twice")
)

// HistoryOff disables the REPL history file.
const HistoryOff = "off"

// Config holds all configuration options.
type Config struct {
	IDScheme    string `json:"id_scheme"`
	IDPrefix    string `json:"id_prefix"`
	DateLayout  string `json:"date_layout"`
	Prompt      string `json:"prompt"`
	HistoryFile string `json:"history_file,omitempty"`
	LogFile     string `json:"log_file,omitempty"`
	LogLevel    string `json:"log_level"`
	Keys        Keys   `json:"keys"`

	// Resolved paths (computed, not serialized)
	EffectiveCwd string `json:"-"`

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Keys are the TUI key bindings, in bubbletea key notation.
type Keys struct {
	Add     string `json:"add"`
	Edit    string `json:"edit"`
	Delete  string `json:"delete"`
	Confirm string `json:"confirm"`
	Cancel  string `json:"cancel"`
	Up      string `json:"up"`
	Down    string `json:"down"`
	Quit    string `json:"quit"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		IDScheme:   project.SchemeCounter,
		IDPrefix:   "P",
		DateLayout: project.DefaultDateLayout,
		Prompt:     "projects> ",
		LogLevel:   "info",
		Keys: Keys{
			Add:     "a",
			Edit:    "e",
			Delete:  "d",
			Confirm: "y",
			Cancel:  "n",
			Up:      "k",
			Down:    "j",
			Quit:    "q",
		},
	}
}

// FileName is the default project config file name.
const FileName = ".projects.json"

// globalPath returns $XDG_CONFIG_HOME/projects/config.json, falling back to
// ~/.config/projects/config.json. Empty if neither variable is set.
func globalPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "projects", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "projects", "config.json")
	}

	return ""
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	Env             map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config
// 3. Project config file (.projects.json in the work dir, if it exists)
// 4. Explicit config file via ConfigPath (replaces 3).
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default()

	globalCfg, globalFile, err := loadGlobal(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalFile
	cfg = merge(cfg, globalCfg)

	projectCfg, projectFile, err := loadProject(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectFile
	cfg = merge(cfg, projectCfg)

	validateErr := Validate(cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	cfg.EffectiveCwd = workDir

	if cfg.LogFile != "" && !filepath.IsAbs(cfg.LogFile) {
		cfg.LogFile = filepath.Join(workDir, cfg.LogFile)
	}

	return cfg, nil
}

func loadGlobal(env map[string]string) (Config, string, error) {
	path := globalPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadFile(path, false)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return cfg, path, nil
}

func loadProject(workDir, configPath string) (Config, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		_, statErr := os.Stat(cfgFile)
		if statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		cfgFile = filepath.Join(workDir, FileName)
	}

	cfg, loaded, err := loadFile(cfgFile, mustExist)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return cfg, cfgFile, nil
}

// loadFile loads a config file. If mustExist is false, missing files return
// a zero config and loaded=false.
func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, parseErr := Parse(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, true, nil
}

// requiredFields may not be set to "" explicitly in a file.
var requiredFields = map[string]error{
	"date_layout": ErrDateLayoutEmpty,
	"prompt":      ErrPromptEmpty,
}

// Parse decodes a JSONC document. Fields absent from the document stay zero
// so that merging keeps the lower-precedence value.
func Parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	for field, fieldErr := range requiredFields {
		if val, exists := raw[field]; exists {
			if str, ok := val.(string); ok && str == "" {
				return Config{}, fieldErr
			}
		}
	}

	if keys, ok := raw["keys"].(map[string]any); ok {
		for name, val := range keys {
			if str, ok := val.(string); ok && str == "" {
				return Config{}, fmt.Errorf("%w: keys.%s", ErrKeyEmpty, name)
			}
		}
	}

	return cfg, nil
}

func merge(base, overlay Config) Config {
	setIf := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	setIf(&base.IDScheme, overlay.IDScheme)
	setIf(&base.IDPrefix, overlay.IDPrefix)
	setIf(&base.DateLayout, overlay.DateLayout)
	setIf(&base.Prompt, overlay.Prompt)
	setIf(&base.HistoryFile, overlay.HistoryFile)
	setIf(&base.LogFile, overlay.LogFile)
	setIf(&base.LogLevel, overlay.LogLevel)

	setIf(&base.Keys.Add, overlay.Keys.Add)
	setIf(&base.Keys.Edit, overlay.Keys.Edit)
	setIf(&base.Keys.Delete, overlay.Keys.Delete)
	setIf(&base.Keys.Confirm, overlay.Keys.Confirm)
	setIf(&base.Keys.Cancel, overlay.Keys.Cancel)
	setIf(&base.Keys.Up, overlay.Keys.Up)
	setIf(&base.Keys.Down, overlay.Keys.Down)
	setIf(&base.Keys.Quit, overlay.Keys.Quit)

	return base
}

// Keys the TUI binds on its own, next to the configured ones.
const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyUp    = "up"
	keyDown  = "down"
	keyCtrlC = "ctrl+c"
)

type namedKey struct{ name, key string }

// Validate checks a merged configuration.
func Validate(cfg Config) error {
	if cfg.DateLayout == "" {
		return ErrDateLayoutEmpty
	}

	if cfg.Prompt == "" {
		return ErrPromptEmpty
	}

	if cfg.IDScheme != project.SchemeCounter && cfg.IDScheme != project.SchemeShort {
		return fmt.Errorf("%w: %q", ErrInvalidIDScheme, cfg.IDScheme)
	}

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLogLevel, err)
	}

	// Up/Down/Quit never fire while a text field has focus, and Confirm/Cancel
	// only while the delete modal is open, so each set must be unique on
	// its own. Keys the TUI always binds count as well.
	listKeys := []namedKey{
		{"add", cfg.Keys.Add},
		{"edit", cfg.Keys.Edit},
		{"delete", cfg.Keys.Delete},
		{"up", cfg.Keys.Up},
		{"down", cfg.Keys.Down},
		{"quit", cfg.Keys.Quit},
	}

	modalKeys := []namedKey{
		{"confirm", cfg.Keys.Confirm},
		{"cancel", cfg.Keys.Cancel},
	}

	for _, k := range append(listKeys, modalKeys...) {
		if k.key == "" {
			return fmt.Errorf("%w: keys.%s", ErrKeyEmpty, k.name)
		}
	}

	err := checkUnique(append(listKeys,
		namedKey{"up", keyUp},
		namedKey{"down", keyDown},
		namedKey{"edit", keyEnter},
		namedKey{"quit", keyCtrlC},
	))
	if err != nil {
		return err
	}

	return checkUnique(append(modalKeys,
		namedKey{"cancel", keyEsc},
		namedKey{"quit", keyCtrlC},
	))
}

// checkUnique fails when one key triggers two different actions.
func checkUnique(keys []namedKey) error {
	seen := make(map[string]string, len(keys))

	for _, k := range keys {
		if other, dup := seen[k.key]; dup && other != k.name {
			return fmt.Errorf("%w: %q (keys.%s and keys.%s)", ErrKeyConflict, k.key, other, k.name)
		}

		seen[k.key] = k.name
	}

	return nil
}

// Format returns the config as indented JSON.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format config: %w", err)
	}

	return string(data), nil
}
