// Package logger builds the application *slog.Logger. Output style and
// level can be adjusted through an optional YAML file at
// ~/.config/bucketsync/logging.yaml; without one, colorized output goes
// to stdout on terminals and plain text everywhere else.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

const (
	optionsFileName = "logging.yaml"
	configDirName   = "bucketsync"
	timeFormat      = "2006-01-02 15:04:05"
)

type Options struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// File appends log output to the given path instead of stdout.
	File string `yaml:"file"`
	// NoColor forces the plain text handler even on a terminal.
	NoColor bool `yaml:"no_color"`
}

// LoadOptions reads the options file at path. A missing file yields
// defaults.
func LoadOptions(path string) (Options, error) {
	var opts Options

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return opts, nil
	}
	if err != nil {
		return opts, fmt.Errorf("error reading logging options: %w", err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("error parsing logging options: %w", err)
	}
	return opts, nil
}

// DefaultOptionsPath returns the conventional location of the options
// file, or "" when the home directory is unknown.
func DefaultOptionsPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", configDirName, optionsFileName)
}

// New builds a logger from opts. The returned LevelVar allows raising
// the level later, once CLI flags have been parsed.
func New(opts Options) (*slog.Logger, *slog.LevelVar, error) {
	level := new(slog.LevelVar)
	level.Set(parseLevel(opts.Level))

	var w io.Writer = os.Stdout
	colorable := isatty.IsTerminal(os.Stdout.Fd()) && !opts.NoColor

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening log file: %w", err)
		}
		w = f
		colorable = false
	}

	var handler slog.Handler
	if colorable {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: timeFormat,
		})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log, level, nil
}

// NewLogger builds the default logger, consulting the conventional
// options file when present.
func NewLogger() (*slog.Logger, *slog.LevelVar) {
	opts, err := LoadOptions(DefaultOptionsPath())
	if err != nil {
		// A broken options file should not take the tool down.
		opts = Options{}
	}

	log, level, err := New(opts)
	if err != nil {
		log, level, _ = New(Options{})
	}
	return log, level
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
