// Package config resolves the settings shared by the viewer commands.
//
// Precedence, lowest first: built-in defaults, a .env file (KEY=VALUE, loaded with godotenv
// into the process environment without overriding variables already set), the process
// environment, then command-line flags. With nothing set the viewer reads results.csv and
// opens a window.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/iafilius/BitonicBenchViewer/src/figure"
	"github.com/iafilius/BitonicBenchViewer/src/logger"
	"github.com/iafilius/BitonicBenchViewer/src/results"
)

// Environment variable names.
const (
	EnvFile     = "BITONIC_FILE"
	EnvOut      = "BITONIC_OUT"
	EnvServe    = "BITONIC_SERVE"
	EnvLogLevel = "BITONIC_LOG_LEVEL"
	EnvTheme    = "BITONIC_THEME"
	EnvCaption  = "BITONIC_CAPTION"
)

// DefaultEnvFile is the dotenv file looked up in the working directory.
const DefaultEnvFile = ".env"

// Config holds the resolved settings.
type Config struct {
	File     string // results table to load
	Out      string // when set, export the chart to this path and exit (no window)
	Serve    string // when set, serve the chart over HTTP on this address (no window)
	LogLevel string
	Theme    string // "light" or "dark"
	Caption  bool   // stamp "<file>, <n> rows" onto raster output
	EnvFile  string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		File:     results.DefaultPath,
		LogLevel: "info",
		Theme:    "light",
		EnvFile:  DefaultEnvFile,
	}
}

// Dark reports whether the dark theme is selected.
func (c Config) Dark() bool { return strings.EqualFold(c.Theme, "dark") }

// Mode names what the viewer does with the chart: "export", "serve" or "window".
func (c Config) Mode() string {
	switch {
	case c.Out != "":
		return "export"
	case c.Serve != "":
		return "serve"
	default:
		return "window"
	}
}

// Validate checks values that flags and env cannot type-check.
func (c Config) Validate() error {
	if strings.TrimSpace(c.File) == "" {
		return errors.New("results file path is empty")
	}
	if c.Out != "" && c.Serve != "" {
		return errors.New("-out and -serve are mutually exclusive")
	}
	if c.Out != "" && !figure.SupportedFormat(figure.FormatFromPath(c.Out)) {
		return fmt.Errorf("-out %s: unsupported format (want one of %s)", c.Out, strings.Join(figure.Formats, ", "))
	}
	switch strings.ToLower(c.Theme) {
	case "light", "dark":
	default:
		return fmt.Errorf("unknown theme %q (want light or dark)", c.Theme)
	}
	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("unknown log level %q (want debug|info|warn|error)", c.LogLevel)
	}
	return nil
}

// LoadEnvFile loads path into the process environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debugf("[config] no %s found; using process environment", path)
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	logger.Debugf("[config] loaded environment from %s", path)
	return nil
}

// envFileFromArgs finds -env/--env in args before flags are parsed, since the env file
// decides the defaults the flags are registered with.
func envFileFromArgs(args []string) string {
	for i, a := range args {
		name, val, hasVal := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !strings.HasPrefix(a, "-") || name != "env" {
			continue
		}
		if hasVal {
			return val
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return DefaultEnvFile
}

// applyEnv overlays environment values onto c.
func applyEnv(c *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvFile); ok && v != "" {
		c.File = v
	}
	if v, ok := lookup(EnvOut); ok {
		c.Out = v
	}
	if v, ok := lookup(EnvServe); ok {
		c.Serve = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvTheme); ok && v != "" {
		c.Theme = v
	}
	if v, ok := lookup(EnvCaption); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvCaption, v, err)
		}
		c.Caption = b
	}
	return nil
}

// Load resolves the configuration for command name from args (without the program name),
// loading the env file into the process environment first.
func Load(name string, args []string, stderr io.Writer) (Config, error) {
	if err := LoadEnvFile(envFileFromArgs(args)); err != nil {
		return Config{}, err
	}
	return Parse(name, args, os.LookupEnv, stderr)
}

// Parse resolves the configuration from lookup and args without touching the filesystem.
func Parse(name string, args []string, lookup func(string) (string, bool), stderr io.Writer) (Config, error) {
	c := Default()
	c.EnvFile = envFileFromArgs(args)
	if err := applyEnv(&c, lookup); err != nil {
		return Config{}, err
	}

	fsFlags := flag.NewFlagSet(name, flag.ContinueOnError)
	if stderr != nil {
		fsFlags.SetOutput(stderr)
	}
	fsFlags.StringVar(&c.File, "file", c.File, "Path to the results CSV (env "+EnvFile+")")
	fsFlags.StringVar(&c.Out, "out", c.Out, "Export the chart to this file (png|svg|pdf|eps|jpg|tif) instead of opening a window (env "+EnvOut+")")
	fsFlags.StringVar(&c.Serve, "serve", c.Serve, "Serve the chart over HTTP on this address, e.g. :8080 (env "+EnvServe+")")
	fsFlags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug|info|warn|error) (env "+EnvLogLevel+")")
	fsFlags.StringVar(&c.Theme, "theme", c.Theme, "Chart theme (light|dark) (env "+EnvTheme+")")
	fsFlags.BoolVar(&c.Caption, "caption", c.Caption, "Stamp the source file and row count onto raster charts (env "+EnvCaption+")")
	fsFlags.StringVar(&c.EnvFile, "env", c.EnvFile, "Dotenv file read before the environment")
	if err := fsFlags.Parse(args); err != nil {
		return Config{}, err
	}
	if fsFlags.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fsFlags.Args(), " "))
	}
	return c, c.Validate()
}
