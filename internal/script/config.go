package script

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gsg/guardian"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the replay settings. Flags override the file, the file
// overrides the defaults.
type Config struct {
	// Backends lists the guardian backends to try, in order.
	Backends []string

	// HALBackend selects the HAL variant of the native backend.
	HALBackend string

	// ClearColor is the color clear value.
	ClearColor gputypes.Color

	// PoolSize limits the texture pool, 0 for unlimited.
	PoolSize int

	// LogLevel is "debug", "info", "warn" or "error".
	LogLevel string

	// Complete forces complete requests for every frame when set.
	Complete bool
}

// DefaultConfig returns the settings used when neither flags nor a file
// set a value.
func DefaultConfig() Config {
	return Config{
		Backends:   []string{"recorder"},
		ClearColor: gputypes.ColorBlack,
		LogLevel:   "warn",
	}
}

// Guardian returns the guardian configuration.
func (c Config) Guardian(logger *slog.Logger) guardian.Config {
	return guardian.Config{
		ClearColor:      c.ClearColor,
		TexturePoolSize: c.PoolSize,
		HALBackend:      c.HALBackend,
		Logger:          logger,
	}
}

// Level returns the slog level of LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("script: log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// fileConfig mirrors Config in TOML-friendly types.
type fileConfig struct {
	PreferredBackends []string  `toml:"preferred_backends"`
	HALBackend        string    `toml:"hal_backend"`
	ClearColor        []float64 `toml:"clear_color"`
	PoolSize          *int      `toml:"pool_size"`
	LogLevel          string    `toml:"log_level"`
	Complete          *bool     `toml:"complete"`
}

// DefaultConfigPath returns ~/.gsg/replay.toml, or "" without a home
// directory.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".gsg", "replay.toml")
	}
	return ""
}

// LoadConfigFile reads the TOML file at path and applies it to cfg,
// skipping the settings whose flag is in changed.
func LoadConfigFile(path string, cfg *Config, changed map[string]bool) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("script: config %s: %w", path, err)
	}
	return applyFileConfig(cfg, fc, changed)
}

func applyFileConfig(cfg *Config, fc fileConfig, changed map[string]bool) error {
	s := configSetter{changed: changed}

	s.setStrings("backend", fc.PreferredBackends, &cfg.Backends)
	s.setString("hal", fc.HALBackend, &cfg.HALBackend)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setInt("pool-size", fc.PoolSize, &cfg.PoolSize)
	s.setBool("complete", fc.Complete, &cfg.Complete)

	if fc.ClearColor != nil && !changed["clear-color"] {
		c, err := ParseColor(fc.ClearColor)
		if err != nil {
			return fmt.Errorf("script: clear_color: %w", err)
		}
		cfg.ClearColor = c
	}
	return nil
}

// ParseColor converts three or four components in [0, 1] to a color.
func ParseColor(components []float64) (gputypes.Color, error) {
	list := make([]any, len(components))
	for i, f := range components {
		list[i] = f
	}
	return parseColor(list)
}

// ParseBackends splits a comma separated backend list.
func ParseBackends(s string) []string {
	var out []string
	for name := range strings.SplitSeq(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// configSetter applies file values unless the flag of the same setting
// was given on the command line.
type configSetter struct {
	changed map[string]bool
}

func (s configSetter) setString(flag, v string, dst *string) {
	if v != "" && !s.changed[flag] {
		*dst = v
	}
}

func (s configSetter) setStrings(flag string, v []string, dst *[]string) {
	if len(v) > 0 && !s.changed[flag] {
		*dst = v
	}
}

func (s configSetter) setInt(flag string, v *int, dst *int) {
	if v != nil && !s.changed[flag] {
		*dst = *v
	}
}

func (s configSetter) setBool(flag string, v *bool, dst *bool) {
	if v != nil && !s.changed[flag] {
		*dst = *v
	}
}
