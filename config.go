package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"gregoryjjb/looper/ring"
)

var ErrValidation = errors.New("validation error")

const (
	DefaultHost        = "127.0.0.1"
	DefaultPort        = "1225"
	DefaultHistorySize = 64
	ConfigFileName     = "looper.toml"
)

// Entry is one item of the playlist. Weight scales how long the sequencer
// dwells on it; zero counts as one.
type Entry struct {
	Name   string `toml:"name" json:"name"`
	Weight int    `toml:"weight" json:"weight,omitempty"`
}

func (e Entry) Dwell(interval time.Duration) time.Duration {
	return interval * time.Duration(max(e.Weight, 1))
}

// Flags are the command line values that influence the config.
type Flags struct {
	ConfigPath string
}

type tomlConfig struct {
	Host        string  `toml:"host"`
	Port        int     `toml:"port"`
	Repeat      any     `toml:"repeat"`
	Interval    string  `toml:"interval"`
	HistorySize *int    `toml:"history_size"`
	LogLevel    string  `toml:"log_level"`
	Entries     []Entry `toml:"entries"`
}

type Config struct {
	toml tomlConfig
	path string

	host        string
	port        string
	repeat      ring.Bound
	interval    time.Duration
	historySize int
	logLevel    zerolog.Level
}

func getEnvOr(getenv func(string) string, key string, fallback string) string {
	value := getenv(key)
	if value == "" {
		value = fallback
	}
	return value
}

// NewConfig reads the TOML config and applies environment overrides. The
// file is taken from flags, then LOOPER_CONFIG, then looper.toml in the home
// directory. A missing file is only an error when its path was given.
func NewConfig(fsys LooperFS, flags Flags, getenv func(string) string) (*Config, error) {
	path, explicit := flags.ConfigPath, true
	if path == "" {
		path = getenv("LOOPER_CONFIG")
	}
	if path == "" {
		home, err := fsys.HomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path, explicit = filepath.Join(home, ConfigFileName), false
	}

	abs, err := ResolvePath(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %q: %w", path, err)
	}

	c := &Config{path: abs}

	data, err := afero.ReadFile(fsys, abs)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// Run on defaults
	case err != nil:
		return nil, fmt.Errorf("read config %q: %w", abs, err)
	default:
		if err := toml.Unmarshal(data, &c.toml); err != nil {
			return nil, fmt.Errorf("%w: parse config %q: %w", ErrValidation, abs, err)
		}
	}

	if err := c.resolve(getenv); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) resolve(getenv func(string) string) error {
	port := DefaultPort
	if c.toml.Port != 0 {
		port = strconv.Itoa(c.toml.Port)
	}
	c.port = getEnvOr(getenv, "LOOPER_PORT", port)
	if n, err := strconv.Atoi(c.port); err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("%w: invalid port %q", ErrValidation, c.port)
	}

	host := DefaultHost
	if c.toml.Host != "" {
		host = c.toml.Host
	}
	c.host = getEnvOr(getenv, "LOOPER_HOST", host)

	repeat, err := parseRepeat(c.toml.Repeat)
	if err != nil {
		return err
	}
	c.repeat = repeat

	if c.toml.Interval != "" {
		c.interval, err = time.ParseDuration(c.toml.Interval)
		if err != nil || c.interval < 0 {
			return fmt.Errorf("%w: invalid interval %q", ErrValidation, c.toml.Interval)
		}
	}

	c.historySize = DefaultHistorySize
	if c.toml.HistorySize != nil {
		if *c.toml.HistorySize < 0 {
			return fmt.Errorf("%w: history_size cannot be negative", ErrValidation)
		}
		c.historySize = *c.toml.HistorySize
	}

	c.logLevel = zerolog.InfoLevel
	if lvl := getEnvOr(getenv, "LOOPER_LOG_LEVEL", c.toml.LogLevel); lvl != "" {
		c.logLevel, err = zerolog.ParseLevel(strings.ToLower(lvl))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	for i, e := range c.toml.Entries {
		if err := ValidateEntry(e); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}

	return nil
}

// parseRepeat accepts a TOML integer or any spelling ring.ParseBound takes.
// An absent value repeats forever.
func parseRepeat(v any) (ring.Bound, error) {
	switch r := v.(type) {
	case nil:
		return ring.Unbounded, nil
	case int64:
		if r < 0 {
			return ring.Bound{}, fmt.Errorf("%w: repeat cannot be negative", ErrValidation)
		}
		return ring.Times(uint64(r)), nil
	case string:
		b, err := ring.ParseBound(r)
		if err != nil {
			return ring.Bound{}, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return b, nil
	default:
		return ring.Bound{}, fmt.Errorf("%w: repeat must be a count or \"forever\", got %T", ErrValidation, v)
	}
}

func ValidateEntry(e Entry) error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: entry name cannot be blank", ErrValidation)
	}
	if e.Weight < 0 {
		return fmt.Errorf("%w: entry %q has negative weight %d", ErrValidation, e.Name, e.Weight)
	}
	return nil
}

func (c *Config) Path() string            { return c.path }
func (c *Config) Host() string            { return c.host }
func (c *Config) Port() string            { return c.port }
func (c *Config) Repeat() ring.Bound      { return c.repeat }
func (c *Config) Interval() time.Duration { return c.interval }
func (c *Config) HistorySize() int        { return c.historySize }
func (c *Config) LogLevel() zerolog.Level { return c.logLevel }
func (c *Config) Address() string         { return net.JoinHostPort(c.host, c.port) }
func (c *Config) Entries() []Entry        { return append([]Entry(nil), c.toml.Entries...) }
