// Package config loads the TOML run configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/siana-blue/poufalouf/parameter"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Duration decodes TOML strings such as "40ms"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type World struct {
	Width    int `toml:"width"`
	Height   int `toml:"height"`
	CellSize int `toml:"cell_size"`
}

type Tick struct {
	Interval Duration `toml:"interval"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
	File   string `toml:"file"`   // Empty writes to stdout
}

type Debug struct {
	Addr       string `toml:"addr"` // Empty disables the debug server
	Invariants bool   `toml:"invariants"`
}

type Audio struct {
	Enabled bool `toml:"enabled"`
}

type Analytics struct {
	Path string `toml:"path"` // Empty disables recording
}

type Level struct {
	Seed    uint64 `toml:"seed"` // Zero picks a time-based seed
	Mines   int    `toml:"mines"`
	Hearts  int    `toml:"hearts"`
	Turrets int    `toml:"turrets"`
	Chairs  int    `toml:"chairs"`
	Pools   int    `toml:"pools"` // Water and void pools
}

// Config is the full run configuration
type Config struct {
	World     World     `toml:"world"`
	Tick      Tick      `toml:"tick"`
	Log       Log       `toml:"log"`
	Debug     Debug     `toml:"debug"`
	Audio     Audio     `toml:"audio"`
	Analytics Analytics `toml:"analytics"`
	Level     Level     `toml:"level"`
	// Keys binds key names to actions: up, down, left, right, jump, fire, pause, quit
	Keys map[string]string `toml:"keys"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		World: World{
			Width:    parameter.DefaultGridWidth,
			Height:   parameter.DefaultGridHeight,
			CellSize: parameter.CellSize,
		},
		Tick:  Tick{Interval: Duration{parameter.DefaultTickInterval}},
		Log:   Log{Level: "info", Format: "text"},
		Audio: Audio{Enabled: true},
		Level: Level{Mines: 6, Hearts: 3, Turrets: 2, Chairs: 1, Pools: 3},
	}
}

// Load reads path over the defaults, an empty path returns the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, cfg)
}

// Parse decodes TOML data over base and validates the result
func Parse(data []byte, base *Config) (*Config, error) {
	md, err := toml.Decode(string(data), base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	return base, base.Validate()
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world: size %dx%d must be positive", c.World.Width, c.World.Height))
	}
	if c.World.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("world: cell_size %d must be positive", c.World.CellSize))
	}
	if c.Tick.Interval.Duration < parameter.MinTickInterval {
		errs = append(errs, fmt.Errorf("tick: interval %v below %v", c.Tick.Interval.Duration, parameter.MinTickInterval))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log: unknown format %q", c.Log.Format))
	}
	for kind, n := range map[string]int{"mine": c.Level.Mines, "heart": c.Level.Hearts, "turret": c.Level.Turrets, "chair": c.Level.Chairs, "pool": c.Level.Pools} {
		if n < 0 {
			errs = append(errs, fmt.Errorf("level: %s count %d is negative", kind, n))
		}
	}
	for key, action := range c.Keys {
		if !validAction(action) {
			errs = append(errs, fmt.Errorf("keys: %q bound to unknown action %q", key, action))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// Actions lists the bindable key actions
var Actions = []string{"up", "down", "left", "right", "jump", "fire", "pause", "quit"}

func validAction(a string) bool {
	for _, v := range Actions {
		if a == v {
			return true
		}
	}
	return false
}
