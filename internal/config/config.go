// Package config loads the callchart configuration file.
//
// Configuration lives in a TOML file: callchart.toml in the working
// directory if present, else $XDG_CONFIG_HOME/callchart/config.toml
// (falling back to ~/.config/callchart/config.toml). Every setting has
// a matching command-line flag; flags win over the file, the file wins
// over the built-in defaults.
//
// # Example
//
//	[tools]
//	cflow = "/opt/cflow/bin/cflow"
//	graphviz = "dot"
//
//	[output]
//	formats = ["svg", "pdf"]
//	layout = "dot"
//	base = "cflow"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[exclude]
//	functions = ["printf", "malloc"]
//	file = "~/.config/callchart/exclude.txt"
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/callchart/callchart/pkg/errors"
)

// Cache backend names accepted in the [cache] section.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the parsed configuration file.
type Config struct {
	Tools   Tools   `toml:"tools"`
	Output  Output  `toml:"output"`
	Cache   Cache   `toml:"cache"`
	Exclude Exclude `toml:"exclude"`
}

// Tools overrides the external binaries callchart shells out to.
type Tools struct {
	// Cflow is the analyzer binary, "cflow" on PATH when empty.
	Cflow string `toml:"cflow"`

	// Graphviz is the layout engine binary. Setting it forces the exec
	// render backend; empty lets the renderer choose.
	Graphviz string `toml:"graphviz"`
}

// Output holds default output settings.
type Output struct {
	Formats []string `toml:"formats"`
	Layout  string   `toml:"layout"`
	Base    string   `toml:"base"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// Exclude holds the standing exclusion list applied to every chart.
type Exclude struct {
	Functions []string `toml:"functions"`
	File      string   `toml:"file"`
}

// Default returns the built-in configuration: file-backed cache at the
// XDG cache directory, everything else left to the pipeline defaults.
func Default() Config {
	return Config{
		Cache: Cache{Backend: BackendFile},
	}
}

// Load reads the configuration at path. An empty path searches the
// default locations, `callchart.toml` in the working directory and then
// [Path]; a missing file there simply yields [Default]. A path given
// explicitly must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = "callchart.toml"
		if _, err := os.Stat(path); err != nil {
			p, perr := Path()
			if perr != nil {
				return Default(), nil
			}
			path = p
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "", BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache backend %q requires redis_addr", BackendRedis)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"unknown cache backend %q (supported: %s, %s, %s)",
			c.Cache.Backend, BackendFile, BackendRedis, BackendNone)
	}
	return nil
}
