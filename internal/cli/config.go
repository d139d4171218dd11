package cli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jimtonn/foldout/pkg/errors"
	"github.com/jimtonn/foldout/pkg/io"
	"github.com/jimtonn/foldout/pkg/outline"
	"github.com/jimtonn/foldout/pkg/render"
)

// Config is the user configuration read from config.toml.
//
//	verbose = false
//	indent = "  "
//
//	[[columns]]
//	kind = "text"
//	title = "Content"
//
//	[cache]
//	dir = "/tmp/foldout"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
type Config struct {
	Verbose bool            `toml:"verbose"`
	Indent  string          `toml:"indent"`
	Columns []io.ColumnSpec `toml:"columns"`
	Cache   CacheConfig     `toml:"cache"`
}

// CacheConfig selects and tunes the render cache.
type CacheConfig struct {
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
}

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Indent: "  ",
		Columns: []io.ColumnSpec{
			{Kind: outline.KindText, Title: "Content"},
			{Kind: outline.KindCheck, Title: "Done"},
		},
		Cache: CacheConfig{TTL: Duration{render.DefaultTTL}},
	}
}

// LoadConfig reads the config file at path, or at the default location
// when path is empty. A missing default file yields [DefaultConfig]; a
// missing explicit file is an error. Keys absent from the file keep their
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}

	// Columns from the file replace the default schema rather than append.
	var columns struct {
		Columns []io.ColumnSpec `toml:"columns"`
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if md.IsDefined("columns") {
		if _, err := toml.Decode(string(data), &columns); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
		}
		cfg.Columns = columns.Columns
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the column schema and cache settings.
func (c *Config) Validate() error {
	for i, spec := range c.Columns {
		if err := errors.ValidateColumnTitle(spec.Title); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColumn, err, "columns[%d]", i)
		}
		if _, err := spec.NewColumn(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColumn, err, "columns[%d]", i)
		}
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	return nil
}

// NewSchema creates fresh columns for the configured schema.
func (c *Config) NewSchema() ([]*outline.Column, error) {
	cols := make([]*outline.Column, 0, len(c.Columns))
	for _, spec := range c.Columns {
		col, err := spec.NewColumn()
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}
