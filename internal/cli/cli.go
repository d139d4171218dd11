package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jimtonn/foldout/pkg/buildinfo"
	"github.com/jimtonn/foldout/pkg/cache"
	"github.com/jimtonn/foldout/pkg/observability"
	"github.com/jimtonn/foldout/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "foldout"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *Config

	// Out receives command output. Logs go to the logger's writer.
	Out io.Writer

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Foldout edits hierarchical outlines with typed columns",
		Long: `Foldout is a terminal outliner. Every row of an outline carries one value per
column, and every edit can be undone and redone.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/foldout/config.toml)")

	root.AddCommand(c.demoCommand())
	root.AddCommand(c.newCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file, applies the log level and registers the
// logging history hooks. It runs before every subcommand.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level := LogInfo
	if c.verbose || cfg.Verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	observability.SetHistoryHooks(newHistoryLogger(c.Logger))
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a render runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*render.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := render.NewRunner(store, renderKeyer(), c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	r.Backoff = interactiveBackoff
	return r, nil
}

// interactiveBackoff bounds how long a render waits on an unreachable
// cache before drawing from scratch.
var interactiveBackoff = cache.Backoff{Attempts: 2, Delay: 100 * time.Millisecond}

// renderKeyer scopes render keys by foldout version, so an upgrade never
// serves diagrams drawn by an older release. The backend adds its own
// namespace (the Redis key prefix or the cache directory).
func renderKeyer() cache.Keyer {
	version, _, _ := buildinfo.Resolve()
	return cache.NewScopedKeyer(nil, version+":")
}

// newCache picks the cache backend: none with --no-cache, Redis when
// cache.redis_addr is set and reachable, the file cache otherwise.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if addr := c.Config.Cache.RedisAddr; addr != "" {
		rc := cache.NewRedisCache(addr)
		if err := rc.Ping(ctx); err != nil {
			c.Logger.Warn("redis cache unavailable, using file cache", "addr", addr, "error", err)
			rc.Close()
		} else {
			c.Logger.Debug("using redis cache", "addr", addr)
			return rc, nil
		}
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory or the XDG default
// (~/.cache/foldout/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config != nil && c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/foldout/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/foldout/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
