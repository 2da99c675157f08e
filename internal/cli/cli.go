// Package cli implements the stablegraph command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stablegraph/pkg/buildinfo"
	"github.com/matzehuels/stablegraph/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "stablegraph"
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
	Config Config

	configPath  string
	metricsFile string
	verbose     bool
	registry    *prometheus.Registry
	out         io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output, which defaults to stdout.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Stablegraph edits graphs whose node and edge handles never move",
		Long: `Stablegraph is a CLI for stable-handle graphs: import them from edge lists or
adjacency matrices, reshape them, and keep snapshots that preserve every handle,
holes included.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.flushMetrics()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/stablegraph/config.toml)")
	flags.StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(c.importCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.subgraphCommand())
	root.AddCommand(c.contractCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file, applies flag overrides and attaches the
// logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	path, explicit := c.configPath, c.configPath != ""
	if !explicit {
		if dir, err := configDir(); err == nil {
			path = filepath.Join(dir, "config.toml")
		}
	}
	if path != "" {
		cfg, err := LoadConfig(path, explicit)
		if err != nil {
			return err
		}
		c.Config = cfg
	}

	if c.Config.Log.Level != "" {
		level, err := log.ParseLevel(c.Config.Log.Level)
		if err != nil {
			return fmt.Errorf("config: log.level: %w", err)
		}
		c.SetLogLevel(level)
	}
	if c.verbose {
		c.SetLogLevel(LogDebug)
	}
	if c.metricsFile != "" {
		c.Config.Metrics.File = c.metricsFile
	}
	if c.Config.Metrics.File != "" {
		c.registry = prometheus.NewRegistry()
		p := observability.NewPrometheus(c.registry)
		observability.SetCodecHooks(p)
		observability.SetSnapshotHooks(p)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	c.Logger.Debug("config loaded", "path", path, "backend", c.Config.Store.Backend)
	return nil
}

func (c *CLI) flushMetrics() error {
	if c.registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(c.Config.Metrics.File, c.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	c.Logger.Debug("metrics written", "file", c.Config.Metrics.File)
	return nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/stablegraph/).
func configDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// dataDir returns the data directory using XDG standard (~/.local/share/stablegraph/).
func dataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}
