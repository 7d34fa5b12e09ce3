package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pypin/pkg/buildinfo"
	"github.com/matzehuels/pypin/pkg/cache"
	"github.com/matzehuels/pypin/pkg/config"
	"github.com/matzehuels/pypin/pkg/dates"
	"github.com/matzehuels/pypin/pkg/integrations/pypi"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// pinAlias is the hidden subcommand that runs the root command's pin action.
// routeArgs uses it when a target collides with a subcommand name.
const pinAlias = "pin"

// storePrefix namespaces pypin's keys in a shared redis.
const storePrefix = "pypin:"

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Stdout io.Writer // results and diagnostics
	Stderr io.Writer // logs, progress

	cfg        config.Config
	configPath string
	verbose    bool
	indexURL   string // PyPI API root; tests point it at an httptest server
}

// New creates a CLI writing results to stdout and logs to stderr.
func New(stdout, stderr io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(stderr, level),
		Stdout: stdout,
		Stderr: stderr,
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.pinCommand()
	root.Version = buildinfo.Version
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Stdout)
	root.SetErr(c.Stderr)

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pypin/config.toml)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if c.verbose {
			c.SetLogLevel(LogDebug)
			registerLogHooks(c.Logger)
		}
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		c.cfg = cfg
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	pin := c.pinCommand()
	pin.Use = pinAlias + " <package|requirements-file> <date>"
	pin.Hidden = true

	root.AddCommand(pin)
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// run executes the command tree with args.
func (c *CLI) run(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(routeArgs(root, args))
	return root.ExecuteContext(ctx)
}

// routeArgs keeps "pypin <target> <date>" working for targets that share a
// name with a subcommand, such as the PyPI packages "cache" and "serve".
// The call is sent to the pin command when the second argument is a date, or
// when the target is an existing file and the second argument is not one of
// the subcommand's own children.
func routeArgs(root *cobra.Command, args []string) []string {
	if len(args) < 2 || strings.HasPrefix(args[0], "-") {
		return args
	}
	root.InitDefaultHelpCmd()
	sub, _, err := root.Find(args[:1])
	if err != nil || sub == root {
		return args
	}
	_, dateErr := dates.Parse(args[1])
	if dateErr == nil || (isManifest(args[0]) && !hasSubcommand(sub, args[1])) {
		return append([]string{pinAlias}, args...)
	}
	return args
}

func hasSubcommand(cmd *cobra.Command, name string) bool {
	for _, sub := range cmd.Commands() {
		if sub.Name() == name || sub.HasAlias(name) {
			return true
		}
	}
	return false
}

// newStore opens the cross-run release store: redis when redis_url is
// configured, otherwise the file cache under cache_dir.
func (c *CLI) newStore(ctx context.Context) (cache.Cache, error) {
	if c.cfg.RedisURL != "" {
		return cache.NewRedisCache(ctx, c.cfg.RedisURL, storePrefix)
	}
	return cache.NewFileCache(c.cfg.CacheDir)
}

// newClient creates the PyPI client for a run. The store may be nil.
func (c *CLI) newClient(store cache.Cache, refresh bool) *pypi.Client {
	return pypi.NewClient(pypi.Options{
		BaseURL:   c.indexURL,
		Timeout:   c.cfg.Timeout.Duration,
		UserAgent: c.cfg.UserAgent,
		Store:     store,
		StoreTTL:  c.cfg.CacheTTL.Duration,
		Refresh:   refresh,
		Logger:    c.Logger,
	})
}
