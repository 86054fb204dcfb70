// Package cli wires the calc command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"web-calculator/internal/app"
	"web-calculator/internal/client"
	"web-calculator/internal/config"
	"web-calculator/internal/history"
)

// Version is stamped at build time with -ldflags "-X web-calculator/internal/cli.Version=...".
var Version = "dev"

type options struct {
	configPath     string
	serverURL      string
	historyBackend string
	historyPath    string
	timeout        time.Duration
	verbose        bool
}

// container holds the dependencies built once flags are parsed.
type container struct {
	cfg     config.Client
	logger  *zap.Logger
	storage history.Storage
	history *history.Store
	session *app.Session
}

// Run executes the calc command tree with args. Whatever the command opened
// is closed afterwards, also when it failed.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root, c := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return execute(ctx, root, c)
}

// execute runs root and closes c. cobra skips post-run hooks when a command
// fails, so the cleanup cannot live in PersistentPostRunE.
func execute(ctx context.Context, root *cobra.Command, c *container) error {
	err := root.ExecuteContext(ctx)
	if cerr := c.close(); err == nil {
		err = cerr
	}
	return err
}

func newRootCmd() (*cobra.Command, *container) {
	opts := &options{}
	c := &container{}

	root := &cobra.Command{
		Use:   "calc",
		Short: "Terminal client for the web calculator",
		Long: "calc sends single-operation expressions such as 12+3, 2^8 or √(16) " +
			"to a calculator server and keeps the last results in a local history.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsContainer(cmd) {
				return nil
			}
			return c.build(opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.DefaultClientPath(), "Path to the YAML config file")
	flags.StringVar(&opts.serverURL, "server", "", "Calculator server base URL (overrides config)")
	flags.StringVar(&opts.historyBackend, "history-backend", "", "History storage: file or sqlite (overrides config)")
	flags.StringVar(&opts.historyPath, "history-path", "", "History directory (file) or database (sqlite) path")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Request timeout (overrides config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(
		newEvalCommand(c),
		newHistoryCommand(c),
		newTUICommand(c),
		newVersionCommand(),
	)
	return root, c
}

// needsContainer is false for commands that never touch the server or the
// history: version, help and shell completion.
func needsContainer(cmd *cobra.Command) bool {
	for ; cmd != nil; cmd = cmd.Parent() {
		switch cmd.Name() {
		case "version", "help", "completion":
			return false
		}
	}
	return true
}

func (c *container) build(opts *options) error {
	cfg, err := config.LoadClient(opts.configPath)
	if err != nil {
		return err
	}
	if opts.serverURL != "" {
		cfg.ServerURL = opts.serverURL
	}
	if opts.historyBackend != "" {
		cfg.History.Backend = opts.historyBackend
		if opts.historyPath == "" {
			cfg.History.Path = config.DefaultHistoryPath(opts.historyBackend)
		}
	}
	if opts.historyPath != "" {
		cfg.History.Path = opts.historyPath
	}
	if opts.timeout > 0 {
		cfg.Timeout = opts.timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(opts.verbose)
	if err != nil {
		return err
	}

	storage, err := history.OpenStorage(cfg.History)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}

	c.cfg = cfg
	c.logger = logger
	c.storage = storage
	c.history = history.NewStore(storage)
	c.session = app.NewSession(client.New(cfg.ServerURL, cfg.Timeout), c.history, logger)

	logger.Debug("client configured",
		zap.String("server", cfg.ServerURL),
		zap.String("history_backend", cfg.History.Backend),
		zap.String("history_path", cfg.History.Path),
	)
	return nil
}

func (c *container) close() error {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
	if c.storage == nil {
		return nil
	}
	storage := c.storage
	c.storage = nil
	return storage.Close()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
