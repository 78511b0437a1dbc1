// internal/cli/root.go

// Package cli implements the retificactl admin commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/ammerola/retifica-be/internal/app"
	"github.com/ammerola/retifica-be/internal/core/ports"
	"github.com/ammerola/retifica-be/internal/pkg/config"
	"github.com/ammerola/retifica-be/internal/pkg/logger"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// StoreOpener returns an initialized store and a function releasing it.
type StoreOpener func(ctx context.Context, opts *RootOptions) (ports.Store, func(), error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Cache   string // overrides LOCAL_CACHE_PATH
	Offline bool

	// OpenStore defaults to the configured stack. Tests replace it.
	OpenStore StoreOpener
}

// NewRootCommand creates the root command for retificactl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{OpenStore: openConfiguredStore})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retificactl",
		Short: "Administer the retifica engine store",
		Long:  "Inspect batches and engines, export reports, seed demo data and migrate the remote database.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Cache, "cache", "", "path to the SQLite snapshot cache")
	cmd.PersistentFlags().BoolVar(&opts.Offline, "offline", false, "ignore the remote database")

	cmd.AddCommand(NewMetricsCommand(opts))
	cmd.AddCommand(NewBatchesCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}

func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := "warn"
	if o.Verbose {
		level = "debug"
	}
	return logger.NewLogger(&logger.LogConfig{Level: level, Format: "text", Output: w}).Logger
}

func (o *RootOptions) loadConfig(log *slog.Logger) (*config.Config, error) {
	cfg, err := config.Load(log)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	if o.Cache != "" {
		cfg.LocalCache.Driver = config.LocalDriverSQLite
		cfg.LocalCache.Path = o.Cache
	}
	if o.Offline {
		cfg.Database.Enabled = false
	}
	return cfg, nil
}

func openConfiguredStore(ctx context.Context, opts *RootOptions) (ports.Store, func(), error) {
	log := opts.logger(io.Discard)
	if opts.Verbose {
		log = opts.logger(stderr)
	}

	cfg, err := opts.loadConfig(log)
	if err != nil {
		return nil, nil, err
	}

	var client redis.UniversalClient
	var closeClient func()
	if cfg.LocalCache.Driver == config.LocalDriverRedis {
		c := app.NewRedisClient(cfg)
		client, closeClient = c, func() { c.Close() }
	}

	stack, err := app.NewStack(ctx, cfg, client, log)
	if err != nil {
		if closeClient != nil {
			closeClient()
		}
		return nil, nil, WrapExitError(ExitCommandError, "failed to open store", err)
	}

	return stack.Store, func() {
		stack.Close()
		if closeClient != nil {
			closeClient()
		}
	}, nil
}
