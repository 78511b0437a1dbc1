// internal/cli/migrate.go
package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ammerola/retifica-be/internal/adapters/db"
	"github.com/ammerola/retifica-be/internal/app"
)

// migrator is the subset of *db.Migrator the commands use.
type migrator interface {
	Up(ctx context.Context) error
	Down(ctx context.Context) error
	Force(ctx context.Context, version int) error
	Version(ctx context.Context) (uint, bool, error)
	Close() error
}

// MigrateOptions holds flags for the migrate commands.
type MigrateOptions struct {
	*RootOptions
	ForceDirty bool

	open func(opts *MigrateOptions) (migrator, error)
}

// NewMigrateCommand creates the migrate command group.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MigrateOptions{RootOptions: rootOpts, open: openMigrator}
	return newMigrateCommand(opts)
}

func newMigrateCommand(opts *MigrateOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the remote lotes/motores schema",
		Long: `Apply or roll back the remote PostgreSQL schema. Connection settings come
from the DB_* environment variables; REMOTE_ENABLED is not required.`,
	}
	cmd.PersistentFlags().BoolVar(&opts.ForceDirty, "force-dirty", false, "force a dirty version before migrating up")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(opts, func(m migrator) error {
				if err := m.Up(cmd.Context()); err != nil {
					return err
				}
				return printVersion(cmd, opts, m)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(opts, func(m migrator) error {
				if err := m.Down(cmd.Context()); err != nil {
					return err
				}
				return printVersion(cmd, opts, m)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(opts, func(m migrator) error {
				return printVersion(cmd, opts, m)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "force VERSION",
		Short: "Set the schema version without running migrations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid version", err)
			}
			return withMigrator(opts, func(m migrator) error {
				if err := m.Force(cmd.Context(), version); err != nil {
					return err
				}
				return printVersion(cmd, opts, m)
			})
		},
	})

	return cmd
}

func withMigrator(opts *MigrateOptions, fn func(m migrator) error) error {
	m, err := opts.open(opts)
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}

func printVersion(cmd *cobra.Command, opts *MigrateOptions, m migrator) error {
	version, dirty, err := m.Version(cmd.Context())
	if err != nil {
		return err
	}
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
			"version": version,
			"dirty":   dirty,
		})
	}
	state := ""
	if dirty {
		state = " (dirty)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d%s\n", version, state)
	return nil
}

func openMigrator(opts *MigrateOptions) (migrator, error) {
	log := opts.logger(stderr)
	cfg, err := opts.loadConfig(log)
	if err != nil {
		return nil, err
	}

	mcfg := app.MigrationConfig(cfg)
	mcfg.ForceDirty = opts.ForceDirty

	m, err := db.NewMigrator(mcfg, log)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to connect to the remote database", err)
	}
	return m, nil
}
