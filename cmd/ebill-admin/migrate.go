package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hap-eb/ebill-reports/internal/bootstrap"
	"github.com/hap-eb/ebill-reports/internal/migrate"
)

func newMigrateCmd(cmdCtx *commandContext) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			if timeout <= 0 {
				return errors.New("--timeout must be greater than zero")
			}
			return withDatabase(cmdCtx, timeout, func(ctx context.Context, db *sql.DB) error {
				cmdCtx.Logger.Info("running database migrations")
				if err := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); err != nil {
					return err
				}
				cmdCtx.Logger.Info("migrations completed successfully")
				return nil
			})
		},
	}
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultMigrationTimeout,
		"Maximum duration to wait for migrations to complete")

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List embedded migrations and whether they are applied",
		RunE: func(c *cobra.Command, _ []string) error {
			return withDatabase(cmdCtx, timeout, func(ctx context.Context, db *sql.DB) error {
				migrations, err := migrate.Status(ctx, db)
				if err != nil {
					return fmt.Errorf("migration status: %w", err)
				}
				return printMigrationStatus(c.OutOrStdout(), migrations)
			})
		},
	})
	return cmd
}

func printMigrationStatus(w io.Writer, migrations []migrate.Migration) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writef(tw, "VERSION\tAPPLIED\tAPPLIED AT\n"); err != nil {
		return err
	}
	for _, m := range migrations {
		at := "-"
		if m.AppliedAt != nil {
			at = m.AppliedAt.UTC().Format(time.RFC3339)
		}
		if err := writef(tw, "%s\t%t\t%s\n", m.Version, m.Applied, at); err != nil {
			return err
		}
	}
	return tw.Flush()
}
