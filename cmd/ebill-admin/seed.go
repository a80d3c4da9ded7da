package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hap-eb/ebill-reports/internal/bootstrap"
	"github.com/hap-eb/ebill-reports/internal/devseed"
)

func newSeedCmd(cmdCtx *commandContext) *cobra.Command {
	var (
		timeout     time.Duration
		allowRemote bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Run database migrations and load sample bills",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := guardRemoteHost(cmdCtx, allowRemote, "seed sample bills"); err != nil {
				return err
			}
			return withDatabase(cmdCtx, timeout, func(ctx context.Context, db *sql.DB) error {
				cmdCtx.Logger.Info("ensuring database migrations are current")
				if err := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); err != nil {
					return err
				}

				cmdCtx.Logger.Info("seeding sample bills")
				if err := devseed.Run(ctx, devseed.NewServices(db), time.Now(), cmdCtx.Logger); err != nil {
					return fmt.Errorf("seed data: %w", err)
				}

				cmdCtx.Logger.Info("database seeding completed successfully")
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", defaultMigrationTimeout, "Maximum duration for migrations and seeding")
	cmd.Flags().BoolVar(&allowRemote, "allow-remote", false, "Allow seeding a database host that is not local")
	return cmd
}
