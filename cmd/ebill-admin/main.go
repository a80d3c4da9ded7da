package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hap-eb/ebill-reports/config"
	"github.com/hap-eb/ebill-reports/internal/bootstrap"
)

const defaultMigrationTimeout = 5 * time.Minute

// commandContext is shared by every subcommand once configuration is loaded.
type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	Out    io.Writer

	// loadConfig is replaced in tests.
	loadConfig func() (config.AppConfig, error)
}

func main() {
	logger := bootstrap.InitLogger()
	cmdCtx := &commandContext{
		Ctx:        context.Background(),
		Logger:     logger,
		Out:        os.Stdout,
		loadConfig: bootstrap.LoadConfig,
	}
	if err := newRootCmd(cmdCtx).ExecuteContext(cmdCtx.Ctx); err != nil {
		cmdCtx.Logger.ErrorContext(cmdCtx.Ctx, "command failed", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func newRootCmd(cmdCtx *commandContext) *cobra.Command {
	root := &cobra.Command{
		Use:           "ebill-admin",
		Short:         "Operator tooling for the electricity bill report service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := cmdCtx.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cmdCtx.Config = cfg
			cmdCtx.Logger = bootstrap.ConfigureLogger(&cfg)
			return nil
		},
	}
	root.SetOut(cmdCtx.Out)

	root.AddCommand(
		newMigrateCmd(cmdCtx),
		newSeedCmd(cmdCtx),
		newReportCmd(cmdCtx),
		newRoutesCmd(cmdCtx),
	)
	return root
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
