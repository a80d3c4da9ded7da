package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hap-eb/ebill-reports/internal/bootstrap"
	"github.com/hap-eb/ebill-reports/internal/domain/model"
	"github.com/hap-eb/ebill-reports/internal/service"
)

var errReportRunFailed = errors.New("report run failed")

func newReportCmd(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run and inspect billing reports",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run the report pipeline once and print the result",
		RunE: func(c *cobra.Command, _ []string) error {
			reports, err := newReportService(cmdCtx)
			if err != nil {
				return err
			}
			return printJobResult(c.OutOrStdout(), reports.Run(c.Context()))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored report workbooks",
		RunE: func(c *cobra.Command, _ []string) error {
			reports, err := newReportService(cmdCtx)
			if err != nil {
				return err
			}
			stored, err := reports.ListReports(c.Context())
			if err != nil {
				return fmt.Errorf("list reports: %w", err)
			}
			return printStoredReports(c.OutOrStdout(), stored)
		},
	})
	return cmd
}

// newReportService builds the pipeline without the bills API pool; the
// pipeline opens its own session per run.
func newReportService(cmdCtx *commandContext) (*service.ReportService, error) {
	sess, err := bootstrap.NewAWSSession(cmdCtx.Config.Report)
	if err != nil {
		return nil, err
	}
	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config: &cmdCtx.Config,
		AWS:    sess,
		Logger: cmdCtx.Logger,
	})
	if err != nil {
		return nil, err
	}
	return services.Reports, nil
}

// printJobResult writes res as indented JSON and returns errReportRunFailed
// when the run did not succeed, so the process exits non-zero.
func printJobResult(w io.Writer, res model.JobResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if !res.Success {
		return fmt.Errorf("%w: %s", errReportRunFailed, res.Error)
	}
	return nil
}

func printStoredReports(w io.Writer, reports []model.StoredReport) error {
	if len(reports) == 0 {
		return writef(w, "No stored reports\n")
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writef(tw, "KEY\tSIZE\tLAST MODIFIED\n"); err != nil {
		return err
	}
	for _, r := range reports {
		if err := writef(tw, "%s\t%d\t%s\n", r.Key, r.Size, r.LastModified.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return tw.Flush()
}
