package main

import (
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	httpx "github.com/hap-eb/ebill-reports/internal/http"
)

func newRoutesCmd(_ *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print role-gated routes and the roles allowed on each",
		RunE: func(c *cobra.Command, _ []string) error {
			return printAccessTable(c.OutOrStdout(), httpx.AccessTable())
		},
	}
}

func printAccessTable(w io.Writer, table []httpx.RouteAccess) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writef(tw, "METHOD\tPATTERN\tROLES\n"); err != nil {
		return err
	}
	for _, r := range table {
		roles := make([]string, 0, len(r.Roles))
		for _, role := range r.Roles {
			roles = append(roles, string(role))
		}
		if err := writef(tw, "%s\t%s\t%s\n", r.Method, r.Pattern, strings.Join(roles, ", ")); err != nil {
			return err
		}
	}
	return tw.Flush()
}
