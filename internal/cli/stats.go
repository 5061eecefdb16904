package cli

import (
	"fmt"

	"github.com/dalemusser/scivishub/internal/app/stats"
	"github.com/dalemusser/scivishub/internal/app/submission"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print dashboard totals and the contributor table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, done, err := openBackends(cmd)
			if err != nil {
				return err
			}
			defer done()

			subs := submission.NewLoader(deps.Backend, deps.Local, logger).LoadAll(cmd.Context())
			st := stats.Compute(subs)
			w := cmd.OutOrStdout()

			fmt.Fprintf(w, "Datasets:     %d\n", st.TotalDatasets)
			fmt.Fprintf(w, "Contributors: %d\n", st.TotalContributors)
			fmt.Fprintf(w, "Tasks:        %d\n", st.TotalTasks)

			if b := st.DomainBuckets(); len(b) > 0 {
				fmt.Fprintln(w, "\nApplication domains:")
				for _, d := range b {
					fmt.Fprintf(w, "  %-20s %d\n", d.Label, d.Count)
				}
			}
			if b := st.AttributeBuckets(); len(b) > 0 {
				fmt.Fprintln(w, "\nAttribute types:")
				for _, a := range b {
					fmt.Fprintf(w, "  %-20s %d\n", a.Label, a.Count)
				}
			}

			rows := stats.ContributorTable(subs)
			if len(rows) == 0 {
				fmt.Fprintln(w, "\nNo submissions found.")
				return nil
			}
			fmt.Fprintln(w)
			fmt.Fprintf(w, "%-24s  %-32s  %-6s  %-4s  %s\n", "NAME", "EMAIL", "COUNT", "PCT", "SUBJECTS")
			fmt.Fprintf(w, "%-24s  %-32s  %-6s  %-4s  %s\n", "----", "-----", "-----", "---", "--------")
			for _, r := range rows {
				fmt.Fprintf(w, "%-24s  %-32s  %-6d  %-4s  %s\n",
					r.Name, r.Email, r.Contributions, fmt.Sprintf("%d%%", r.Percent), r.Breakdown)
			}
			return nil
		},
	}
}
