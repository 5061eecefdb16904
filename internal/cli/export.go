package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/dalemusser/scivishub/internal/app/submission"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every submission as JSON",
		Long:  "Export writes every submission, newest first, as an indented JSON array. Use --out - to write to stdout.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, done, err := openBackends(cmd)
			if err != nil {
				return err
			}
			defer done()

			admin := submission.NewAdmin(deps.Backend, deps.Local, logger)
			if out == "-" {
				_, err := admin.Export(cmd.Context(), cmd.OutOrStdout())
				return err
			}

			if out == "" {
				out = submission.ExportFileName(time.Now())
			}
			n, err := exportToFile(cmd, admin, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d submissions to %s\n", n, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default scivisagentbench-submissions-<unixms>.json, - for stdout)")
	return cmd
}

func exportToFile(cmd *cobra.Command, admin *submission.Admin, path string) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	n, err := admin.Export(cmd.Context(), f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("export to %s: %w", path, err)
	}
	return n, nil
}
