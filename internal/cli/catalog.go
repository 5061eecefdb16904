package cli

import (
	"fmt"
	"os"

	"github.com/dalemusser/scivishub/internal/app/catalog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the test-case catalog",
	}
	cmd.AddCommand(newCatalogReportCmd())
	return cmd
}

func newCatalogReportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the catalog statistics report as markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(afero.NewOsFs(), appCfg.CatalogManifest, logger)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			report := catalog.Analyze(cat)
			md := report.Markdown()

			if out == "" || out == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}
			if err := os.WriteFile(out, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote catalog report (%d cases) to %s\n", report.TotalCases, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}
