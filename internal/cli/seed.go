package cli

import (
	"fmt"

	"github.com/dalemusser/scivishub/internal/app/submission"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Store the sample submissions when none exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, done, err := openBackends(cmd)
			if err != nil {
				return err
			}
			defer done()

			n, err := submission.NewAdmin(deps.Backend, deps.Local, logger).Seed(cmd.Context())
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Submissions already present; nothing seeded.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d sample submissions.\n", n)
			return nil
		},
	}
}
