package cli

import (
	"errors"
	"fmt"

	"github.com/dalemusser/scivishub/internal/app/submission"
	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <submission-id>",
		Short: "Delete a submission and its files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, done, err := openBackends(cmd)
			if err != nil {
				return err
			}
			defer done()

			id := args[0]
			err = submission.NewAdmin(deps.Backend, deps.Local, logger).Delete(cmd.Context(), id)
			if errors.Is(err, submission.ErrNotFound) {
				return fmt.Errorf("submission %s not found", id)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			return nil
		},
	}
}
