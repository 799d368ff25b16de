package cli

import (
	"github.com/spf13/cobra"

	"github.com/jamesainslie/wikiedits/internal/merge"
)

// MergeCmd concatenates datasets, tagging each row with its input index.
func MergeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "merge OUTPUT INPUT...",
		Short: "Concatenate datasets with a ConflictType column",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			out, inputs := args[0], args[1:]

			t, err := merge.Files(inputs...)
			if err != nil {
				return err
			}
			if err := t.WriteFile(out); err != nil {
				return err
			}
			a.logger.Info("merged datasets", "inputs", len(inputs), "rows", len(t.Rows), "path", out)
			return nil
		},
	}
}
