package cli

import (
	"github.com/spf13/cobra"
)

// MigrateCmd creates or upgrades the edit database schema.
func MigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the edit database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			if err := st.Migrate(ctx); err != nil {
				return err
			}
			a.logger.Info("database ready", "path", a.cfg.Store.Path)
			return nil
		},
	}
}
