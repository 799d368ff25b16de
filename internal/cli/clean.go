package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/wikiedits/internal/clean"
	"github.com/jamesainslie/wikiedits/internal/store"
)

// CleanCmd assigns series, attributes authors and flags meaningful edits.
func CleanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Assign series, attribute authors and flag meaningful edits",
		Long: `Clean the edit database in place.

Registered authors are attributed from a users CSV (--users) with Author,
Language and Country columns. Without one, authors named by an IP address are
located with a GeoLite2 country database (--geoip).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()
			c := a.cfg.Clean
			overrideInt(flags, "samples", &c.Samples)
			overrideString(flags, "users", &c.Users)
			overrideString(flags, "geoip", &c.GeoIP)

			opts := clean.Options{Samples: c.Samples, Logger: a.logger}
			switch {
			case c.Users != "":
				users, err := clean.ReadUsersFile(c.Users)
				if err != nil {
					return err
				}
				if users == nil {
					users = []store.Author{}
				}
				opts.Users = users
			case c.GeoIP != "":
				geo, err := clean.OpenGeoIP(c.GeoIP)
				if err != nil {
					return err
				}
				defer func() { _ = geo.Close() }()
				opts.Locator = geo
			default:
				return errors.New("one of --users or --geoip is required")
			}

			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			report, err := clean.Run(ctx, st, opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "series: %d\nauthors: %d\nedits: %d\nflagged: %d\n",
				report.Series, report.Authors, report.Edits, report.Flagged)
			return err
		},
	}

	flags := cmd.Flags()
	flags.Int("samples", 0, "samples checked per edit (1-5)")
	flags.String("users", "", "registered users CSV")
	flags.String("geoip", "", "GeoLite2 country database")
	cmd.MarkFlagsMutuallyExclusive("users", "geoip")

	return cmd
}
