package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/wikiedits/internal/dataset"
)

const dateLayout = "2006-01-02"

// DatasetCmd builds the bilingual edit dataset from a cleaned database.
func DatasetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Build the edit dataset from a cleaned database",
		Long: `Build the edit dataset and write it to --output as a semicolon separated
CSV, or as an Excel workbook when the path ends in .xlsx.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()
			d := a.cfg.Dataset
			overrideString(flags, "date", &d.Until)
			overrideBool(flags, "google", &d.Google)
			overrideString(flags, "output", &d.Output)
			if d.Output == "" {
				d.Output = "dataset.csv"
			}

			until, err := parseUntil(d.Until, time.Now())
			if err != nil {
				return err
			}

			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			rows, err := dataset.Build(ctx, st, dataset.Options{
				Until:   until,
				Google:  d.Google,
				Extract: a.cfg.Context.Options(),
				Logger:  a.logger,
			})
			if err != nil {
				return err
			}

			t, err := dataset.Table(rows, d.Google)
			if err != nil {
				return err
			}
			if err := t.WriteFile(d.Output); err != nil {
				return err
			}
			a.logger.Info("dataset written", "rows", len(rows), "path", d.Output)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("date", "", "last day included, YYYY-MM-DD (default: now)")
	flags.Bool("google", false, "add GOOGLETRANSLATE formula columns")
	flags.StringP("output", "o", "", "output file, .csv or .xlsx (default: dataset.csv)")

	return cmd
}

// parseUntil returns the end of the given day, or now when day is empty.
func parseUntil(day string, now time.Time) (time.Time, error) {
	if day == "" {
		return now, nil
	}
	t, err := time.ParseInLocation(dateLayout, day, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", day, err)
	}
	return dataset.EndOfDay(t), nil
}
