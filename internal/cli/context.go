package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/wikiedits"
)

// ContextCmd prints the context of an edit within a revision text.
func ContextCmd(a *app) *cobra.Command {
	var compareEdit, compareFile string

	cmd := &cobra.Command{
		Use:   "context EDIT FILE",
		Short: "Extract the context of an edit from a revision text",
		Long: `Extract the context of EDIT from the text in FILE ("-" reads stdin).

With --compare-edit and --compare-file a second context is extracted and the
token overlap of both contexts is printed as well.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			c := a.cfg.Context
			overrideInt(flags, "length", &c.Length)
			overrideInt(flags, "tolerance", &c.Tolerance)
			overrideString(flags, "open", &c.Open)
			overrideString(flags, "close", &c.Close)
			opts := c.Options()

			text, err := readText(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}
			current := wikiedits.Extract(args[0], text, opts...)

			out := cmd.OutOrStdout()
			if compareFile == "" {
				_, err := fmt.Fprintln(out, current)
				return err
			}

			other, err := readText(cmd.InOrStdin(), compareFile)
			if err != nil {
				return err
			}
			previous := wikiedits.Extract(compareEdit, other, opts...)

			fmt.Fprintf(out, "current:  %s\n", current)
			fmt.Fprintf(out, "previous: %s\n", previous)
			overlap, err := wikiedits.TokenOverlap(current, previous)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "overlap:  %.4f\n", overlap)
			return err
		},
	}

	flags := cmd.Flags()
	flags.Int("length", 0, "characters kept on each side of the edit")
	flags.Int("tolerance", 0, "overlap tolerance in percent")
	flags.String("open", "", "opening edit marker")
	flags.String("close", "", "closing edit marker")
	flags.StringVar(&compareEdit, "compare-edit", "", "edit to extract from the comparison text")
	flags.StringVar(&compareFile, "compare-file", "", "comparison revision text")
	cmd.MarkFlagsRequiredTogether("compare-edit", "compare-file")

	return cmd
}

func readText(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
