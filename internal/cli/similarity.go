package cli

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/wikiedits/inference"
	"github.com/jamesainslie/wikiedits/internal/scoring"
	"github.com/jamesainslie/wikiedits/internal/table"
)

// SimilarityCmd scores the edits of a dataset pairwise.
func SimilarityCmd(a *app) *cobra.Command {
	var (
		output    string
		whitelist []string
		blacklist []string
		resume    string
	)

	cmd := &cobra.Command{
		Use:   "similarity DATASET",
		Short: "Score edit pairs of a dataset with four similarity measures",
		Long: `Score every pair of edits within a series: pairs by authors of the same
tongue (factor 0) and pairs across tongues (factor 1). Results are saved to
--output after every language, so an interrupted run can continue with
--resume LANGUAGE.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()
			s := a.cfg.Similarity
			overrideString(flags, "model", &s.Model)
			overrideString(flags, "tokenizer", &s.Tokenizer)
			overrideString(flags, "library", &s.Library)
			overrideString(flags, "stopwords", &s.Stopwords)
			overrideInt(flags, "workers", &s.Workers)
			overrideBool(flags, "strict", &s.Strict)
			if s.Model == "" || s.Tokenizer == "" {
				return errors.New("--model and --tokenizer are required")
			}
			if output == "" {
				output = defaultScoresPath(args[0])
			}

			input, err := table.ReadFile(args[0])
			if err != nil {
				return err
			}

			inference.SetLibraryPath(s.Library)
			embedder, err := inference.NewEmbedder(s.Model, s.Tokenizer,
				inference.WithPoolSize(s.PoolSize),
				inference.WithCacheSize(s.CacheSize),
				inference.WithMaxSeqLen(s.MaxSeqLen),
				inference.WithOutputName(s.OutputName),
				inference.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			defer func() { _ = embedder.Close() }()

			_, err = scoring.Run(ctx, input, scoring.Options{
				Output:        output,
				Whitelist:     whitelist,
				Blacklist:     blacklist,
				Resume:        resume,
				Strict:        s.Strict,
				Embedder:      embedder,
				StopwordsPath: s.Stopwords,
				Workers:       s.Workers,
				Logger:        a.logger,
			})
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "scores CSV (default: DATASET_similarity.csv)")
	flags.StringSliceVar(&whitelist, "whitelist", nil, "only score these languages")
	flags.StringSliceVar(&blacklist, "blacklist", nil, "skip these languages")
	flags.StringVar(&resume, "resume", "", "continue an interrupted run at this language")
	flags.Bool("strict", false, "skip languages without a series edited in two tongues")
	flags.String("model", "", "ONNX sentence embedding model")
	flags.String("tokenizer", "", "SentencePiece tokenizer model")
	flags.String("library", "", "ONNX Runtime shared library")
	flags.String("stopwords", "", "stopwords-iso JSON file")
	flags.Int("workers", 0, "concurrent pair scorers")

	return cmd
}

func defaultScoresPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_similarity.csv"
}
