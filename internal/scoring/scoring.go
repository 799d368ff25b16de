package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/wikiedits/internal/table"
	"github.com/jamesainslie/wikiedits/similarity"
	"github.com/jamesainslie/wikiedits/tokenizer"
)

// Columns is the column order of the similarity output.
var Columns = []string{"article", "language", "tongue", "factor", "tf", "tfidf", "soft_cosine", "embeddings"}

// Factors of a result row.
const (
	FactorWithin  = 0
	FactorBetween = 1
)

// Input columns read from the dataset.
const (
	colLanguage    = "Language"
	colSeries      = "Series"
	colTongue      = "Tongue"
	colCurrentEdit = "CurrentEdit"
	colParentTitle = "ParentTitle"
)

// Options configures a scoring run.
type Options struct {
	// Output is where results are autosaved after every language. Required
	// for Resume.
	Output string

	// Whitelist keeps only these languages and overrides Blacklist.
	Whitelist []string
	Blacklist []string

	// Resume restarts at this language, appending to the existing Output.
	Resume string

	// Strict skips languages in which no series was edited in two tongues.
	Strict bool

	Embedder similarity.Embedder

	// StopwordsPath is a stopwords-iso JSON file. Empty disables stopword
	// removal.
	StopwordsPath string

	// Workers bounds concurrent pair scoring (default: runtime.NumCPU()).
	Workers int

	Logger *slog.Logger
}

// Run scores input and returns the result table.
func Run(ctx context.Context, input *table.Table, opts Options) (*table.Table, error) {
	for _, c := range []string{colLanguage, colSeries, colTongue, colCurrentEdit} {
		if !input.Has(c) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}
	if opts.Embedder == nil {
		return nil, similarity.ErrNilEmbedder
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	languages := Languages(input, opts.Whitelist, opts.Blacklist)

	output := table.New(Columns...)
	if opts.Resume != "" {
		existing, err := loadExisting(opts.Output)
		if err != nil {
			return nil, err
		}
		if i := slices.Index(languages, opts.Resume); i >= 0 {
			languages = languages[i:]
			output = existing.Filter(func(row int) bool {
				return !slices.Contains(languages, existing.Get(row, "language"))
			})
		} else {
			output = existing
		}
	}

	logger.Info("languages to score", "count", len(languages), "languages", strings.Join(languages, ","))

	r := &runner{input: input, opts: opts, logger: logger, workers: workers}
	for _, lang := range languages {
		if err := ctx.Err(); err != nil {
			return output, err
		}
		if err := r.language(ctx, lang, output); err != nil {
			return output, fmt.Errorf("language %s: %w", lang, err)
		}
		if opts.Output != "" {
			logger.Info("saving results", "language", lang, "path", opts.Output)
			if err := output.WriteFile(opts.Output); err != nil {
				return output, err
			}
		}
	}
	return output, nil
}

func loadExisting(path string) (*table.Table, error) {
	if path == "" {
		return nil, ErrResumeMissing
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrResumeMissing, path)
		}
		return nil, err
	}
	t, err := table.ReadFile(path)
	if err != nil {
		return nil, err
	}
	for _, c := range Columns {
		t.AddColumn(c)
	}
	return t, nil
}

// Languages returns the sorted distinct languages of input after applying
// the whitelist, or the blacklist when there is no whitelist.
func Languages(input *table.Table, whitelist, blacklist []string) []string {
	seen := map[string]bool{}
	var out []string
	for i := range input.Rows {
		lang := input.Get(i, colLanguage)
		if seen[lang] {
			continue
		}
		seen[lang] = true
		switch {
		case len(whitelist) > 0:
			if !slices.Contains(whitelist, lang) {
				continue
			}
		case slices.Contains(blacklist, lang):
			continue
		}
		out = append(out, lang)
	}
	slices.Sort(out)
	return out
}

type runner struct {
	input   *table.Table
	opts    Options
	logger  *slog.Logger
	workers int
}

// group is the edits of one series, by tongue in order of appearance.
type group struct {
	series  string
	title   string
	tongues []string
	edits   map[string][]string
	rows    []taggedEdit
}

type taggedEdit struct {
	tongue string
	edit   string
}

func (r *runner) groups(lang string) []*group {
	var order []*group
	bySeries := map[string]*group{}
	for i := range r.input.Rows {
		if r.input.Get(i, colLanguage) != lang {
			continue
		}
		series := r.input.Get(i, colSeries)
		g, ok := bySeries[series]
		if !ok {
			g = &group{series: series, title: r.input.Get(i, colParentTitle), edits: map[string][]string{}}
			bySeries[series] = g
			order = append(order, g)
		}
		tongue := r.input.Get(i, colTongue)
		if !slices.Contains(g.tongues, tongue) {
			g.tongues = append(g.tongues, tongue)
		}
		if edit, ok := editText(r.input.Get(i, colCurrentEdit)); ok {
			g.edits[tongue] = append(g.edits[tongue], edit)
			g.rows = append(g.rows, taggedEdit{tongue: tongue, edit: edit})
		}
	}
	return order
}

func (r *runner) language(ctx context.Context, lang string, output *table.Table) error {
	groups := r.groups(lang)

	if r.opts.Strict && !slices.ContainsFunc(groups, func(g *group) bool { return len(g.tongues) > 1 }) {
		r.logger.Info("skipping language without bilingual series", "language", lang)
		return nil
	}

	var stop tokenizer.Stopwords
	if r.opts.StopwordsPath != "" {
		var err error
		if stop, err = tokenizer.LoadStopwords(r.opts.StopwordsPath, lang); err != nil {
			return err
		}
	}
	scorer := similarity.NewScorer(r.opts.Embedder, stop)

	r.logger.Info("scoring language", "language", lang, "series", len(groups))
	for _, g := range groups {
		if len(g.tongues) < 2 {
			continue
		}
		r.logger.Debug("scoring series", "series", g.series, "title", g.title)

		for _, t := range g.tongues {
			pairs := combinations(g.edits[t])
			r.logger.Debug("within tongue", "tongue", t, "pairs", len(pairs))
			if err := r.emit(ctx, scorer, output, g.series, lang, t, FactorWithin, pairs); err != nil {
				return err
			}
		}

		// The last tongue is paired with every other edit of the series.
		last := g.tongues[len(g.tongues)-1]
		var others []string
		for _, r := range g.rows {
			if r.tongue != last {
				others = append(others, r.edit)
			}
		}
		pairs := product(g.edits[last], others)
		label := g.tongues[0] + "-" + g.tongues[1]
		r.logger.Debug("between tongues", "tongues", label, "pairs", len(pairs))
		if err := r.emit(ctx, scorer, output, g.series, lang, label, FactorBetween, pairs); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) emit(
	ctx context.Context,
	scorer *similarity.Scorer,
	output *table.Table,
	series, lang, tongue string,
	factor int,
	pairs [][2]string,
) error {
	if len(pairs) == 0 {
		return nil
	}
	scores, err := r.score(ctx, scorer, pairs)
	if err != nil {
		return err
	}

	tf := make([]float64, len(scores))
	tfidf := make([]float64, len(scores))
	soft := make([]float64, len(scores))
	emb := make([]float64, len(scores))
	for i, s := range scores {
		tf[i], tfidf[i], soft[i] = s.TF, s.TFIDF, s.SoftCosine
		emb[i] = math.NaN()
		if s.HasEmbedding {
			emb[i] = s.Embedding
		}
	}

	output.Append(map[string]string{
		"article":     series,
		"language":    lang,
		"tongue":      tongue,
		"factor":      fmt.Sprint(factor),
		"tf":          formatList(tf),
		"tfidf":       formatList(tfidf),
		"soft_cosine": formatList(soft),
		"embeddings":  formatList(emb),
	})
	return nil
}

func (r *runner) score(ctx context.Context, scorer *similarity.Scorer, pairs [][2]string) ([]similarity.Scores, error) {
	out := make([]similarity.Scores, len(pairs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, p := range pairs {
		g.Go(func() error {
			s, err := scorer.Score(ctx, p[0], p[1])
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func combinations(xs []string) [][2]string {
	var out [][2]string
	for i := 0; i < len(xs); i++ {
		for j := i + 1; j < len(xs); j++ {
			out = append(out, [2]string{xs[i], xs[j]})
		}
	}
	return out
}

func product(left, right []string) [][2]string {
	out := make([][2]string, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			out = append(out, [2]string{l, r})
		}
	}
	return out
}
