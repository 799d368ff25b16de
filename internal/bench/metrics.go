package bench

import "github.com/jamesainslie/wikiedits"

// Config holds evaluation parameters.
type Config struct {
	Length          int
	Open            string
	Close           string
	Tolerance       int // overlap tolerance in percent
	PrecisionWeight float64
	RecallWeight    float64
	ExactWeight     float64
}

// DefaultConfig returns default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		Length:          500,
		Open:            "<b>",
		Close:           "</b>",
		Tolerance:       90,
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
		ExactWeight:     1.0,
	}
}

func (c Config) options() []wikiedits.Option {
	return []wikiedits.Option{
		wikiedits.WithLength(c.Length),
		wikiedits.WithMarkers(c.Open, c.Close),
		wikiedits.WithOverlapTolerance(c.Tolerance),
	}
}

// Metrics holds evaluation results. A hit is a case where Extract found a
// context; it is a true positive when the case expects one.
type Metrics struct {
	Cases          int
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Exact          int
	HitRate        float64
	Precision      float64
	Recall         float64
	F1             float64
	ExactRate      float64
	WeightedScore  float64
}

// Outcome is the result of one case.
type Outcome struct {
	Case Case
	Got  string
}

// Hit reports whether Extract found a context.
func (o Outcome) Hit() bool { return o.Got != "" }

// Exact reports whether Extract returned the expected output.
func (o Outcome) Exact() bool { return o.Got == o.Case.Want }

// Run extracts every case with cfg.
func Run(cases []Case, cfg Config) []Outcome {
	opts := cfg.options()
	out := make([]Outcome, len(cases))
	for i, c := range cases {
		out[i] = Outcome{Case: c, Got: wikiedits.Extract(c.Edit, c.Text, opts...)}
	}
	return out
}

// Evaluate runs cases with cfg and scores the outcomes.
func Evaluate(cases []Case, cfg Config) Metrics {
	return Score(Run(cases, cfg), cfg)
}

// Score aggregates outcomes into metrics.
func Score(outcomes []Outcome, cfg Config) Metrics {
	m := Metrics{Cases: len(outcomes)}
	hits := 0
	for _, o := range outcomes {
		expected := o.Case.Want != ""
		switch {
		case o.Hit() && expected:
			m.TruePositives++
		case o.Hit():
			m.FalsePositives++
		case expected:
			m.FalseNegatives++
		}
		if o.Hit() {
			hits++
		}
		if o.Exact() {
			m.Exact++
		}
	}

	tp, fp, fn := m.TruePositives, m.FalsePositives, m.FalseNegatives
	if m.Cases > 0 {
		m.HitRate = float64(hits) / float64(m.Cases)
		m.ExactRate = float64(m.Exact) / float64(m.Cases)
	}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}

	wp, wr, we := cfg.PrecisionWeight, cfg.RecallWeight, cfg.ExactWeight
	if wp+wr+we > 0 {
		m.WeightedScore = (wp*m.Precision + wr*m.Recall + we*m.ExactRate) / (wp + wr + we)
	}

	return m
}
