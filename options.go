package wikiedits

// Option configures a single Extract call.
type Option func(*config)

type config struct {
	length    int
	open      string
	close     string
	tolerance int
}

func defaultConfig() config {
	return config{
		length:    500,
		open:      "<b>",
		close:     "</b>",
		tolerance: 90,
	}
}

// WithLength sets the maximum number of characters kept on each side of the
// edit (default: 500).
func WithLength(n int) Option {
	return func(c *config) {
		c.length = n
	}
}

// WithMarkers sets the strings that delimit the edit (default: "<b>", "</b>").
func WithMarkers(open, close string) Option {
	return func(c *config) {
		c.open = open
		c.close = close
	}
}

// WithOverlapTolerance sets how far, in percent of the edit length, the
// partial passes may shrink the edit (default: 90). Values are clamped to
// 0..100.
func WithOverlapTolerance(pct int) Option {
	return func(c *config) {
		c.tolerance = min(max(pct, 0), 100)
	}
}
