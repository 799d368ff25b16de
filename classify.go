package wikiedits

// Kind classifies an edit by which of its two sides carry text. The numeric
// values are stored in the Type column of generated datasets.
type Kind int

const (
	NoOp      Kind = iota // neither side has text
	Insertion             // only the updated side has text
	Revision              // both sides have text
	Deletion              // only the previous side has text
)

func (k Kind) String() string {
	switch k {
	case NoOp:
		return "noop"
	case Insertion:
		return "insertion"
	case Revision:
		return "revision"
	case Deletion:
		return "deletion"
	default:
		return "unknown"
	}
}

// Classify returns the kind of an edit from its updated and previous text.
func Classify(updated, previous string) Kind {
	switch {
	case updated != "" && previous == "":
		return Insertion
	case updated != "" && previous != "":
		return Revision
	case updated == "" && previous != "":
		return Deletion
	default:
		return NoOp
	}
}
