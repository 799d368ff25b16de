package scoring

import "errors"

var (
	// ErrResumeMissing indicates a resume without an existing output file.
	ErrResumeMissing = errors.New("scoring: cannot resume, output does not exist")

	// ErrMissingColumn indicates an input dataset without a required column.
	ErrMissingColumn = errors.New("scoring: input is missing a column")
)
