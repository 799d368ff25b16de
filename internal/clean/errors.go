package clean

import "errors"

var (
	// ErrInvalidSamples indicates a sample count outside 1..MaxSamples.
	ErrInvalidSamples = errors.New("clean: samples must be between 1 and 5")

	// ErrInvalidUsers indicates a users file without the required columns.
	ErrInvalidUsers = errors.New("clean: invalid users file")

	// ErrNotIP indicates an anonymous author name that is not an IP address.
	ErrNotIP = errors.New("clean: author name is not an IP address")
)
