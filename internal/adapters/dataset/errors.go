package dataset

import "errors"

// Sentinel kinds for loading errors. Any of them is fatal at startup.
var (
	ErrOpen          = errors.New("dataset open failed")
	ErrMissingColumn = errors.New("dataset missing column")
	ErrRead          = errors.New("dataset read failed")
)
