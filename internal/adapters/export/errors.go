package export

import "errors"

// Sentinel kinds for export errors.
var (
	ErrNoData        = errors.New("figure has no data to export")
	ErrUnsupported   = errors.New("figure cannot be exported")
	ErrUnknownFormat = errors.New("unknown export format")
	ErrRender        = errors.New("chart render failed")
)
