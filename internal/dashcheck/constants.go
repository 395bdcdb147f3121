package dashcheck

// Figure ids as they appear in callback responses.
const (
	figureMap    = "map"
	figureTrend  = "trend"
	figureSector = "sector"
)

// Click sources.
const (
	sourceMap   = "map"
	sourceTrend = "trend"
)

// Walker configuration constants.
const (
	WorkerMultiplier = 2
	maxErrorBody     = 4 << 10
)
