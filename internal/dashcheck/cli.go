package dashcheck

import "os"

// ShowHelp prints usage information for the dashboard check tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`CO2 Dashboard Check
===================

Walks every country of a running dashboard through the callback API and
verifies the linked views: map click, trend year click, then a map click to
another country that must keep the chosen year.

Usage:
  go run ./cmd/dashcheck [options]

Options:
  -url string
        Base URL of the dashboard (default "http://localhost:8050")
  -countries int
        Number of countries to walk, 0 for all (default 0)
  -workers int
        Number of concurrent walkers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Log every walked country
  -help
        Show this help message

Examples:
  # Walk every country
  go run ./cmd/dashcheck

  # Walk 20 countries with 4 workers
  go run ./cmd/dashcheck -countries 20 -workers 4 -url http://localhost:9090
`)
}
