// Package config defines dashboard configuration and its loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load layers defaults, an optional YAML file and CO2DASH_ env vars.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8050".
	Addr string `koanf:"addr"`

	// EmissionsPath points at the country-year emissions CSV.
	EmissionsPath string `koanf:"emissions_path"`

	// SectorsPath points at the country-year-sector CSV.
	SectorsPath string `koanf:"sectors_path"`

	// Delimiter is the field separator of both files.
	Delimiter string `koanf:"delimiter"`

	// YearMin and YearMax bound the supported year range (inclusive).
	YearMin int `koanf:"year_min"`
	YearMax int `koanf:"year_max"`

	// SessionCapacity bounds the number of browser sessions kept in memory.
	SessionCapacity int `koanf:"session_capacity"`

	// ExportWidth and ExportHeight size the server-side chart exports in pixels.
	ExportWidth  int `koanf:"export_width"`
	ExportHeight int `koanf:"export_height"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8050",
		EmissionsPath:   "data/annual-co-emissions-by-region.csv",
		SectorsPath:     "data/co-emissions-by-sector.csv",
		Delimiter:       ",",
		YearMin:         1990,
		YearMax:         2020,
		SessionCapacity: 10_000,
		ExportWidth:     1024,
		ExportHeight:    512,
	}
}
