package dashcheck

import (
	"time"

	"github.com/okian/co2dash/internal/domain/figure"
)

// Config holds configuration for a dashboard check run.
type Config struct {
	BaseURL   string        // Base URL of the dashboard
	Countries int           // Number of countries to walk; 0 walks all
	Workers   int           // Number of concurrent walkers
	Timeout   time.Duration // HTTP request timeout
	Verbose   bool          // Log every walked country
}

// Stats holds run statistics.
type Stats struct {
	CountriesWalked int
	Clicks          int
	Violations      int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}

type wireSelection struct {
	Country *string `json:"country"`
	Year    *int    `json:"year"`
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
}

type callbackResponse struct {
	SessionID string                   `json:"session_id"`
	Selection wireSelection            `json:"selection"`
	Figures   map[string]figure.Figure `json:"figures"`
}

type callbackPoint struct {
	Location string `json:"location,omitempty"`
	X        *int   `json:"x,omitempty"`
}

type callbackRequest struct {
	SessionID string `json:"session_id"`
	Source    string `json:"source"`
	Click     struct {
		Points []callbackPoint `json:"points"`
	} `json:"click"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
