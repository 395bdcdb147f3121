package selection

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Source identifies the figure that received a click.
type Source string

// Click sources.
const (
	SourceMap   Source = "map"
	SourceTrend Source = "trend"
)

// Sentinel kinds for click handling.
var (
	ErrUnknownSource = errors.New("unknown click source")
	ErrInvalidClick  = errors.New("invalid click")
)

// ParseSource validates a source name.
func ParseSource(name string) (Source, error) {
	switch s := Source(strings.ToLower(strings.TrimSpace(name))); s {
	case SourceMap, SourceTrend:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
}

// Point is one clicked point in the browser's click payload. Map clicks
// carry the region in Location; trend clicks carry the year in X.
type Point struct {
	Location string          `json:"location,omitempty"`
	X        json.RawMessage `json:"x,omitempty"`
}

// ClickData is the payload a chart reports on click; only the first point is used.
type ClickData struct {
	Points []Point `json:"points"`
}

// Click is a click event on one of the interactive figures.
type Click struct {
	Source Source    `json:"source"`
	Data   ClickData `json:"click"`
}

// MapClick builds the click the map reports for country.
func MapClick(country string) Click {
	return Click{Source: SourceMap, Data: ClickData{Points: []Point{{Location: country}}}}
}

// TrendClick builds the click the trend chart reports for year.
func TrendClick(year int) Click {
	return Click{Source: SourceTrend, Data: ClickData{Points: []Point{{X: json.RawMessage(strconv.Itoa(year))}}}}
}

// Apply reduces a click into a new selection. On error the input selection
// is returned unchanged.
func Apply(s Selection, c Click) (Selection, error) {
	if len(c.Data.Points) == 0 {
		return s, fmt.Errorf("%w: %s click without points", ErrInvalidClick, c.Source)
	}
	p := c.Data.Points[0]
	switch c.Source {
	case SourceMap:
		country := strings.TrimSpace(p.Location)
		if country == "" {
			return s, fmt.Errorf("%w: map click without location", ErrInvalidClick)
		}
		return s.WithCountry(country), nil
	case SourceTrend:
		year, err := parseYear(p.X)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrInvalidClick, err)
		}
		return s.WithYear(year), nil
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownSource, c.Source)
	}
}

// parseYear accepts 2005, 2005.0 and "2005".
func parseYear(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, errors.New("trend click without x")
	}
	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, err
		}
	} else {
		text = string(raw)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("x %s is not a year", raw)
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("x %s is not a year", raw)
	}
	return int(f), nil
}
