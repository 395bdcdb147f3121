// Package selection models the dashboard's linked-view state: the country
// picked on the map and the year picked on the trend chart.
//
// A Selection is an immutable value. Each click produces a new Selection via
// Apply; the two fields are set by disjoint event sources and are never
// cross-validated, so a year chosen while viewing one country stays selected
// after the map switches to another country.
package selection

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Selection is the current linked-view state.
type Selection struct {
	country    string
	year       int
	hasCountry bool
	hasYear    bool
}

// Initial returns the empty selection a session starts with.
func Initial() Selection { return Selection{} }

// New builds a selection from optional fields; nil means unset.
func New(country *string, year *int) Selection {
	var s Selection
	if country != nil {
		s.country, s.hasCountry = *country, true
	}
	if year != nil {
		s.year, s.hasYear = *year, true
	}
	return s
}

// Country returns the selected country and whether one is set.
func (s Selection) Country() (string, bool) { return s.country, s.hasCountry }

// Year returns the selected year and whether one is set.
func (s Selection) Year() (int, bool) { return s.year, s.hasYear }

// WithCountry returns a copy with the country overwritten.
func (s Selection) WithCountry(country string) Selection {
	s.country, s.hasCountry = country, true
	return s
}

// WithYear returns a copy with the year overwritten.
func (s Selection) WithYear(year int) Selection {
	s.year, s.hasYear = year, true
	return s
}

// String renders the selection for logs.
func (s Selection) String() string {
	c, y := "-", "-"
	if s.hasCountry {
		c = s.country
	}
	if s.hasYear {
		y = fmt.Sprint(s.year)
	}
	return fmt.Sprintf("{country=%s year=%s}", c, y)
}

type wireSelection struct {
	Country *string `json:"country"`
	Year    *int    `json:"year"`
}

// MarshalJSON encodes unset fields as null.
func (s Selection) MarshalJSON() ([]byte, error) {
	var w wireSelection
	if c, ok := s.Country(); ok {
		w.Country = &c
	}
	if y, ok := s.Year(); ok {
		w.Year = &y
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes null or absent fields as unset.
func (s *Selection) UnmarshalJSON(b []byte) error {
	var w wireSelection
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.Country != nil && strings.TrimSpace(*w.Country) == "" {
		w.Country = nil
	}
	*s = New(w.Country, w.Year)
	return nil
}
