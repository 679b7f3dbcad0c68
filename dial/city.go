package dial

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidCity is returned for malformed city specs
var ErrInvalidCity = errors.New("dial: invalid city")

// City is one zone shown on the dial
type City struct {
	ID   string
	Code string // short label, typically three letters
	Zone string // IANA identifier
}

// DefaultCities is the demo set, ordered by label priority
var DefaultCities = []City{
	{ID: "sfo", Code: "SFO", Zone: "America/Los_Angeles"},
	{ID: "nyc", Code: "NYC", Zone: "America/New_York"},
	{ID: "lon", Code: "LON", Zone: "Europe/London"},
	{ID: "ber", Code: "BER", Zone: "Europe/Berlin"},
	{ID: "dxb", Code: "DXB", Zone: "Asia/Dubai"},
	{ID: "del", Code: "DEL", Zone: "Asia/Kolkata"},
	{ID: "sin", Code: "SIN", Zone: "Asia/Singapore"},
	{ID: "tyo", Code: "TYO", Zone: "Asia/Tokyo"},
	{ID: "syd", Code: "SYD", Zone: "Australia/Sydney"},
}

// ParseCities reads "CODE=Zone,CODE=Zone"; the lower-cased code becomes the ID
func ParseCities(spec string) ([]City, error) {
	var cities []City
	seen := make(map[string]bool)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code, zone, ok := strings.Cut(part, "=")
		code, zone = strings.TrimSpace(code), strings.TrimSpace(zone)
		if !ok || code == "" || zone == "" {
			return nil, fmt.Errorf("%w: %q, want CODE=Zone", ErrInvalidCity, part)
		}
		if utf8.RuneCountInString(code) > 4 {
			return nil, fmt.Errorf("%w: code %q longer than 4 letters", ErrInvalidCity, code)
		}
		id := strings.ToLower(code)
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate code %q", ErrInvalidCity, code)
		}
		seen[id] = true
		cities = append(cities, City{ID: id, Code: strings.ToUpper(code), Zone: zone})
	}
	if len(cities) == 0 {
		return nil, fmt.Errorf("%w: no cities in %q", ErrInvalidCity, spec)
	}
	return cities, nil
}
