package geoassist

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
)

const (
	// DefaultLimit is the result count asked of the provider when Options.Limit <= 0.
	DefaultLimit = 10

	// biasCellLevel snaps proximity biases to roughly 500m cells.
	biasCellLevel = 14
)

// Options narrows an autocomplete lookup.
// Bias and Filter use the provider's syntax, e.g. "proximity:108.22,16.06" or "countrycode:vn".
type Options struct {
	Limit  int
	Bias   string
	Filter string
}

func (o Options) withDefaults() Options {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	o.Bias = strings.TrimSpace(o.Bias)
	o.Filter = strings.TrimSpace(o.Filter)
	return o
}

// Canonical renders the options in the stable form used inside cache keys.
func (o Options) Canonical() string {
	o = o.withDefaults()
	return fmt.Sprintf("{limit:%d,bias:%s,filter:%s}", o.Limit, canonicalBias(o.Bias), canonicalList(o.Filter))
}

// NormalizeQuery lower-cases text, trims it and collapses inner whitespace.
func NormalizeQuery(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// Key is the cache key for a query and its options.
//
// Example:
//
//	geoassist.Key("  Han Market ", geoassist.Options{Limit: 8})
//	// han market_{limit:8,bias:,filter:}
func Key(text string, opts Options) string {
	return NormalizeQuery(text) + "_" + opts.Canonical()
}

func canonicalList(raw string) string {
	if raw == "" {
		return ""
	}
	parts := strings.Split(strings.ToLower(raw), "|")
	out := parts[:0]
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	sort.Strings(out)
	return strings.Join(out, "|")
}

func canonicalBias(raw string) string {
	if raw == "" {
		return ""
	}
	parts := strings.Split(canonicalList(raw), "|")
	for i, part := range parts {
		if !strings.HasPrefix(part, "proximity:") {
			continue
		}
		at, ok := parseLngLat(strings.TrimPrefix(part, "proximity:"))
		if !ok {
			continue
		}
		parts[i] = "proximity:" + cellToken(at, biasCellLevel)
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

// parseLngLat reads the provider's "lon,lat" pair.
func parseLngLat(raw string) (Coordinates, bool) {
	lng, lat, ok := strings.Cut(raw, ",")
	if !ok {
		return Coordinates{}, false
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return Coordinates{}, false
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return Coordinates{}, false
	}
	at := Coordinates{Lat: y, Lng: x}
	return at, at.Valid()
}

func cellToken(at Coordinates, level int) string {
	return s2.CellIDFromLatLng(s2.LatLngFromDegrees(at.Lat, at.Lng)).Parent(level).ToToken()
}
