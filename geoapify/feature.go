package geoapify

import (
	"strings"

	"github.com/goforj/geoassist"
)

const unknownPlaceName = "Unknown Place"

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Properties properties `json:"properties"`
	Geometry   struct {
		// Coordinates are [lon, lat].
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
}

type properties struct {
	Name        string  `json:"name"`
	Street      string  `json:"street"`
	HouseNumber string  `json:"housenumber"`
	Suburb      string  `json:"suburb"`
	City        string  `json:"city"`
	Formatted   string  `json:"formatted"`
	PlaceID     string  `json:"place_id"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// places converts features, dropping any without usable coordinates.
func (fc *featureCollection) places() []geoassist.Place {
	out := make([]geoassist.Place, 0, len(fc.Features))
	for _, f := range fc.Features {
		if p, ok := f.place(); ok {
			out = append(out, p)
		}
	}
	return out
}

func (f feature) place() (geoassist.Place, bool) {
	var at geoassist.Coordinates
	if len(f.Geometry.Coordinates) >= 2 {
		at = geoassist.Coordinates{Lat: f.Geometry.Coordinates[1], Lng: f.Geometry.Coordinates[0]}
	} else {
		at = geoassist.Coordinates{Lat: f.Properties.Lat, Lng: f.Properties.Lon}
	}
	if !at.Valid() {
		return geoassist.Place{}, false
	}
	address := geoassist.FormatAddress(f.Properties.Formatted)
	return geoassist.Place{
		ID:               f.Properties.PlaceID,
		Name:             f.Properties.displayName(),
		Address:          address,
		Coordinates:      at,
		FormattedAddress: address,
	}, true
}

func (p properties) displayName() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	if street := strings.TrimSpace(p.Street); street != "" {
		if num := strings.TrimSpace(p.HouseNumber); num != "" {
			return num + " " + street
		}
		return street
	}
	for _, s := range []string{p.Suburb, p.City} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return unknownPlaceName
}
