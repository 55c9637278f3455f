package geoassist

import (
	"github.com/golang/geo/s2"
)

// reverseCellLevel groups reverse lookups into roughly 10m cells.
const reverseCellLevel = 20

// ReverseKey is the cache key for a reverse lookup at the given point.
func ReverseKey(at Coordinates) string {
	return "reverse_" + cellToken(at, reverseCellLevel)
}

// Nearest returns the place closest to at. Places with invalid coordinates are skipped.
func Nearest(at Coordinates, places []Place) (Place, bool) {
	if !at.Valid() {
		return Place{}, false
	}
	origin := s2.LatLngFromDegrees(at.Lat, at.Lng)
	var (
		best     Place
		found    bool
		bestDist float64
	)
	for _, p := range places {
		if !p.Coordinates.Valid() {
			continue
		}
		dist := float64(origin.Distance(s2.LatLngFromDegrees(p.Coordinates.Lat, p.Coordinates.Lng)))
		if !found || dist < bestDist {
			best, bestDist, found = p, dist, true
		}
	}
	return best, found
}
