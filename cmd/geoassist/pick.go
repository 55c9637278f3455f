package main

import (
	"github.com/goforj/geoassist"
	"github.com/sahilm/fuzzy"
)

// placeSource implements fuzzy.Source over places.
type placeSource []geoassist.Place

func (s placeSource) String(i int) string { return s[i].Name + " " + s[i].FormattedAddress }
func (s placeSource) Len() int            { return len(s) }

// pickPlace returns the best fuzzy match for pattern.
func pickPlace(pattern string, places []geoassist.Place) (geoassist.Place, bool) {
	matches := fuzzy.FindFrom(pattern, placeSource(places))
	if len(matches) == 0 {
		return geoassist.Place{}, false
	}
	return places[matches[0].Index], true
}
