// Package geoassistfake provides deterministic test doubles for geoassist:
// a manually advanced Clock, a scripted and gateable Lookup, and a counting
// Store that can simulate an unavailable persistent tier.
package geoassistfake
