package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goforj/geoassist"
	"github.com/mattn/go-isatty"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printPlaces writes a numbered list for terminals and one JSON object per
// line otherwise, so output can be piped into jq.
func printPlaces(w io.Writer, places []geoassist.Place) error {
	if !isTerminal(w) {
		enc := json.NewEncoder(w)
		for _, p := range places {
			if err := enc.Encode(p); err != nil {
				return err
			}
		}
		return nil
	}
	for i, p := range places {
		if _, err := fmt.Fprintf(w, "%2d. %s\n    %s  (%s)\n", i+1, p.Name, p.FormattedAddress, p.Coordinates); err != nil {
			return err
		}
	}
	return nil
}

func printPlace(w io.Writer, p geoassist.Place) error {
	return printPlaces(w, []geoassist.Place{p})
}
