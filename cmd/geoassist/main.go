package main

import (
	"fmt"
	"runtime"
)

// Version information, set by the release build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	Execute()
}

func versionString() string {
	return fmt.Sprintf("geoassist %s (%s, %s, %s)", version, commit[:min(7, len(commit))], date, runtime.Version())
}
