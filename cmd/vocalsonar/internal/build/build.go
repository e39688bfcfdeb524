// Package build holds build-time version information injected via ldflags.
//
//	go build -ldflags "-X github.com/RyanBlaney/sonido-vocal/cmd/vocalsonar/internal/build.Version=v1.0.0 \
//	  -X github.com/RyanBlaney/sonido-vocal/cmd/vocalsonar/internal/build.Commit=$(git rev-parse --short HEAD)"
package build

import (
	"fmt"
	"runtime"
)

// These variables are set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is the structured form of the version string
type Info struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
	Go      string `json:"go" yaml:"go"`
}

// Current returns the build information of the running binary
func Current() Info {
	return Info{Version: Version, Commit: Commit, Date: Date, Go: runtime.Version()}
}

// String returns a formatted version string.
func String() string {
	return fmt.Sprintf("vocalsonar %s (%s) built %s %s/%s",
		Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}
