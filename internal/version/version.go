package version

import (
	"runtime"
	"time"
)

// Overridden at build time via -ldflags "-X".
var (
	Version   = "dev"                           // ex: v0.3.0
	Commit    = "none"                          // ex: 9f1c2ab
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2026-10-19T09:12:00Z
	GoVersion = runtime.Version()
)

// String renders the build metadata on one line.
func String() string {
	return Version + " (commit=" + Commit + ", built=" + BuildDate + ", go=" + GoVersion + ")"
}
