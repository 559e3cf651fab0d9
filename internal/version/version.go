// Package version holds build metadata stamped in at link time
// via -ldflags "-X .../version.Version=... -X .../version.Commit=...".
package version

import (
	"runtime"
	"time"
)

var (
	Version   = "dev"                           // overridden by the release build
	Commit    = "none"                          // short git SHA
	BuildDate = time.Now().Format(time.RFC3339) // falls back to process start when not stamped
	GoVersion = runtime.Version()
)
