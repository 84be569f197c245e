// Package version exposes build metadata injected with -ldflags.
package version

import "fmt"

// Overridden at build time:
//
//	-ldflags "-X cabinet/internal/shared/version.Current=v1.2.0 -X cabinet/internal/shared/version.Commit=abc123"
var (
	Current = "dev"
	Commit  = "unknown"
)

// String renders "v1.2.0 (abc123)".
func String() string {
	return fmt.Sprintf("%s (%s)", Current, Commit)
}
