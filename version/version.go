// Package version carries the analyst binary's release version.
package version

// Version is stamped by the release build through -ldflags; source builds
// report "dev".
var Version = "dev"

// Get returns the stamped version string.
func Get() string {
	if Version == "" {
		return "dev"
	}
	return Version
}
