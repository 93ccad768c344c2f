// Package version exposes the build version of pokedeck.
package version

// version is overridden at build time with
// -ldflags "-X github.com/rshade/pokedeck/pkg/version.version=v1.2.3".
var version = "dev" //nolint:gochecknoglobals // Set via ldflags at build time.

// GetVersion returns the build version, or "dev" for local builds.
func GetVersion() string {
	if version == "" {
		return "dev"
	}
	return version
}
