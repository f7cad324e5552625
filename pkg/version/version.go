// Package version exposes the build version of the pokedex binary.
package version

import "runtime/debug"

// version is set at build time via:
//
//	go build -ldflags "-X github.com/rshade/pokedex/pkg/version.version=v1.2.3"
//
//nolint:gochecknoglobals // Overwritten by the linker.
var version = "dev"

// GetVersion returns the linker-provided version, falling back to the module
// version recorded in the build info and finally to "dev".
func GetVersion() string {
	if version != "dev" && version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return "dev"
}
