// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Vidscrub is the canonical application identifier used for filesystem paths and CLI branding.
	Vidscrub = "vidscrub"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// ScriptExtension is the file extension of gesture scripts replayed by the simulate command.
	ScriptExtension = ".toml"
)
