// Package entities defines core domain models and data structures.
package entities

// OutputFormat is the kind of distributable the toolchain produces
type OutputFormat string

// Release output formats produced by the Flutter Android toolchain
const (
	FormatAPK OutputFormat = "apk"
	FormatAAB OutputFormat = "aab"
)

// Artifact represents a build output located on disk
type Artifact struct {
	Name    string
	Variant string
	Format  OutputFormat
	Path    string
	Type    string // "bundle", "checksum", "signature"
}
