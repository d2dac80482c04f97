package entities

// Build variant names
const (
	VariantDebug   = "debug"
	VariantProfile = "profile"
	VariantRelease = "release"
)

// ProguardFile is a rule file handed to the code shrinker
type ProguardFile struct {
	Path    string
	Default bool // toolchain-provided default rule set, resolved by the build tool
}

// BuildType is a named configuration profile selecting flags and signing
type BuildType struct {
	Name            string
	MinifyEnabled   bool
	ShrinkResources bool
	ProguardFiles   []ProguardFile
	SigningConfig   string
}
