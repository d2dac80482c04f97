package services

import (
	"fmt"

	"github.com/iwmh/droidcfg/internal/domain/entities"
)

// BuildTypePolicy declares the flags applied to each build variant
type BuildTypePolicy struct {
	releaseRules []entities.ProguardFile
}

// NewBuildTypePolicy creates a policy whose release variant uses rules in order
func NewBuildTypePolicy(rules entities.ReleaseRules) *BuildTypePolicy {
	return &BuildTypePolicy{releaseRules: rules.ProguardFiles}
}

// Variants returns the known variant names in declaration order
func (p *BuildTypePolicy) Variants() []string {
	return []string{entities.VariantDebug, entities.VariantProfile, entities.VariantRelease}
}

// BuildType returns the build type for a variant name
func (p *BuildTypePolicy) BuildType(variant string) (entities.BuildType, error) {
	switch variant {
	case entities.VariantRelease:
		rules := make([]entities.ProguardFile, len(p.releaseRules))
		copy(rules, p.releaseRules)
		return entities.BuildType{
			Name:            entities.VariantRelease,
			MinifyEnabled:   true,
			ShrinkResources: true,
			ProguardFiles:   rules,
			SigningConfig:   entities.ReleaseSigningConfig,
		}, nil
	case entities.VariantDebug, entities.VariantProfile:
		return entities.BuildType{
			Name:          variant,
			SigningConfig: entities.DebugSigningConfig,
		}, nil
	default:
		return entities.BuildType{}, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
}

// DefaultReleaseRules returns the optimized default rule set followed by the module override
func DefaultReleaseRules() entities.ReleaseRules {
	return entities.ReleaseRules{
		ProguardFiles: []entities.ProguardFile{
			{Path: "proguard-android-optimize.txt", Default: true},
			{Path: "proguard-rules.pro"},
		},
	}
}
