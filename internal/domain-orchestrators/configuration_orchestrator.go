// Package orchestrators coordinates configuration resolution across domain services.
package orchestrators

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwmh/droidcfg/internal/domain/entities"
	"github.com/iwmh/droidcfg/internal/domain/interfaces"
	"github.com/iwmh/droidcfg/internal/domain/interfaces/gateways"
	"github.com/iwmh/droidcfg/internal/domain/interfaces/repositories"
	"github.com/iwmh/droidcfg/internal/domain/services"
)

// ConfigurationOrchestrator resolves the build configuration of the app module
type ConfigurationOrchestrator struct {
	descriptors    repositories.DescriptorRepository
	properties     repositories.PropertySource
	versions       gateways.VersionProvider
	layout         entities.ProjectLayout
	propertiesFile string
	strictSDK      bool
	logger         interfaces.Logger
	newID          func() string
}

// ConfigurationOrchestratorConfig holds configuration for the orchestrator
type ConfigurationOrchestratorConfig struct {
	Layout         entities.ProjectLayout
	PropertiesFile string // overrides the descriptor's signing properties file when set
	StrictSDK      bool
}

// NewConfigurationOrchestrator creates a new configuration orchestrator
func NewConfigurationOrchestrator(
	descriptors repositories.DescriptorRepository,
	properties repositories.PropertySource,
	versions gateways.VersionProvider,
	config ConfigurationOrchestratorConfig,
	logger interfaces.Logger,
) *ConfigurationOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &ConfigurationOrchestrator{
		descriptors:    descriptors,
		properties:     properties,
		versions:       versions,
		layout:         config.Layout,
		propertiesFile: config.PropertiesFile,
		strictSDK:      config.StrictSDK,
		logger:         logger,
		newID:          uuid.NewString,
	}
}

// ResolveResult contains the result of a resolve operation
type ResolveResult struct {
	Config         *entities.BuildConfiguration
	PropertiesPath string
	PropertyCount  int
	SDKViolations  []services.SDKViolation
	Duration       time.Duration
}

// Resolve builds the configuration for variant in a single pass.
// A variant signed with the release config fails here when credentials are incomplete.
func (o *ConfigurationOrchestrator) Resolve(ctx context.Context, variant string) (*ResolveResult, error) {
	start := time.Now()
	id := o.newID()
	result := &ResolveResult{}

	o.logger.Debug("resolving build configuration", interfaces.F("invocation", id), interfaces.F("variant", variant))

	// Step 1: Load module descriptor
	desc, err := o.descriptors.GetDescriptor(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load module descriptor: %w", err)
	}

	// Step 2: Load signing properties (absence tolerated)
	result.PropertiesPath = o.layout.RootFile(o.signingPropertiesFile(desc))
	props, err := o.properties.Load(ctx, result.PropertiesPath)
	if err != nil {
		return result, fmt.Errorf("failed to load signing properties: %w", err)
	}
	result.PropertyCount = len(props)

	// Step 3: Version info from the Flutter toolchain
	versions, err := o.versions.VersionInfo(ctx, desc)
	if err != nil {
		return result, fmt.Errorf("failed to resolve version info: %w", err)
	}

	// Step 4: Select build type
	buildType, err := services.NewBuildTypePolicy(desc.Release).BuildType(variant)
	if err != nil {
		return result, err
	}

	// Step 5: Bind signing; completeness is required only for release signing
	var signing *entities.SigningConfig
	if buildType.SigningConfig == entities.ReleaseSigningConfig {
		binder := services.NewSigningBinder(o.layout.Abs(), result.PropertiesPath)
		signing = binder.Bind(props)
		if err := binder.RequireComplete(signing); err != nil {
			o.logger.Error("release signing config incomplete",
				interfaces.F("invocation", id), interfaces.F("properties", result.PropertiesPath))
			return result, err
		}
	}

	// Step 6: SDK ordering
	result.SDKViolations = services.CheckSDKOrdering(versions)
	if len(result.SDKViolations) > 0 {
		if o.strictSDK {
			return result, services.SDKOrderingError(result.SDKViolations)
		}
		for _, v := range result.SDKViolations {
			o.logger.Warn("sdk levels out of order", interfaces.F("violation", v.String()))
		}
	}

	// Step 7: Dependencies
	deps, err := services.ParseDependencies(desc.Dependencies)
	if err != nil {
		return result, err
	}

	result.Config = &entities.BuildConfiguration{
		InvocationID:  id,
		Namespace:     desc.Namespace,
		ApplicationID: desc.ApplicationID,
		NDKVersion:    desc.NDKVersion,
		JavaVersion:   desc.JavaVersion,
		FlutterSource: o.layout.FlutterRoot(desc.FlutterSource),
		Versions:      versions,
		Variant:       buildType,
		Signing:       signing,
		Dependencies:  deps,
	}
	result.Duration = time.Since(start)

	o.logger.Info("resolved build configuration",
		interfaces.F("invocation", id),
		interfaces.F("variant", variant),
		interfaces.F("applicationId", desc.ApplicationID))

	return result, nil
}

// Signing loads and binds the release signing config without requiring completeness
func (o *ConfigurationOrchestrator) Signing(ctx context.Context) (*entities.SigningConfig, string, error) {
	desc, err := o.descriptors.GetDescriptor(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load module descriptor: %w", err)
	}

	path := o.layout.RootFile(o.signingPropertiesFile(desc))
	props, err := o.properties.Load(ctx, path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to load signing properties: %w", err)
	}

	return services.NewSigningBinder(o.layout.Abs(), path).Bind(props), path, nil
}

// Variants returns every build type the module declares
func (o *ConfigurationOrchestrator) Variants(ctx context.Context) ([]entities.BuildType, error) {
	desc, err := o.descriptors.GetDescriptor(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load module descriptor: %w", err)
	}

	policy := services.NewBuildTypePolicy(desc.Release)
	types := make([]entities.BuildType, 0, len(policy.Variants()))
	for _, name := range policy.Variants() {
		bt, err := policy.BuildType(name)
		if err != nil {
			return nil, err
		}
		types = append(types, bt)
	}
	return types, nil
}

// FlutterRoot returns the absolute flutter project directory of the module
func (o *ConfigurationOrchestrator) FlutterRoot(ctx context.Context) (string, error) {
	desc, err := o.descriptors.GetDescriptor(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load module descriptor: %w", err)
	}
	return o.layout.FlutterRoot(desc.FlutterSource), nil
}

func (o *ConfigurationOrchestrator) signingPropertiesFile(desc *entities.ModuleDescriptor) string {
	if o.propertiesFile != "" {
		return o.propertiesFile
	}
	if desc.PropertiesFile != "" {
		return desc.PropertiesFile
	}
	return "key.properties"
}
