package gateways

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iwmh/droidcfg/internal/domain/entities"
	"github.com/iwmh/droidcfg/internal/domain/interfaces"
	"github.com/iwmh/droidcfg/internal/domain/interfaces/repositories"
	"github.com/iwmh/droidcfg/internal/external-adapters/yaml"
)

// Defaults applied by the Flutter Gradle plugin when nothing overrides them
const (
	DefaultCompileSDK  = 35
	DefaultMinSDK      = 21
	DefaultTargetSDK   = 35
	DefaultVersionCode = 1
	DefaultVersionName = "1.0"
)

// local.properties keys written by the flutter tool
const (
	propVersionCode = "flutter.versionCode"
	propVersionName = "flutter.versionName"
	propMinSDK      = "flutter.minSdkVersion"
	propTargetSDK   = "flutter.targetSdkVersion"
	propCompileSDK  = "flutter.compileSdkVersion"
)

// FlutterVersionProvider resolves SDK levels and the app version the way the Flutter plugin does
type FlutterVersionProvider struct {
	props           repositories.PropertySource
	layout          entities.ProjectLayout
	localProperties string
	logger          interfaces.Logger
}

// NewFlutterVersionProvider creates a provider reading localProperties under the Android root
func NewFlutterVersionProvider(props repositories.PropertySource, layout entities.ProjectLayout, localProperties string, logger interfaces.Logger) *FlutterVersionProvider {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	if localProperties == "" {
		localProperties = "local.properties"
	}
	return &FlutterVersionProvider{
		props:           props,
		layout:          layout,
		localProperties: localProperties,
		logger:          logger,
	}
}

// VersionInfo returns defaults overridden by local.properties, with pubspec.yaml as version fallback
func (p *FlutterVersionProvider) VersionInfo(ctx context.Context, desc *entities.ModuleDescriptor) (entities.VersionInfo, error) {
	info := entities.VersionInfo{
		MinSDK:      DefaultMinSDK,
		TargetSDK:   DefaultTargetSDK,
		CompileSDK:  DefaultCompileSDK,
		VersionCode: DefaultVersionCode,
		VersionName: DefaultVersionName,
	}

	local, err := p.props.Load(ctx, p.layout.RootFile(p.localProperties))
	if err != nil {
		return info, fmt.Errorf("failed to load %s: %w", p.localProperties, err)
	}

	overrides := []struct {
		key string
		dst *int
	}{
		{propMinSDK, &info.MinSDK},
		{propTargetSDK, &info.TargetSDK},
		{propCompileSDK, &info.CompileSDK},
	}
	for _, o := range overrides {
		if err := setInt(local, o.key, o.dst); err != nil {
			return info, err
		}
	}

	if isBlank(local, propVersionCode) || isBlank(local, propVersionName) {
		if err := p.applyPubspec(desc, &info); err != nil {
			return info, err
		}
	}

	if err := setInt(local, propVersionCode, &info.VersionCode); err != nil {
		return info, err
	}
	if name := strings.TrimSpace(local[propVersionName]); name != "" {
		info.VersionName = name
	}

	p.logger.Debug("resolved version info",
		interfaces.F("versionCode", info.VersionCode),
		interfaces.F("versionName", info.VersionName),
		interfaces.F("minSdk", info.MinSDK),
		interfaces.F("targetSdk", info.TargetSDK),
		interfaces.F("compileSdk", info.CompileSDK))

	return info, nil
}

func (p *FlutterVersionProvider) applyPubspec(desc *entities.ModuleDescriptor, info *entities.VersionInfo) error {
	source := "../.."
	if desc != nil && desc.FlutterSource != "" {
		source = desc.FlutterSource
	}
	path := filepath.Join(p.layout.FlutterRoot(source), "pubspec.yaml")

	pv, ok, err := yaml.ParsePubspecFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		p.logger.Debug("pubspec.yaml not found, keeping default version", interfaces.F("path", path))
		return nil
	}
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	info.VersionName = pv.Name
	if pv.Code > 0 {
		info.VersionCode = pv.Code
	}
	return nil
}

func isBlank(props map[string]string, key string) bool {
	return strings.TrimSpace(props[key]) == ""
}

func setInt(props map[string]string, key string, dst *int) error {
	raw, ok := props[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	*dst = v
	return nil
}
