// Package yaml provides YAML-based descriptor and pubspec parsing.
package yaml

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/iwmh/droidcfg/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

//go:embed default_descriptor.yml
var defaultDescriptor []byte

// yamlDescriptor represents the raw YAML structure
type yamlDescriptor struct {
	Namespace     string           `yaml:"namespace"`
	ApplicationID string           `yaml:"application_id"`
	NDKVersion    string           `yaml:"ndk_version"`
	JavaVersion   int              `yaml:"java_version"`
	Flutter       yamlFlutter      `yaml:"flutter"`
	Signing       yamlSigning      `yaml:"signing"`
	Release       yamlRelease      `yaml:"release"`
	Dependencies  []yamlDependency `yaml:"dependencies"`
}

type yamlFlutter struct {
	Source string `yaml:"source"`
}

type yamlSigning struct {
	PropertiesFile string `yaml:"properties_file"`
}

type yamlRelease struct {
	ProguardFiles []yamlProguardFile `yaml:"proguard_files"`
}

type yamlProguardFile struct {
	Default string `yaml:"default"`
	Path    string `yaml:"path"`
}

type yamlDependency struct {
	Configuration string `yaml:"configuration"`
	Notation      string `yaml:"notation"`
}

// DescriptorParser parses module descriptor files
type DescriptorParser struct{}

// NewDescriptorParser creates a new YAML parser
func NewDescriptorParser() *DescriptorParser {
	return &DescriptorParser{}
}

// ParseFile parses a YAML descriptor file into a ModuleDescriptor entity
func (p *DescriptorParser) ParseFile(filePath string) (*entities.ModuleDescriptor, error) {
	//nolint:gosec // G304: filePath is the descriptor path inside the project
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// ParseDefault parses the embedded descriptor of the app module
func (p *DescriptorParser) ParseDefault() (*entities.ModuleDescriptor, error) {
	return p.Parse(defaultDescriptor)
}

// Parse parses YAML bytes into a ModuleDescriptor entity
func (p *DescriptorParser) Parse(data []byte) (*entities.ModuleDescriptor, error) {
	var raw yamlDescriptor
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate required fields
	if raw.ApplicationID == "" {
		return nil, fmt.Errorf("descriptor must have an application_id")
	}
	if raw.Namespace == "" {
		raw.Namespace = raw.ApplicationID
	}
	if raw.JavaVersion == 0 {
		raw.JavaVersion = 11
	}
	if raw.Flutter.Source == "" {
		raw.Flutter.Source = "../.."
	}
	if raw.Signing.PropertiesFile == "" {
		raw.Signing.PropertiesFile = "key.properties"
	}
	if err := inheritEmbedded(&raw); err != nil {
		return nil, err
	}

	rules, err := convertRelease(raw.Release)
	if err != nil {
		return nil, err
	}

	return &entities.ModuleDescriptor{
		Namespace:      raw.Namespace,
		ApplicationID:  raw.ApplicationID,
		NDKVersion:     raw.NDKVersion,
		JavaVersion:    raw.JavaVersion,
		FlutterSource:  raw.Flutter.Source,
		PropertiesFile: raw.Signing.PropertiesFile,
		Release:        rules,
		Dependencies:   convertDependencies(raw.Dependencies),
	}, nil
}

// inheritEmbedded fills the toolchain fields an override leaves out from the embedded descriptor
func inheritEmbedded(raw *yamlDescriptor) error {
	if raw.NDKVersion != "" && len(raw.Release.ProguardFiles) > 0 && len(raw.Dependencies) > 0 {
		return nil
	}

	var base yamlDescriptor
	if err := yaml.Unmarshal(defaultDescriptor, &base); err != nil {
		return fmt.Errorf("failed to parse embedded descriptor: %w", err)
	}
	if raw.NDKVersion == "" {
		raw.NDKVersion = base.NDKVersion
	}
	if len(raw.Release.ProguardFiles) == 0 {
		raw.Release.ProguardFiles = base.Release.ProguardFiles
	}
	if len(raw.Dependencies) == 0 {
		raw.Dependencies = base.Dependencies
	}
	return nil
}

func convertRelease(yr yamlRelease) (entities.ReleaseRules, error) {
	files := make([]entities.ProguardFile, 0, len(yr.ProguardFiles))
	for i, f := range yr.ProguardFiles {
		switch {
		case f.Default != "" && f.Path != "":
			return entities.ReleaseRules{}, fmt.Errorf("proguard_files[%d]: set either default or path, not both", i)
		case f.Default != "":
			files = append(files, entities.ProguardFile{Path: f.Default, Default: true})
		case f.Path != "":
			files = append(files, entities.ProguardFile{Path: f.Path})
		default:
			return entities.ReleaseRules{}, fmt.Errorf("proguard_files[%d]: empty entry", i)
		}
	}
	return entities.ReleaseRules{ProguardFiles: files}, nil
}

func convertDependencies(yd []yamlDependency) []entities.DependencyDeclaration {
	decls := make([]entities.DependencyDeclaration, 0, len(yd))
	for _, d := range yd {
		decls = append(decls, entities.DependencyDeclaration{
			Configuration: d.Configuration,
			Notation:      d.Notation,
		})
	}
	return decls
}
