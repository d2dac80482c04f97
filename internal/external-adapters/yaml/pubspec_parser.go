package yaml

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// PubspecVersion is the app version declared in pubspec.yaml
type PubspecVersion struct {
	Name string
	Code int // 0 when no build number is declared
}

type yamlPubspec struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// ParsePubspecFile reads the version field of a pubspec.yaml.
// ok is false when the file has no version.
func ParsePubspecFile(path string) (PubspecVersion, bool, error) {
	//nolint:gosec // G304: path is the flutter project's pubspec
	data, err := os.ReadFile(path)
	if err != nil {
		return PubspecVersion{}, false, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return ParsePubspec(data)
}

// ParsePubspec extracts name and build number from a "1.2.3+45" version
func ParsePubspec(data []byte) (PubspecVersion, bool, error) {
	var raw yamlPubspec
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return PubspecVersion{}, false, fmt.Errorf("failed to parse YAML: %w", err)
	}

	version := strings.TrimSpace(raw.Version)
	if version == "" {
		return PubspecVersion{}, false, nil
	}

	v, err := semver.StrictNewVersion(version)
	if err != nil {
		return PubspecVersion{}, false, fmt.Errorf("invalid pubspec version %q: %w", version, err)
	}

	pv := PubspecVersion{Name: strings.SplitN(version, "+", 2)[0]}
	if meta := v.Metadata(); meta != "" {
		code, err := strconv.Atoi(meta)
		if err != nil || code <= 0 {
			return PubspecVersion{}, false, fmt.Errorf("invalid build number %q in pubspec version", meta)
		}
		pv.Code = code
	}

	return pv, true, nil
}
