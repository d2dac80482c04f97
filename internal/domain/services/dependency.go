package services

import (
	"fmt"
	"strings"

	"github.com/iwmh/droidcfg/internal/domain/entities"
)

// ParseDependency parses a group:name:version notation
func ParseDependency(configuration, notation string) (entities.Dependency, error) {
	parts := strings.Split(notation, ":")
	if len(parts) != 3 {
		return entities.Dependency{}, fmt.Errorf("%w: %q (want group:name:version)", ErrInvalidDependency, notation)
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" || strings.ContainsAny(p, " \t") {
			return entities.Dependency{}, fmt.Errorf("%w: %q", ErrInvalidDependency, notation)
		}
	}
	if configuration == "" {
		configuration = "implementation"
	}
	return entities.Dependency{
		Configuration: configuration,
		Group:         parts[0],
		Name:          parts[1],
		Version:       parts[2],
	}, nil
}

// ParseDependencies parses every declaration, failing on the first malformed one
func ParseDependencies(decls []entities.DependencyDeclaration) ([]entities.Dependency, error) {
	deps := make([]entities.Dependency, 0, len(decls))
	for _, d := range decls {
		dep, err := ParseDependency(d.Configuration, d.Notation)
		if err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}
	return deps, nil
}
