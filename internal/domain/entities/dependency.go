package entities

import "fmt"

// Dependency is an external library reference resolved by the build tool
type Dependency struct {
	Configuration string
	Group         string
	Name          string
	Version       string
}

// Notation returns the Gradle group:name:version string
func (d Dependency) Notation() string {
	return fmt.Sprintf("%s:%s:%s", d.Group, d.Name, d.Version)
}
