// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/iwmh/droidcfg/internal/domain/entities"
)

// DescriptorRepository defines the interface for accessing the module descriptor
type DescriptorRepository interface {
	// GetDescriptor returns the module descriptor for the app module
	GetDescriptor(ctx context.Context) (*entities.ModuleDescriptor, error)
}

// PropertySource loads a flat key/value property file.
// A missing file yields an empty map and no error.
type PropertySource interface {
	Load(ctx context.Context, path string) (map[string]string, error)
}
