// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"

	"github.com/iwmh/droidcfg/internal/domain/entities"
)

// VersionProvider supplies SDK levels and the app version computed by the Flutter toolchain
type VersionProvider interface {
	VersionInfo(ctx context.Context, desc *entities.ModuleDescriptor) (entities.VersionInfo, error)
}
