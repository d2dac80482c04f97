package gateways

import (
	"context"

	"github.com/iwmh/droidcfg/internal/domain/entities"
)

// BundleVerifier defines verification operations for release outputs
type BundleVerifier interface {
	VerifyChecksum(ctx context.Context, filePath, expectedSum string) error
	VerifySignatureFromFile(filePath, sigPath string) (entities.BundleSignature, error)
	ImportKeyFromFile(keyPath string) (int, error)
	ImportKeysFromURL(ctx context.Context, keysURL string) (int, error)
}
