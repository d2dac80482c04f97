package gateways

import (
	"context"
	"fmt"

	"github.com/iwmh/droidcfg/internal/domain/entities"
	"github.com/iwmh/droidcfg/internal/external-adapters/gpg"
)

// BundleVerifier combines checksum and OpenPGP checks for release outputs.
// It implements gateways.BundleVerifier.
type BundleVerifier struct {
	checksums *checksumVerifier
	gpg       *gpg.Verifier
}

// NewBundleVerifier creates a new bundle verifier gateway
func NewBundleVerifier() *BundleVerifier {
	return &BundleVerifier{
		checksums: NewChecksumVerifier(),
		gpg:       gpg.NewVerifier(),
	}
}

// VerifyChecksum verifies a bundle's SHA256 checksum
func (b *BundleVerifier) VerifyChecksum(ctx context.Context, filePath, expectedSum string) error {
	return b.checksums.VerifyChecksum(ctx, filePath, expectedSum)
}

// VerifyChecksumFile verifies a bundle against a sha256sum sidecar
func (b *BundleVerifier) VerifyChecksumFile(ctx context.Context, filePath, checksumFile string) error {
	sum, err := b.checksums.ReadChecksumFile(checksumFile)
	if err != nil {
		return err
	}
	return b.checksums.VerifyChecksum(ctx, filePath, sum)
}

// ImportKeyFromFile trusts the release keys in a local file
func (b *BundleVerifier) ImportKeyFromFile(keyPath string) (int, error) {
	n, err := b.gpg.AddKeyFile(keyPath)
	if err != nil {
		return 0, fmt.Errorf("failed to import GPG key from file: %w", err)
	}
	return n, nil
}

// ImportKeysFromURL trusts every release key published in a KEYS file
func (b *BundleVerifier) ImportKeysFromURL(ctx context.Context, keysURL string) (int, error) {
	n, err := b.gpg.FetchKeys(ctx, keysURL)
	if err != nil {
		return 0, fmt.Errorf("failed to import GPG keys from URL: %w", err)
	}
	return n, nil
}

// VerifySignatureFromFile verifies a detached signature and reports the signing key
func (b *BundleVerifier) VerifySignatureFromFile(filePath, sigPath string) (entities.BundleSignature, error) {
	sig, err := b.gpg.VerifyFile(filePath, sigPath)
	if err != nil {
		return sig, fmt.Errorf("GPG signature verification failed: %w", err)
	}
	return sig, nil
}

// KeyringSize returns the number of trusted keys
func (b *BundleVerifier) KeyringSize() int {
	return b.gpg.Len()
}
