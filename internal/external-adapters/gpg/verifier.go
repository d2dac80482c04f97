// Package gpg verifies detached OpenPGP signatures over release outputs.
package gpg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	pgperrors "github.com/ProtonMail/go-crypto/openpgp/errors"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/iwmh/droidcfg/internal/domain/entities"
)

const (
	maxKeysSize      = 10 << 20
	maxSignatureSize = 1 << 20
)

var (
	armorPrefix    = []byte("-----BEGIN PGP")
	publicKeyBegin = []byte("-----BEGIN PGP PUBLIC KEY BLOCK-----")
)

// Errors reported for signatures that do not come from a trusted release key
var (
	ErrNoKeys        = errors.New("no release keys imported")
	ErrUnknownSigner = errors.New("signature was not made by any imported release key")
	ErrKeyRevoked    = errors.New("release key has been revoked")
	ErrKeyExpired    = errors.New("release key has expired")
)

// Verifier holds the release keys trusted to sign app outputs
type Verifier struct {
	keys   openpgp.EntityList
	client *http.Client
	now    func() time.Time
}

// NewVerifier creates a verifier with an empty key set
func NewVerifier() *Verifier {
	return &Verifier{
		client: &http.Client{Timeout: 30 * time.Second},
		now:    time.Now,
	}
}

// Len returns the number of trusted keys
func (v *Verifier) Len() int {
	return len(v.keys)
}

// AddKeys trusts every public key in r, armored or binary, and returns how many were added
func (v *Verifier) AddKeys(r io.Reader) (int, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxKeysSize))
	if err != nil {
		return 0, fmt.Errorf("failed to read keys: %w", err)
	}

	var keys openpgp.EntityList
	if isArmored(data) {
		// KEYS files concatenate one armored block per maintainer
		for _, block := range splitArmoredKeys(data) {
			list, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(block))
			if err != nil {
				return 0, fmt.Errorf("failed to parse keys: %w", err)
			}
			keys = append(keys, list...)
		}
	} else {
		keys, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return 0, fmt.Errorf("failed to parse keys: %w", err)
		}
	}
	if len(keys) == 0 {
		return 0, ErrNoKeys
	}

	v.keys = append(v.keys, keys...)
	return len(keys), nil
}

// AddKeyFile trusts the keys stored in a local file
func (v *Verifier) AddKeyFile(path string) (int, error) {
	//nolint:gosec // G304: key path comes from the command line
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	return v.AddKeys(f)
}

// FetchKeys trusts the keys published in a KEYS file at url
func (v *Verifier) FetchKeys(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to download KEYS file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("KEYS file download failed with status %d", resp.StatusCode)
	}

	return v.AddKeys(resp.Body)
}

// Verify checks sig against bundle and reports which release key made it.
// Revoked and expired keys are rejected even when the signature math holds.
func (v *Verifier) Verify(bundle, sig io.Reader) (entities.BundleSignature, error) {
	if len(v.keys) == 0 {
		return entities.BundleSignature{}, ErrNoKeys
	}

	raw, err := io.ReadAll(io.LimitReader(sig, maxSignatureSize))
	if err != nil {
		return entities.BundleSignature{}, fmt.Errorf("failed to read signature: %w", err)
	}

	body := io.Reader(bytes.NewReader(raw))
	if isArmored(raw) {
		block, err := armor.Decode(bytes.NewReader(raw))
		if err != nil {
			return entities.BundleSignature{}, fmt.Errorf("failed to decode armored signature: %w", err)
		}
		if block.Type != openpgp.SignatureType {
			return entities.BundleSignature{}, fmt.Errorf("expected %q block, got %q", openpgp.SignatureType, block.Type)
		}
		body = block.Body
	}

	packetSig, signer, err := openpgp.VerifyDetachedSignature(v.keys, bundle, body, &packet.Config{Time: v.now})
	if err != nil {
		return entities.BundleSignature{}, classify(err, signer)
	}

	return describe(packetSig, signer), nil
}

// VerifyFile checks the detached signature at sigPath over the output at bundlePath
func (v *Verifier) VerifyFile(bundlePath, sigPath string) (entities.BundleSignature, error) {
	//nolint:gosec // G304: sigPath is the output's signature sidecar
	sig, err := os.Open(sigPath)
	if err != nil {
		return entities.BundleSignature{}, fmt.Errorf("failed to open signature file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer sig.Close()

	//nolint:gosec // G304: bundlePath is a build output chosen by the caller
	bundle, err := os.Open(bundlePath)
	if err != nil {
		return entities.BundleSignature{}, fmt.Errorf("failed to open bundle: %w", err)
	}
	//nolint:errcheck // Defer close
	defer bundle.Close()

	return v.Verify(bundle, sig)
}

func classify(err error, signer *openpgp.Entity) error {
	id := "unknown key"
	if signer != nil {
		id = signer.PrimaryKey.KeyIdString()
	}

	switch {
	case errors.Is(err, pgperrors.ErrKeyRevoked):
		return fmt.Errorf("%w: %s", ErrKeyRevoked, id)
	case errors.Is(err, pgperrors.ErrKeyExpired):
		return fmt.Errorf("%w: %s", ErrKeyExpired, id)
	case errors.Is(err, pgperrors.ErrUnknownIssuer):
		return ErrUnknownSigner
	default:
		return fmt.Errorf("bad signature: %w", err)
	}
}

func describe(sig *packet.Signature, signer *openpgp.Entity) entities.BundleSignature {
	out := entities.BundleSignature{
		KeyID:       signer.PrimaryKey.KeyIdString(),
		Fingerprint: fmt.Sprintf("%X", signer.PrimaryKey.Fingerprint),
	}
	if sig != nil {
		out.SignedAt = sig.CreationTime
		if sig.IssuerKeyId != nil {
			out.KeyID = fmt.Sprintf("%016X", *sig.IssuerKeyId)
		}
	}
	if ident := signer.PrimaryIdentity(); ident != nil {
		out.Signer = ident.Name
	}
	return out
}

func splitArmoredKeys(data []byte) [][]byte {
	var blocks [][]byte
	for {
		start := bytes.Index(data, publicKeyBegin)
		if start < 0 {
			break
		}
		data = data[start:]
		next := bytes.Index(data[len(publicKeyBegin):], publicKeyBegin)
		if next < 0 {
			blocks = append(blocks, data)
			break
		}
		end := len(publicKeyBegin) + next
		blocks = append(blocks, data[:end])
		data = data[end:]
	}
	return blocks
}

func isArmored(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), armorPrefix)
}
