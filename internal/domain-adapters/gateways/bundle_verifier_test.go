package gateways

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/iwmh/droidcfg/internal/domain/interfaces/gateways"
)

var _ gateways.BundleVerifier = (*BundleVerifier)(nil)

func TestBundleVerifier_VerifyChecksumFile(t *testing.T) {
	dir := t.TempDir()
	bundle := writeBundle(t, dir, "app-release.aab", []byte("bundle"))
	sidecar, err := NewChecksumVerifier().WriteChecksumFile(bundle)
	if err != nil {
		t.Fatal(err)
	}

	v := NewBundleVerifier()
	if err := v.VerifyChecksumFile(context.Background(), bundle, sidecar); err != nil {
		t.Errorf("VerifyChecksumFile() error = %v", err)
	}

	writeBundle(t, dir, "app-release.aab", []byte("rebuilt bundle"))
	if err := v.VerifyChecksumFile(context.Background(), bundle, sidecar); err == nil {
		t.Error("VerifyChecksumFile() should fail after the bundle changed")
	}
}

func TestBundleVerifier_SignatureWithoutKeys(t *testing.T) {
	v := NewBundleVerifier()
	if v.KeyringSize() != 0 {
		t.Fatalf("KeyringSize() = %d, want 0", v.KeyringSize())
	}

	_, err := v.VerifySignatureFromFile("app-release.aab", "app-release.aab.asc")
	if err == nil || !strings.Contains(err.Error(), "GPG signature verification failed") {
		t.Errorf("VerifySignatureFromFile() error = %v", err)
	}
}

func TestBundleVerifier_ImportKeyFromFile_Missing(t *testing.T) {
	_, err := NewBundleVerifier().ImportKeyFromFile(filepath.Join(t.TempDir(), "none.asc"))
	if err == nil || !strings.Contains(err.Error(), "failed to import GPG key from file") {
		t.Errorf("ImportKeyFromFile() error = %v", err)
	}
}

func TestBundleVerifier_SignedOutput(t *testing.T) {
	key, err := openpgp.NewEntity("Release Bot", "", "release@example.com", nil)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	content := []byte("bundle")
	bundle := writeBundle(t, dir, "app-release.aab", content)

	var sig, pub bytes.Buffer
	if err := openpgp.ArmoredDetachSign(&sig, key, bytes.NewReader(content), nil); err != nil {
		t.Fatal(err)
	}
	if err := key.Serialize(&pub); err != nil {
		t.Fatal(err)
	}
	writeBundle(t, dir, "app-release.aab"+SignatureSuffix, sig.Bytes())
	keyPath := writeBundle(t, dir, "release.gpg", pub.Bytes())

	v := NewBundleVerifier()
	if n, err := v.ImportKeyFromFile(keyPath); err != nil || n != 1 {
		t.Fatalf("ImportKeyFromFile() = %d, %v", n, err)
	}

	_, sigPath := NewArtifactFinder().Sidecars(bundle)
	got, err := v.VerifySignatureFromFile(bundle, sigPath)
	if err != nil {
		t.Fatalf("VerifySignatureFromFile() error = %v", err)
	}
	if got.KeyID != key.PrimaryKey.KeyIdString() {
		t.Errorf("KeyID = %s, want %s", got.KeyID, key.PrimaryKey.KeyIdString())
	}
	if !strings.Contains(got.Signer, "release@example.com") {
		t.Errorf("Signer = %q", got.Signer)
	}
}
