package gpg

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bundleContent = []byte("bundle content")

func newReleaseKey(t *testing.T, config *packet.Config) *openpgp.Entity {
	t.Helper()
	e, err := openpgp.NewEntity("Release Bot", "test", "release@example.com", config)
	require.NoError(t, err)
	return e
}

func armoredPublicKey(t *testing.T, e *openpgp.Entity) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	require.NoError(t, err)
	require.NoError(t, e.Serialize(w))
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func detachSign(t *testing.T, e *openpgp.Entity, armored bool, config *packet.Config) []byte {
	t.Helper()
	var sig bytes.Buffer
	if armored {
		require.NoError(t, openpgp.ArmoredDetachSign(&sig, e, bytes.NewReader(bundleContent), config))
	} else {
		require.NoError(t, openpgp.DetachSign(&sig, e, bytes.NewReader(bundleContent), config))
	}
	return sig.Bytes()
}

func trusting(t *testing.T, keys ...*openpgp.Entity) *Verifier {
	t.Helper()
	v := NewVerifier()
	for _, k := range keys {
		n, err := v.AddKeys(bytes.NewReader(armoredPublicKey(t, k)))
		require.NoError(t, err)
		require.Equal(t, 1, n)
	}
	return v
}

func TestVerifier_Verify_ReportsSigner(t *testing.T) {
	key := newReleaseKey(t, nil)

	for _, armored := range []bool{true, false} {
		name := "binary"
		if armored {
			name = "armored"
		}
		t.Run(name, func(t *testing.T) {
			sig := detachSign(t, key, armored, nil)

			got, err := trusting(t, key).Verify(bytes.NewReader(bundleContent), bytes.NewReader(sig))

			require.NoError(t, err)
			assert.Equal(t, key.PrimaryKey.KeyIdString(), got.KeyID)
			assert.Len(t, got.Fingerprint, 40)
			assert.Equal(t, "Release Bot (test) <release@example.com>", got.Signer)
			assert.WithinDuration(t, time.Now(), got.SignedAt, time.Minute)
		})
	}
}

func TestVerifier_Verify_Rejections(t *testing.T) {
	key := newReleaseKey(t, nil)
	sig := detachSign(t, key, true, nil)

	t.Run("tampered bundle", func(t *testing.T) {
		_, err := trusting(t, key).Verify(strings.NewReader("tampered"), bytes.NewReader(sig))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad signature")
	})

	t.Run("untrusted signer", func(t *testing.T) {
		_, err := trusting(t, newReleaseKey(t, nil)).Verify(bytes.NewReader(bundleContent), bytes.NewReader(sig))
		assert.ErrorIs(t, err, ErrUnknownSigner)
	})

	t.Run("no keys", func(t *testing.T) {
		_, err := NewVerifier().Verify(bytes.NewReader(bundleContent), bytes.NewReader(sig))
		assert.ErrorIs(t, err, ErrNoKeys)
	})

	t.Run("armored key block instead of signature", func(t *testing.T) {
		_, err := trusting(t, key).Verify(bytes.NewReader(bundleContent), bytes.NewReader(armoredPublicKey(t, key)))
		assert.Error(t, err)
	})
}

func TestVerifier_Verify_RevokedKey(t *testing.T) {
	key := newReleaseKey(t, nil)
	sig := detachSign(t, key, true, nil)
	require.NoError(t, key.RevokeKey(packet.KeyCompromised, "leaked", nil))

	_, err := trusting(t, key).Verify(bytes.NewReader(bundleContent), bytes.NewReader(sig))

	assert.ErrorIs(t, err, ErrKeyRevoked)
	assert.Contains(t, err.Error(), key.PrimaryKey.KeyIdString())
}

func TestVerifier_Verify_ExpiredKey(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)
	config := &packet.Config{Time: func() time.Time { return past }, KeyLifetimeSecs: 3600}
	key := newReleaseKey(t, config)
	sig := detachSign(t, key, false, config)

	v := trusting(t, key)
	_, err := v.Verify(bytes.NewReader(bundleContent), bytes.NewReader(sig))
	assert.ErrorIs(t, err, ErrKeyExpired)

	// the same signature was valid while the key was
	v.now = func() time.Time { return past.Add(time.Minute) }
	_, err = v.Verify(bytes.NewReader(bundleContent), bytes.NewReader(sig))
	assert.NoError(t, err)
}

func TestVerifier_VerifyFile(t *testing.T) {
	key := newReleaseKey(t, nil)
	dir := t.TempDir()
	bundle := filepath.Join(dir, "app-release.aab")
	require.NoError(t, os.WriteFile(bundle, bundleContent, 0600))
	require.NoError(t, os.WriteFile(bundle+".asc", detachSign(t, key, true, nil), 0600))

	got, err := trusting(t, key).VerifyFile(bundle, bundle+".asc")
	require.NoError(t, err)
	assert.Equal(t, key.PrimaryKey.KeyIdString(), got.KeyID)

	_, err = trusting(t, key).VerifyFile(bundle, filepath.Join(dir, "missing.asc"))
	assert.ErrorContains(t, err, "failed to open signature file")
}

func TestVerifier_AddKeyFile(t *testing.T) {
	dir := t.TempDir()
	v := NewVerifier()

	_, err := v.AddKeyFile(filepath.Join(dir, "none.asc"))
	assert.ErrorContains(t, err, "failed to open key file")

	junk := filepath.Join(dir, "junk.asc")
	require.NoError(t, os.WriteFile(junk, []byte("not a gpg key"), 0600))
	_, err = v.AddKeyFile(junk)
	assert.Error(t, err)
	assert.Equal(t, 0, v.Len())

	var binary bytes.Buffer
	require.NoError(t, newReleaseKey(t, nil).Serialize(&binary))
	path := filepath.Join(dir, "release.gpg")
	require.NoError(t, os.WriteFile(path, binary.Bytes(), 0600))
	n, err := v.AddKeyFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestVerifier_FetchKeys(t *testing.T) {
	keys := append(armoredPublicKey(t, newReleaseKey(t, nil)), armoredPublicKey(t, newReleaseKey(t, nil))...)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/KEYS") {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(keys)
	}))
	defer server.Close()

	v := NewVerifier()
	n, err := v.FetchKeys(context.Background(), server.URL+"/KEYS")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, v.Len())

	_, err = v.FetchKeys(context.Background(), server.URL+"/missing")
	assert.ErrorContains(t, err, "status 404")
}
