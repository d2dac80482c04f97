package services

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/iwmh/droidcfg/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigningBinder_Bind_AllKeys(t *testing.T) {
	root := t.TempDir()
	binder := NewSigningBinder(root, "key.properties")

	cfg := binder.Bind(map[string]string{
		"keyAlias":      "upload",
		"keyPassword":   " pass with spaces ",
		"storeFile":     "keys/upload-keystore.jks",
		"storePassword": "st0re",
	})

	require.NoError(t, binder.RequireComplete(cfg))
	assert.Equal(t, entities.ReleaseSigningConfig, cfg.Name)
	assert.Equal(t, "upload", cfg.KeyAlias.OrElse(""))
	assert.Equal(t, " pass with spaces ", cfg.KeyPassword.OrElse(""))
	assert.Equal(t, "st0re", cfg.StorePassword.OrElse(""))

	storeFile, ok := cfg.StoreFile.Get()
	require.True(t, ok)
	assert.True(t, filepath.IsAbs(storeFile))
	assert.Equal(t, filepath.Join(root, "keys", "upload-keystore.jks"), storeFile)
}

func TestSigningBinder_Bind_AbsoluteStoreFile(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "ks", "..", "upload.jks")
	binder := NewSigningBinder("android", "key.properties")

	cfg := binder.Bind(map[string]string{"storeFile": abs})

	assert.Equal(t, filepath.Clean(abs), cfg.StoreFile.OrElse(""))
}

func TestSigningBinder_Bind_EmptyMap(t *testing.T) {
	binder := NewSigningBinder(t.TempDir(), "key.properties")

	cfg := binder.Bind(map[string]string{})

	assert.False(t, cfg.Complete())
	assert.Equal(t, []string{"keyAlias", "keyPassword", "storeFile", "storePassword"}, cfg.Missing())

	err := binder.RequireComplete(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompleteSigning))

	var bindErr *SigningBindingError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, "key.properties", bindErr.Source)
	assert.Len(t, bindErr.Missing, 4)
}

func TestSigningBinder_RequireComplete_Partial(t *testing.T) {
	tests := []struct {
		name    string
		props   map[string]string
		missing []string
	}{
		{
			name:    "store file absent",
			props:   map[string]string{"keyAlias": "a", "keyPassword": "b", "storePassword": "c"},
			missing: []string{"storeFile"},
		},
		{
			name:    "blank password",
			props:   map[string]string{"keyAlias": "a", "keyPassword": "   ", "storeFile": "k.jks", "storePassword": "c"},
			missing: []string{"keyPassword"},
		},
		{
			name:    "only alias",
			props:   map[string]string{"keyAlias": "a"},
			missing: []string{"keyPassword", "storeFile", "storePassword"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			binder := NewSigningBinder(t.TempDir(), "key.properties")

			err := binder.RequireComplete(binder.Bind(tt.props))

			var bindErr *SigningBindingError
			require.ErrorAs(t, err, &bindErr)
			assert.Equal(t, tt.missing, bindErr.Missing)
			assert.Contains(t, err.Error(), "key.properties")
		})
	}
}

func TestSigningConfig_Redacted(t *testing.T) {
	cfg := NewSigningBinder(t.TempDir(), "key.properties").Bind(map[string]string{
		"keyAlias":      "upload",
		"keyPassword":   "secret",
		"storePassword": "secret2",
	})

	red := cfg.Redacted()

	assert.Equal(t, "upload", red.KeyAlias.OrElse(""))
	assert.NotEqual(t, "secret", red.KeyPassword.OrElse(""))
	assert.NotEqual(t, "secret2", red.StorePassword.OrElse(""))
	assert.False(t, red.StoreFile.IsSet())
	// original untouched
	assert.Equal(t, "secret", cfg.KeyPassword.OrElse(""))
}
