package services

import (
	"path/filepath"
	"strings"

	"github.com/iwmh/droidcfg/internal/domain/entities"
)

// SigningBinder projects key.properties values into a signing config
type SigningBinder struct {
	projectRoot string
	source      string
}

// NewSigningBinder creates a binder resolving storeFile against projectRoot.
// source names the property file in error messages.
func NewSigningBinder(projectRoot, source string) *SigningBinder {
	return &SigningBinder{projectRoot: projectRoot, source: source}
}

// Bind copies the four signing keys out of props. Absent or blank keys stay unset.
func (b *SigningBinder) Bind(props map[string]string) *entities.SigningConfig {
	cfg := &entities.SigningConfig{
		Name:          entities.ReleaseSigningConfig,
		KeyAlias:      lookup(props, entities.KeyAlias),
		KeyPassword:   lookup(props, entities.KeyPassword),
		StorePassword: lookup(props, entities.StorePassword),
	}

	if storeFile, ok := lookup(props, entities.StoreFile).Get(); ok {
		cfg.StoreFile = entities.Some(b.resolve(storeFile))
	}

	return cfg
}

// RequireComplete fails with *SigningBindingError unless every credential is present
func (b *SigningBinder) RequireComplete(cfg *entities.SigningConfig) error {
	if missing := cfg.Missing(); len(missing) > 0 {
		return &SigningBindingError{Config: cfg.Name, Missing: missing, Source: b.source}
	}
	return nil
}

func (b *SigningBinder) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	root, err := filepath.Abs(b.projectRoot)
	if err != nil {
		root = b.projectRoot
	}
	return filepath.Join(root, path)
}

// lookup treats blank values like missing ones; values are otherwise kept verbatim
func lookup(props map[string]string, key string) entities.Optional[string] {
	v, ok := props[key]
	if !ok || strings.TrimSpace(v) == "" {
		return entities.None[string]()
	}
	return entities.Some(v)
}
