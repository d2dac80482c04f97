// Package properties loads Java-style key/value property files.
package properties

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/iwmh/droidcfg/internal/domain/interfaces"
	"github.com/magiconair/properties"
)

// Loader implements repositories.PropertySource on top of magiconair/properties
type Loader struct {
	logger interfaces.Logger
	loader *properties.Loader
}

// NewLoader creates a property loader.
// Files are decoded as ISO-8859-1 like java.util.Properties, and ${} references are kept verbatim.
func NewLoader(logger interfaces.Logger) *Loader {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &Loader{
		logger: logger,
		loader: &properties.Loader{
			Encoding:         properties.ISO_8859_1,
			DisableExpansion: true,
		},
	}
}

// Load reads path into a key/value map.
// A missing file is not an error: the map is empty.
func (l *Loader) Load(ctx context.Context, path string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	//nolint:gosec // G304: path is the project-relative property file
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Debug("property file not found, using empty set", interfaces.F("path", path))
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read property file %s: %w", path, err)
	}

	p, err := l.loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse property file %s: %w", path, err)
	}

	values := p.Map()
	l.logger.Debug("loaded property file", interfaces.F("path", path), interfaces.F("keys", len(values)))
	return values, nil
}
