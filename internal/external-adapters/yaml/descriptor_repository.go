package yaml

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/iwmh/droidcfg/internal/domain/entities"
	"github.com/iwmh/droidcfg/internal/domain/interfaces"
)

// DescriptorRepository implements repositories.DescriptorRepository using a YAML file.
// When the file does not exist the embedded default descriptor is used.
type DescriptorRepository struct {
	path   string
	parser *DescriptorParser
	logger interfaces.Logger
}

// NewDescriptorRepository creates a new YAML-based descriptor repository
func NewDescriptorRepository(path string, logger interfaces.Logger) *DescriptorRepository {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &DescriptorRepository{
		path:   path,
		parser: NewDescriptorParser(),
		logger: logger,
	}
}

// GetDescriptor returns the project descriptor, or the embedded one
func (r *DescriptorRepository) GetDescriptor(_ context.Context) (*entities.ModuleDescriptor, error) {
	if r.path != "" {
		if _, err := os.Stat(r.path); err == nil {
			r.logger.Debug("using project descriptor", interfaces.F("path", r.path))
			return r.parser.ParseFile(r.path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	r.logger.Debug("using embedded descriptor")
	return r.parser.ParseDefault()
}
