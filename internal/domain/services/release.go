package services

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iwmh/droidcfg/internal/domain/entities"
)

// ReleaseStatus represents the readiness status of the release outputs
type ReleaseStatus string

// Release validation statuses
const (
	StatusReady          ReleaseStatus = "ready"
	StatusNoOutputs      ReleaseStatus = "no_outputs"
	StatusMissingFormats ReleaseStatus = "missing_formats"
)

// ReleaseValidation contains the validation result for a variant's outputs
type ReleaseValidation struct {
	Status           ReleaseStatus
	Variant          string
	ExpectedFormats  []entities.OutputFormat
	AvailableFormats []entities.OutputFormat
	MissingFormats   []entities.OutputFormat
	ExpectedCount    int
	AvailableCount   int
}

// IsReady returns true if every expected output is present
func (rv *ReleaseValidation) IsReady() bool {
	return rv.Status == StatusReady
}

// ErrorMessage returns a human-readable error message if not ready
func (rv *ReleaseValidation) ErrorMessage() string {
	switch rv.Status {
	case StatusReady:
		return ""
	case StatusNoOutputs:
		return fmt.Sprintf("No %s outputs found (expected: %s)", rv.Variant, formatsToString(rv.ExpectedFormats))
	case StatusMissingFormats:
		return fmt.Sprintf("Missing %s outputs: %s (have: %s)",
			rv.Variant, formatsToString(rv.MissingFormats), formatsToString(rv.AvailableFormats))
	default:
		return "Unknown status"
	}
}

// ReleaseService handles release output validation logic
type ReleaseService struct{}

// NewReleaseService creates a new release service
func NewReleaseService() *ReleaseService {
	return &ReleaseService{}
}

// OutputName returns the file name the toolchain gives a variant's output
func OutputName(variant string, format entities.OutputFormat) string {
	return fmt.Sprintf("app-%s.%s", variant, format)
}

// ValidateRelease checks that every expected format was produced for variant
func (s *ReleaseService) ValidateRelease(variant string, expected []entities.OutputFormat, artifactPaths []string) *ReleaseValidation {
	validation := &ReleaseValidation{
		Variant:         variant,
		ExpectedFormats: expected,
		ExpectedCount:   len(expected),
	}

	validation.AvailableFormats = s.extractAvailableFormats(variant, artifactPaths)
	validation.AvailableCount = len(validation.AvailableFormats)
	validation.MissingFormats = s.findMissingFormats(expected, validation.AvailableFormats)

	switch {
	case validation.AvailableCount == 0:
		validation.Status = StatusNoOutputs
	case len(validation.MissingFormats) > 0:
		validation.Status = StatusMissingFormats
	default:
		validation.Status = StatusReady
	}

	return validation
}

// extractAvailableFormats keeps only app-<variant>.apk / .aab, ignoring sidecar files
func (s *ReleaseService) extractAvailableFormats(variant string, artifactPaths []string) []entities.OutputFormat {
	formatSet := make(map[entities.OutputFormat]bool)

	for _, path := range artifactPaths {
		basename := filepath.Base(path)
		for _, format := range []entities.OutputFormat{entities.FormatAPK, entities.FormatAAB} {
			if basename == OutputName(variant, format) {
				formatSet[format] = true
			}
		}
	}

	formats := make([]entities.OutputFormat, 0, len(formatSet))
	for format := range formatSet {
		formats = append(formats, format)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })

	return formats
}

// findMissingFormats returns formats that are expected but not available
func (s *ReleaseService) findMissingFormats(expected, available []entities.OutputFormat) []entities.OutputFormat {
	availableSet := make(map[entities.OutputFormat]bool)
	for _, f := range available {
		availableSet[f] = true
	}

	var missing []entities.OutputFormat
	for _, f := range expected {
		if !availableSet[f] {
			missing = append(missing, f)
		}
	}

	return missing
}

// ParseFormats parses a comma-separated list such as "apk,aab"
func ParseFormats(list string) ([]entities.OutputFormat, error) {
	var formats []entities.OutputFormat
	seen := make(map[entities.OutputFormat]bool)
	for _, part := range strings.Split(list, ",") {
		f := entities.OutputFormat(strings.ToLower(strings.TrimSpace(part)))
		if f == "" || seen[f] {
			continue
		}
		if f != entities.FormatAPK && f != entities.FormatAAB {
			return nil, fmt.Errorf("unsupported output format %q (want apk or aab)", f)
		}
		seen[f] = true
		formats = append(formats, f)
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("no output formats given")
	}
	return formats, nil
}

// formatsToString converts a slice of formats to a comma-separated string
func formatsToString(formats []entities.OutputFormat) string {
	if len(formats) == 0 {
		return "none"
	}
	strs := make([]string, len(formats))
	for i, f := range formats {
		strs[i] = string(f)
	}
	return strings.Join(strs, ", ")
}
