package gateways

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iwmh/droidcfg/internal/domain/entities"
)

// outputsDir is where the Flutter toolchain places Android outputs, relative to the flutter root
const outputsDir = "build/app/outputs"

// Sidecar suffixes appended to an output's file name
const (
	ChecksumSuffix  = ".sha256"
	SignatureSuffix = ".asc"
)

// ArtifactFinder provides utilities for locating build outputs
type ArtifactFinder struct{}

// NewArtifactFinder creates a new artifact finder
func NewArtifactFinder() *ArtifactFinder {
	return &ArtifactFinder{}
}

// ExpectedPath returns where the toolchain writes a variant's output
func (f *ArtifactFinder) ExpectedPath(flutterRoot, variant string, format entities.OutputFormat) string {
	name := fmt.Sprintf("app-%s.%s", variant, format)
	switch format {
	case entities.FormatAAB:
		return filepath.Join(flutterRoot, outputsDir, "bundle", variant, name)
	default:
		return filepath.Join(flutterRoot, outputsDir, "flutter-apk", name)
	}
}

// FindRecursive searches the outputs directory for a variant's files
// Finds: .apk, .aab and their .sha256 / .asc sidecars
func (f *ArtifactFinder) FindRecursive(flutterRoot, variant string) ([]string, error) {
	root := filepath.Join(flutterRoot, outputsDir)
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, fmt.Errorf("outputs directory does not exist: %s", root)
	}

	prefix := fmt.Sprintf("app-%s.", variant)
	var artifacts []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		basename := filepath.Base(path)
		if !strings.HasPrefix(basename, prefix) {
			return nil
		}

		if strings.HasSuffix(basename, ".apk") ||
			strings.HasSuffix(basename, ".aab") ||
			strings.HasSuffix(basename, ChecksumSuffix) ||
			strings.HasSuffix(basename, SignatureSuffix) {
			artifacts = append(artifacts, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return artifacts, nil
}

// Classify turns a found path into an Artifact
func (f *ArtifactFinder) Classify(path, variant string) entities.Artifact {
	basename := filepath.Base(path)
	a := entities.Artifact{Name: basename, Variant: variant, Path: path, Type: "bundle"}

	switch {
	case strings.HasSuffix(basename, ChecksumSuffix):
		a.Type = "checksum"
		basename = strings.TrimSuffix(basename, ChecksumSuffix)
	case strings.HasSuffix(basename, SignatureSuffix):
		a.Type = "signature"
		basename = strings.TrimSuffix(basename, SignatureSuffix)
	}

	switch filepath.Ext(basename) {
	case ".apk":
		a.Format = entities.FormatAPK
	case ".aab":
		a.Format = entities.FormatAAB
	}

	return a
}

// Sidecars returns the checksum and signature files that exist next to output
func (f *ArtifactFinder) Sidecars(output string) (checksum, signature string) {
	if fileExists(output + ChecksumSuffix) {
		checksum = output + ChecksumSuffix
	}
	if fileExists(output + SignatureSuffix) {
		signature = output + SignatureSuffix
	}
	return checksum, signature
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
