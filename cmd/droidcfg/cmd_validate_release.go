package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iwmh/droidcfg/internal/domain-adapters/gateways"
	"github.com/iwmh/droidcfg/internal/domain/entities"
	"github.com/iwmh/droidcfg/internal/domain/interfaces"
	"github.com/iwmh/droidcfg/internal/domain/services"
	"github.com/spf13/cobra"
)

func newValidateReleaseCmd(a *app) *cobra.Command {
	var (
		formats        string
		writeChecksums bool
		quiet          bool
	)

	cmd := &cobra.Command{
		Use:   "validate-release [variant]",
		Short: "Validate that the toolchain produced every expected output",
		Long: `Validate that the Flutter toolchain produced the expected outputs for a variant.

Looks for build/app/outputs/flutter-apk/app-<variant>.apk and
build/app/outputs/bundle/<variant>/app-<variant>.aab under the flutter root.

Exit Codes:
  0  All expected outputs present
  1  Outputs missing or validation failed`,
		Args: cobra.MaximumNArgs(1),
		Example: `  droidcfg validate-release
  droidcfg validate-release release --formats aab
  droidcfg validate-release --write-checksums`,
		RunE: func(cmd *cobra.Command, args []string) error {
			variant := entities.VariantRelease
			if len(args) == 1 {
				variant = args[0]
			}

			expected, err := services.ParseFormats(formats)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if quiet {
				w = io.Discard
			}
			return a.validateRelease(cmd, w, variant, expected, writeChecksums)
		},
	}

	cmd.Flags().StringVar(&formats, "formats", "apk,aab", "Comma-separated output formats that must exist")
	cmd.Flags().BoolVar(&writeChecksums, "write-checksums", false, "Write a .sha256 sidecar for each output once validated")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only output errors (exit code indicates success/failure)")

	return cmd
}

func (a *app) validateRelease(cmd *cobra.Command, w io.Writer, variant string, expected []entities.OutputFormat, writeChecksums bool) error {
	orch := a.orchestrator()
	types, err := orch.Variants(cmd.Context())
	if err != nil {
		return err
	}
	if !declaresVariant(types, variant) {
		return fmt.Errorf("%w: %q", services.ErrUnknownVariant, variant)
	}

	flutterRoot, err := orch.FlutterRoot(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "🔍 Validating %s outputs in %s\n", variant, flutterRoot)

	finder := gateways.NewArtifactFinder()
	paths, err := finder.FindRecursive(flutterRoot, variant)
	if err != nil {
		a.logger.Warn("no build outputs", interfaces.F("error", err.Error()))
	}

	var sidecars []string
	for _, p := range paths {
		if art := finder.Classify(p, variant); art.Type != "bundle" {
			sidecars = append(sidecars, fmt.Sprintf("%s (%s)", art.Name, art.Type))
		}
	}
	fmt.Fprintf(w, "📦 Found %d output files\n", len(paths))

	validation := services.NewReleaseService().ValidateRelease(variant, expected, paths)

	fmt.Fprintf(w, "\n Output Validation:\n")
	fmt.Fprintf(w, "  Expected: %s\n", joinFormats(validation.ExpectedFormats))
	fmt.Fprintf(w, "  Available: %s\n", joinFormats(validation.AvailableFormats))
	if len(validation.MissingFormats) > 0 {
		fmt.Fprintf(w, "  Missing: %s\n", joinFormats(validation.MissingFormats))
	}
	if len(sidecars) > 0 {
		fmt.Fprintf(w, "  Sidecars: %s\n", strings.Join(sidecars, ", "))
	}
	fmt.Fprintln(w)

	if !validation.IsReady() {
		fmt.Fprintf(w, "%s %s\n", failMark("❌"), validation.ErrorMessage())
		return errors.New(validation.ErrorMessage())
	}

	if writeChecksums {
		checksums := gateways.NewChecksumVerifier()
		for _, f := range expected {
			out, err := checksums.WriteChecksumFile(finder.ExpectedPath(flutterRoot, variant, f))
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "📋 Wrote %s\n", out)
		}
	}

	fmt.Fprintf(w, "%s %s outputs ready (%d/%d)\n", okMark("✅"), variant, validation.AvailableCount, validation.ExpectedCount)
	return nil
}

func declaresVariant(types []entities.BuildType, variant string) bool {
	for _, bt := range types {
		if bt.Name == variant {
			return true
		}
	}
	return false
}

func joinFormats(formats []entities.OutputFormat) string {
	if len(formats) == 0 {
		return "none"
	}
	parts := make([]string, len(formats))
	for i, f := range formats {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}
