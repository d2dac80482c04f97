package main

import (
	"github.com/iwmh/droidcfg/internal/domain/entities"
	"github.com/iwmh/droidcfg/internal/external-adapters/render"
	"github.com/spf13/cobra"
)

func newResolveCmd(a *app) *cobra.Command {
	var (
		format      string
		showSecrets bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [variant]",
		Short: "Resolve the build configuration for a variant",
		Long: `Resolve the app module's build configuration for debug, profile or release.

The release variant binds key.properties and fails when any of keyAlias,
keyPassword, storeFile or storePassword is missing.`,
		Args: cobra.MaximumNArgs(1),
		Example: `  # Resolve the release configuration
  droidcfg resolve

  # Debug build as JSON
  droidcfg resolve debug --format json

  # Include passwords in the output
  droidcfg resolve release --show-secrets`,
		RunE: func(cmd *cobra.Command, args []string) error {
			variant := entities.VariantRelease
			if len(args) == 1 {
				variant = args[0]
			}

			out := a.outputFormat(cmd, format)
			if err := render.ValidateFormat(out); err != nil {
				return err
			}

			result, err := a.orchestrator().Resolve(cmd.Context(), variant)
			if err != nil {
				return err
			}

			return render.Configuration(cmd.OutOrStdout(), result.Config, out, showSecrets)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", render.FormatTable, "Output format: table, json or yaml")
	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "Print key and store passwords in clear text")

	return cmd
}
