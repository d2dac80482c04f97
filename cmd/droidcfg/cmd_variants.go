package main

import (
	"github.com/iwmh/droidcfg/internal/external-adapters/render"
	"github.com/spf13/cobra"
)

func newVariantsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "variants",
		Short: "List build types and their shrinking and signing settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := a.outputFormat(cmd, format)
			if err := render.ValidateFormat(out); err != nil {
				return err
			}

			types, err := a.orchestrator().Variants(cmd.Context())
			if err != nil {
				return err
			}
			return render.BuildTypes(cmd.OutOrStdout(), types, out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", render.FormatTable, "Output format: table, json or yaml")
	return cmd
}
