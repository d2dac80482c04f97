package main

import (
	"fmt"

	"github.com/iwmh/droidcfg/internal/domain/services"
	"github.com/iwmh/droidcfg/internal/external-adapters/render"
	"github.com/spf13/cobra"
)

func newSigningCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signing",
		Short: "Inspect the release signing config",
	}
	cmd.AddCommand(newSigningCheckCmd(a))
	return cmd
}

func newSigningCheckCmd(a *app) *cobra.Command {
	var (
		format      string
		showSecrets bool
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that key.properties provides every release signing key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := a.outputFormat(cmd, format)
			if err := render.ValidateFormat(out); err != nil {
				return err
			}

			signing, source, err := a.orchestrator().Signing(cmd.Context())
			if err != nil {
				return err
			}

			if !quiet {
				if err := render.Signing(cmd.OutOrStdout(), signing, source, out, showSecrets); err != nil {
					return err
				}
			}

			if err := services.NewSigningBinder(a.layout().Abs(), source).RequireComplete(signing); err != nil {
				return err
			}

			if !quiet && out == render.FormatTable {
				fmt.Fprintf(cmd.OutOrStdout(), "%s release signing config is complete\n", okMark("✓"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", render.FormatTable, "Output format: table, json or yaml")
	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "Print key and store passwords in clear text")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only report through the exit code")

	return cmd
}
