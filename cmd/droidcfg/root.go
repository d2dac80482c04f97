package main

import (
	"github.com/fatih/color"
	"github.com/iwmh/droidcfg/internal/config"
	"github.com/iwmh/droidcfg/internal/domain-adapters/gateways"
	orchestrators "github.com/iwmh/droidcfg/internal/domain-orchestrators"
	"github.com/iwmh/droidcfg/internal/domain/entities"
	"github.com/iwmh/droidcfg/internal/domain/interfaces"
	"github.com/iwmh/droidcfg/internal/external-adapters/console"
	"github.com/iwmh/droidcfg/internal/external-adapters/properties"
	"github.com/iwmh/droidcfg/internal/external-adapters/yaml"
	"github.com/spf13/cobra"
)

// app carries the settings shared by every subcommand
type app struct {
	cfgFile     string
	projectRoot string
	verbose     bool

	cfg    *config.Config
	logger interfaces.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "droidcfg",
		Short: "droidcfg - Android build configuration resolver for Flutter apps",
		Long: `droidcfg resolves the build configuration of a Flutter app's Android module:
identity, SDK levels, build types, dependencies and the release signing config
bound from key.properties. A release resolve fails when signing is incomplete.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./.droidcfg.yaml)")
	root.PersistentFlags().StringVar(&a.projectRoot, "project-root", "", "Android project root (default \"android\")")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newResolveCmd(a),
		newSigningCmd(a),
		newVariantsCmd(a),
		newValidateReleaseCmd(a),
		newVerifyCmd(a),
	)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.projectRoot != "" {
		cfg.ProjectRoot = a.projectRoot
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	a.cfg = cfg
	a.logger = console.NewLoggerTo(cmd.ErrOrStderr(), console.ParseLevel(cfg.Log.Level))
	return nil
}

func (a *app) layout() entities.ProjectLayout {
	return entities.ProjectLayout{RootDir: a.cfg.ProjectRoot, ModuleName: a.cfg.ModuleName}
}

// orchestrator wires the production adapters into a resolver
func (a *app) orchestrator() *orchestrators.ConfigurationOrchestrator {
	layout := a.layout()
	loader := properties.NewLoader(a.logger)

	return orchestrators.NewConfigurationOrchestrator(
		yaml.NewDescriptorRepository(layout.RootFile(a.cfg.DescriptorFile), a.logger),
		loader,
		gateways.NewFlutterVersionProvider(loader, layout, a.cfg.LocalPropertiesFile, a.logger),
		orchestrators.ConfigurationOrchestratorConfig{
			Layout:         layout,
			PropertiesFile: a.cfg.PropertiesFile,
			StrictSDK:      a.cfg.StrictSDK,
		},
		a.logger,
	)
}

// outputFormat prefers an explicit --format over the configured default
func (a *app) outputFormat(cmd *cobra.Command, flag string) string {
	if cmd.Flags().Changed("format") {
		return flag
	}
	return a.cfg.Output
}

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
)
