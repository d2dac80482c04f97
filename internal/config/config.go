// Package config loads droidcfg's own settings.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. DROIDCFG_PROJECT_ROOT
const EnvPrefix = "DROIDCFG"

// Log configures the console logger
type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Config holds droidcfg's own settings
type Config struct {
	ProjectRoot         string `mapstructure:"project_root" yaml:"project_root"`
	ModuleName          string `mapstructure:"module_name" yaml:"module_name"`
	PropertiesFile      string `mapstructure:"properties_file" yaml:"properties_file"`
	LocalPropertiesFile string `mapstructure:"local_properties_file" yaml:"local_properties_file"`
	DescriptorFile      string `mapstructure:"descriptor_file" yaml:"descriptor_file"`
	StrictSDK           bool   `mapstructure:"strict_sdk" yaml:"strict_sdk"`
	Output              string `mapstructure:"output" yaml:"output"`
	Log                 Log    `mapstructure:"log" yaml:"log"`
}

// Default returns the settings used when nothing overrides them
func Default() *Config {
	return &Config{
		ProjectRoot:         "android",
		ModuleName:          "app",
		PropertiesFile:      "",
		LocalPropertiesFile: "local.properties",
		DescriptorFile:      "app/droidcfg.yml",
		Output:              "table",
		Log:                 Log{Level: "info"},
	}
}

// Load merges defaults, an optional config file and DROIDCFG_* environment variables.
// With an empty path, .droidcfg.yaml is searched in the working directory; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".droidcfg")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	def := Default()
	v.SetDefault("project_root", def.ProjectRoot)
	v.SetDefault("module_name", def.ModuleName)
	v.SetDefault("properties_file", def.PropertiesFile)
	v.SetDefault("local_properties_file", def.LocalPropertiesFile)
	v.SetDefault("descriptor_file", def.DescriptorFile)
	v.SetDefault("strict_sdk", def.StrictSDK)
	v.SetDefault("output", def.Output)
	v.SetDefault("log.level", def.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || path != "" {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
