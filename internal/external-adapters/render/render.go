// Package render prints resolved configurations as tables, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwmh/droidcfg/internal/domain/entities"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ValidateFormat rejects unknown output formats
func ValidateFormat(format string) error {
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want table, json or yaml)", format)
	}
}

type signingView struct {
	Name          string `json:"name" yaml:"name"`
	KeyAlias      string `json:"keyAlias,omitempty" yaml:"keyAlias,omitempty"`
	KeyPassword   string `json:"keyPassword,omitempty" yaml:"keyPassword,omitempty"`
	StoreFile     string `json:"storeFile,omitempty" yaml:"storeFile,omitempty"`
	StorePassword string `json:"storePassword,omitempty" yaml:"storePassword,omitempty"`
}

type buildTypeView struct {
	Name            string   `json:"name" yaml:"name"`
	MinifyEnabled   bool     `json:"minifyEnabled" yaml:"minifyEnabled"`
	ShrinkResources bool     `json:"shrinkResources" yaml:"shrinkResources"`
	ProguardFiles   []string `json:"proguardFiles,omitempty" yaml:"proguardFiles,omitempty"`
	SigningConfig   string   `json:"signingConfig" yaml:"signingConfig"`
}

type versionsView struct {
	MinSDK      int    `json:"minSdk" yaml:"minSdk"`
	TargetSDK   int    `json:"targetSdk" yaml:"targetSdk"`
	CompileSDK  int    `json:"compileSdk" yaml:"compileSdk"`
	VersionCode int    `json:"versionCode" yaml:"versionCode"`
	VersionName string `json:"versionName" yaml:"versionName"`
}

type configView struct {
	InvocationID  string        `json:"invocationId" yaml:"invocationId"`
	Namespace     string        `json:"namespace" yaml:"namespace"`
	ApplicationID string        `json:"applicationId" yaml:"applicationId"`
	NDKVersion    string        `json:"ndkVersion" yaml:"ndkVersion"`
	JavaVersion   int           `json:"javaVersion" yaml:"javaVersion"`
	FlutterSource string        `json:"flutterSource" yaml:"flutterSource"`
	Versions      versionsView  `json:"versions" yaml:"versions"`
	BuildType     buildTypeView `json:"buildType" yaml:"buildType"`
	Signing       *signingView  `json:"signing,omitempty" yaml:"signing,omitempty"`
	Dependencies  []string      `json:"dependencies" yaml:"dependencies"`
}

func newSigningView(s *entities.SigningConfig, showSecrets bool) *signingView {
	if s == nil {
		return nil
	}
	if !showSecrets {
		s = s.Redacted()
	}
	return &signingView{
		Name:          s.Name,
		KeyAlias:      s.KeyAlias.OrElse(""),
		KeyPassword:   s.KeyPassword.OrElse(""),
		StoreFile:     s.StoreFile.OrElse(""),
		StorePassword: s.StorePassword.OrElse(""),
	}
}

func newBuildTypeView(bt entities.BuildType) buildTypeView {
	v := buildTypeView{
		Name:            bt.Name,
		MinifyEnabled:   bt.MinifyEnabled,
		ShrinkResources: bt.ShrinkResources,
		SigningConfig:   bt.SigningConfig,
	}
	for _, f := range bt.ProguardFiles {
		v.ProguardFiles = append(v.ProguardFiles, proguardLabel(f))
	}
	return v
}

func proguardLabel(f entities.ProguardFile) string {
	if f.Default {
		return "default:" + f.Path
	}
	return f.Path
}

func newConfigView(cfg *entities.BuildConfiguration, showSecrets bool) configView {
	v := configView{
		InvocationID:  cfg.InvocationID,
		Namespace:     cfg.Namespace,
		ApplicationID: cfg.ApplicationID,
		NDKVersion:    cfg.NDKVersion,
		JavaVersion:   cfg.JavaVersion,
		FlutterSource: cfg.FlutterSource,
		Versions: versionsView{
			MinSDK:      cfg.Versions.MinSDK,
			TargetSDK:   cfg.Versions.TargetSDK,
			CompileSDK:  cfg.Versions.CompileSDK,
			VersionCode: cfg.Versions.VersionCode,
			VersionName: cfg.Versions.VersionName,
		},
		BuildType:    newBuildTypeView(cfg.Variant),
		Signing:      newSigningView(cfg.Signing, showSecrets),
		Dependencies: make([]string, 0, len(cfg.Dependencies)),
	}
	for _, d := range cfg.Dependencies {
		v.Dependencies = append(v.Dependencies, d.Configuration+" "+d.Notation())
	}
	return v
}

// Configuration writes cfg in format. Passwords are masked unless showSecrets is set.
func Configuration(w io.Writer, cfg *entities.BuildConfiguration, format string, showSecrets bool) error {
	view := newConfigView(cfg, showSecrets)
	switch format {
	case FormatJSON:
		return writeJSON(w, view)
	case FormatYAML:
		return writeYAML(w, view)
	}

	rows := [][]string{
		{"FIELD", "VALUE"},
		{"invocation", view.InvocationID},
		{"namespace", view.Namespace},
		{"applicationId", view.ApplicationID},
		{"ndkVersion", view.NDKVersion},
		{"javaVersion", strconv.Itoa(view.JavaVersion)},
		{"flutterSource", view.FlutterSource},
		{"minSdk", strconv.Itoa(view.Versions.MinSDK)},
		{"targetSdk", strconv.Itoa(view.Versions.TargetSDK)},
		{"compileSdk", strconv.Itoa(view.Versions.CompileSDK)},
		{"versionCode", strconv.Itoa(view.Versions.VersionCode)},
		{"versionName", view.Versions.VersionName},
		{"buildType", view.BuildType.Name},
		{"minifyEnabled", strconv.FormatBool(view.BuildType.MinifyEnabled)},
		{"shrinkResources", strconv.FormatBool(view.BuildType.ShrinkResources)},
		{"proguardFiles", dash(strings.Join(view.BuildType.ProguardFiles, ", "))},
		{"signingConfig", view.BuildType.SigningConfig},
	}
	if s := view.Signing; s != nil {
		rows = append(rows,
			[]string{"keyAlias", dash(s.KeyAlias)},
			[]string{"keyPassword", dash(s.KeyPassword)},
			[]string{"storeFile", dash(s.StoreFile)},
			[]string{"storePassword", dash(s.StorePassword)},
		)
	}
	for _, d := range view.Dependencies {
		rows = append(rows, []string{"dependency", d})
	}
	return writeTable(w, rows)
}

// Signing writes a bound signing config with the keys that are still missing
func Signing(w io.Writer, cfg *entities.SigningConfig, source, format string, showSecrets bool) error {
	view := newSigningView(cfg, showSecrets)
	missing := cfg.Missing()
	switch format {
	case FormatJSON, FormatYAML:
		out := struct {
			Source   string       `json:"source" yaml:"source"`
			Complete bool         `json:"complete" yaml:"complete"`
			Missing  []string     `json:"missing" yaml:"missing"`
			Signing  *signingView `json:"signing" yaml:"signing"`
		}{source, len(missing) == 0, missing, view}
		if out.Missing == nil {
			out.Missing = []string{}
		}
		if format == FormatJSON {
			return writeJSON(w, out)
		}
		return writeYAML(w, out)
	}

	rows := [][]string{
		{"KEY", "VALUE"},
		{"source", source},
		{entities.KeyAlias, dash(view.KeyAlias)},
		{entities.KeyPassword, dash(view.KeyPassword)},
		{entities.StoreFile, dash(view.StoreFile)},
		{entities.StorePassword, dash(view.StorePassword)},
	}
	return writeTable(w, rows)
}

// BuildTypes writes the declared variants and their flags
func BuildTypes(w io.Writer, types []entities.BuildType, format string) error {
	views := make([]buildTypeView, 0, len(types))
	for _, bt := range types {
		views = append(views, newBuildTypeView(bt))
	}
	switch format {
	case FormatJSON:
		return writeJSON(w, views)
	case FormatYAML:
		return writeYAML(w, views)
	}

	rows := [][]string{{"VARIANT", "MINIFY", "SHRINK", "SIGNING", "PROGUARD"}}
	for _, v := range views {
		rows = append(rows, []string{
			v.Name,
			strconv.FormatBool(v.MinifyEnabled),
			strconv.FormatBool(v.ShrinkResources),
			v.SigningConfig,
			dash(strings.Join(v.ProguardFiles, ", ")),
		})
	}
	return writeTable(w, rows)
}

func writeTable(w io.Writer, rows [][]string) error {
	table := pterm.DefaultTable.
		WithHasHeader(true).
		WithHeaderStyle(pterm.NewStyle(pterm.FgCyan, pterm.Bold)).
		WithData(rows)
	out, err := table.Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
