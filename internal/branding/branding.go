// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork only has to edit the YAML.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName           string `yaml:"cli_name"`
	DisplayName       string `yaml:"display_name"`
	Description       string `yaml:"description"`
	HomeDir           string `yaml:"home_dir"`
	EnvPrefix         string `yaml:"env_prefix"`
	GitHubRepo        string `yaml:"github_repo"`
	DefaultDependency string `yaml:"default_dependency"`
	StoreConfigFile   string `yaml:"store_config_file"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:           "create-shopify-pipeline",
			DisplayName:       "Shopify Pipeline",
			Description:       "Create a new Shopify Pipeline theme",
			HomeDir:           ".shopify-pipeline",
			EnvPrefix:         "SHOPIFY_PIPELINE",
			GitHubRepo:        "shopify-pipeline/create-shopify-pipeline",
			DefaultDependency: "shopify-pipeline",
			StoreConfigFile:   "config/shopify.yml",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "create-shopify-pipeline").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Shopify Pipeline").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".shopify-pipeline").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "SHOPIFY_PIPELINE").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" string releases are published under.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// DefaultDependency returns the package installed into every new project
// unless overridden.
func DefaultDependency() string { load(); return defaults.DefaultDependency }

// StoreConfigFile returns the project-relative path of the store credentials
// file users are reminded to fill out.
func StoreConfigFile() string { load(); return defaults.StoreConfigFile }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("target_dir") → "SHOPIFY_PIPELINE_TARGET_DIR".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
