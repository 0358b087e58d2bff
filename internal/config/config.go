package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopify-pipeline/create-shopify-pipeline/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyDependency     = "dependency"
	KeyPackageManager = "package_manager"
	KeySilent         = "silent"
	KeyVerbose        = "verbose"
	KeyUpdateCheck    = "update_check"
)

// Package manager preferences.
const (
	ManagerAuto = "auto"
	ManagerYarn = "yarn"
	ManagerNPM  = "npm"
)

// Settings is the resolved configuration for one invocation.
type Settings struct {
	Dependency     string
	PackageManager string
	Silent         bool
	Verbose        bool
	// UpdateCheck enables the "newer release available" notice.
	UpdateCheck bool
}

// Dir returns the path to the config directory (~/.shopify-pipeline/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.shopify-pipeline/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Load reads configFile (or the default path when empty) and the environment
// into v and returns the resolved settings. A missing file is not an error.
func Load(v *viper.Viper, configFile string) (*Settings, error) {
	if configFile == "" {
		configFile = FilePath()
	}

	v.SetDefault(KeyDependency, branding.DefaultDependency())
	v.SetDefault(KeyPackageManager, ManagerAuto)
	v.SetDefault(KeySilent, false)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyUpdateCheck, true)

	v.SetConfigFile(configFile)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	if _, err := os.Stat(configFile); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking config file %s: %w", configFile, err)
	}

	s := &Settings{
		Dependency:     v.GetString(KeyDependency),
		PackageManager: v.GetString(KeyPackageManager),
		Silent:         v.GetBool(KeySilent),
		Verbose:        v.GetBool(KeyVerbose),
		UpdateCheck:    v.GetBool(KeyUpdateCheck),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that every setting holds a usable value.
func (s *Settings) Validate() error {
	if s.Dependency == "" {
		return fmt.Errorf("%s must not be empty", KeyDependency)
	}
	switch s.PackageManager {
	case ManagerAuto, ManagerYarn, ManagerNPM:
		return nil
	default:
		return fmt.Errorf("%s must be %q, %q or %q, got %q",
			KeyPackageManager, ManagerAuto, ManagerYarn, ManagerNPM, s.PackageManager)
	}
}
