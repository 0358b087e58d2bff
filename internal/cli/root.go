package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/branding"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/config"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/naming"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag names.
const (
	flagTestingRepo    = "internal-testing-repo"
	flagPackageManager = "package-manager"
	flagSilent         = "silent"
	flagVerbose        = "verbose"
	flagConfig         = "config"
)

// newRootCmd builds the root command with its own viper instance, so tests
// can run it repeatedly without shared state.
func newRootCmd(version string) *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   branding.CLIName() + " <project-name>",
		Short: branding.Description(),
		Long: `Create a new ` + branding.DisplayName() + ` theme.

Creates a directory named after the project, seeds a package.json, installs
` + branding.DefaultDependency() + ` with yarn (or npm when yarn is not available) and hands
over to its init script to copy the theme boilerplate.

Examples:
  ` + branding.CLIName() + ` my-theme
  ` + branding.CLIName() + ` my-theme --package-manager npm
  ` + branding.CLIName() + ` my-theme --internal-testing-repo=git+ssh://git@github.com/org/` + branding.DefaultDependency() + `.git#branch`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			// Reject bad names before reading config or touching the disk.
			if err := naming.Check(name); err != nil {
				return err
			}

			settings, err := config.Load(v, cfgFile)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			return runCreate(cmd.Context(), createParams{
				Name:     name,
				Version:  version,
				Settings: settings,
				Stdout:   cmd.OutOrStdout(),
				Stderr:   cmd.ErrOrStderr(),
			})
		},
	}

	flags := cmd.Flags()
	flags.String(flagTestingRepo, "", "install this package reference instead of "+branding.DefaultDependency()+" (registry name or git+ssh URL)")
	flags.String(flagPackageManager, config.ManagerAuto, "package manager to use: auto, yarn or npm")
	flags.Bool(flagSilent, false, "hide package manager and init script output")
	flags.BoolP(flagVerbose, "v", false, "enable debug logging")
	flags.StringVar(&cfgFile, flagConfig, "", "config file (default is $HOME/"+branding.HomeDir()+"/config.yaml)")

	_ = v.BindPFlag(config.KeyDependency, flags.Lookup(flagTestingRepo))
	_ = v.BindPFlag(config.KeyPackageManager, flags.Lookup(flagPackageManager))
	_ = v.BindPFlag(config.KeySilent, flags.Lookup(flagSilent))
	_ = v.BindPFlag(config.KeyVerbose, flags.Lookup(flagVerbose))

	return cmd
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	return fang.Execute(
		context.Background(),
		newRootCmd(version),
		fang.WithVersion(versionString(version, commit, date)),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
		// Subcommands would shadow project names.
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	)
}

// handleError prints err the same way for every failure; the caller exits 1.
func handleError(w io.Writer, _ fang.Styles, err error) {
	report.New(w).Error(err)
}

func versionString(version, commit, date string) string {
	if version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}
