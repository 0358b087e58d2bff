package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/config"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/dependency"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/logging"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/report"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/scaffold"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/updater"
	"github.com/spf13/afero"
)

type createParams struct {
	Name string
	// Version is the running build, checked against the latest release.
	Version  string
	Settings *config.Settings
	// BaseDir defaults to the working directory.
	BaseDir string
	Stdout  io.Writer
	Stderr  io.Writer
}

func runCreate(ctx context.Context, p createParams) error {
	ref, err := dependency.Parse(p.Settings.Dependency)
	if err != nil {
		return err
	}

	logger := logging.New(p.Stderr, p.Settings.Verbose)
	rep := report.New(p.Stdout)
	logger.Debug("resolved dependency", "raw", ref.Raw, "module", ref.Module, "ref", ref.Ref, "git", ref.IsGit())

	result, err := scaffold.Run(ctx, scaffold.Options{
		Name:           p.Name,
		BaseDir:        p.BaseDir,
		Dependency:     ref,
		PackageManager: p.Settings.PackageManager,
		Silent:         p.Settings.Silent,
		Stdout:         p.Stdout,
		Stderr:         p.Stderr,
		Progress:       rep,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	if err := rep.Success(result.Target.Name, result.Target.Dir, result.Manager.RunPrefix()); err != nil {
		return err
	}

	if p.Settings.UpdateCheck {
		notifyUpdate(ctx, p.Version, p.Stdout, logger)
	}
	return nil
}

// notifyUpdate prints an upgrade notice when a newer release exists. Lookup
// failures are only logged.
func notifyUpdate(ctx context.Context, version string, w io.Writer, logger *log.Logger) {
	ctx, cancel := context.WithTimeout(ctx, updater.DefaultTimeout)
	defer cancel()

	u := updater.New(version, config.Dir(), updaterOptions...)
	notice, err := u.Check(ctx, afero.NewOsFs())
	if err != nil {
		logger.Debug("update check failed", "err", err)
		return
	}
	if notice != nil {
		updater.PrintNotice(w, notice)
	}
}

// updaterOptions lets tests point the release lookup at a local server.
var updaterOptions []updater.Option
