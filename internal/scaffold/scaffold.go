package scaffold

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/branding"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/dependency"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/manifest"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/pkgmanager"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/runtime"
	"github.com/spf13/afero"
)

// Progress receives the user-facing milestones of a run.
type Progress interface {
	Creating(dir string)
	Installing(dep, manager string)
	Bootstrapping()
}

// Options configures a scaffold run.
type Options struct {
	Name string
	// BaseDir is where the project directory is created; defaults to the
	// current working directory.
	BaseDir    string
	Dependency dependency.Reference
	// PackageManager is "auto", "yarn" or "npm".
	PackageManager string
	// Silent discards package manager and initializer output.
	Silent bool

	Stdout io.Writer
	Stderr io.Writer

	// Fs must be backed by the OS filesystem: the package manager and the
	// initializer run as child processes against the same paths.
	Fs       afero.Fs
	Progress Progress
	Logger   *log.Logger
}

// Result describes a completed run.
type Result struct {
	Target      Target
	Manager     *pkgmanager.Manager
	Initializer *runtime.EntryPoint
	// DependencyVersion is the installed version, empty if unknown.
	DependencyVersion string
}

// Run creates the project described by opts.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts = withDefaults(opts)

	target, err := NewTarget(opts.BaseDir, opts.Name)
	if err != nil {
		return nil, err
	}
	if err := CheckTarget(opts.Fs, target.Dir); err != nil {
		return nil, err
	}
	opts.Progress.Creating(target.Dir)

	// Staging next to the target keeps the final rename on one filesystem.
	staging := filepath.Join(filepath.Dir(target.Dir), fmt.Sprintf(".%s-%s.staging", target.Name, uuid.NewString()))
	if err := opts.Fs.Mkdir(staging, 0755); err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}
	opts.Logger.Debug("staging project", "dir", staging)

	promoted := false
	defer func() {
		if promoted {
			return
		}
		if err := opts.Fs.RemoveAll(staging); err != nil {
			opts.Logger.Warn("could not remove staging directory", "dir", staging, "err", err)
		}
	}()

	if _, err := manifest.Write(opts.Fs, staging, manifest.New(target.Name)); err != nil {
		return nil, err
	}

	mgr, err := pkgmanager.Detect(ctx, opts.PackageManager, opts.Logger)
	if err != nil {
		return nil, err
	}

	opts.Progress.Installing(opts.Dependency.Raw, mgr.Name)
	streams := pkgmanager.Streams{Stdout: opts.Stdout, Stderr: opts.Stderr, Silent: opts.Silent}
	if err := mgr.Install(ctx, staging, opts.Dependency.Raw, streams); err != nil {
		return nil, err
	}

	result := &Result{Target: target, Manager: mgr}
	pkgPath := filepath.Join(runtime.ModuleDir(staging, opts.Dependency.Module), manifest.FileName)
	if pkg, err := manifest.Read(opts.Fs, pkgPath); err == nil {
		result.DependencyVersion = pkg.Version
		opts.Logger.Debug("installed dependency", "name", pkg.Name, "version", pkg.Version)
	} else {
		opts.Logger.Debug("could not read installed dependency manifest", "err", err)
	}

	opts.Progress.Bootstrapping()
	entry, err := runtime.Resolve(staging, opts.Dependency.Module)
	if err != nil {
		return nil, err
	}
	result.Initializer = entry
	opts.Logger.Debug("running initializer", "entry", entry.Path, "runtime", entry.Runtime)

	stdout, stderr := opts.Stdout, opts.Stderr
	if opts.Silent {
		stdout, stderr = io.Discard, io.Discard
	}
	vars := map[string]string{
		branding.EnvVar("project_name"):    target.Name,
		branding.EnvVar("target_dir"):      target.Dir,
		branding.EnvVar("package_manager"): mgr.Name,
	}
	if err := runtime.Dispatch(entry.Runtime, stdout, stderr).Init(ctx, entry, staging, vars); err != nil {
		return nil, err
	}

	// The target may have appeared while the install was running.
	if err := CheckTarget(opts.Fs, target.Dir); err != nil {
		return nil, err
	}
	if err := opts.Fs.Rename(staging, target.Dir); err != nil {
		return nil, fmt.Errorf("moving project into %s: %w", target.Dir, err)
	}
	promoted = true

	return result, nil
}

func withDefaults(opts Options) Options {
	if opts.Dependency.Raw == "" {
		if ref, err := dependency.Parse(branding.DefaultDependency()); err == nil {
			opts.Dependency = ref
		}
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Progress == nil {
		opts.Progress = nopProgress{}
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.PackageManager == "" {
		opts.PackageManager = pkgmanager.PreferenceAuto
	}
	return opts
}

type nopProgress struct{}

func (nopProgress) Creating(string)           {}
func (nopProgress) Installing(string, string) {}
func (nopProgress) Bootstrapping()            {}
