package scaffold

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/shopify-pipeline/create-shopify-pipeline/internal/dependency"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/logging"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/naming"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/pkgmanager"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/runtime"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/testutil"
	"github.com/spf13/afero"
)

// recorder captures progress milestones.
type recorder struct {
	events []string
}

func (r *recorder) Creating(dir string)            { r.events = append(r.events, "creating "+dir) }
func (r *recorder) Installing(dep, manager string) { r.events = append(r.events, "installing "+dep+" "+manager) }
func (r *recorder) Bootstrapping()                 { r.events = append(r.events, "bootstrapping") }

func newOptions(t *testing.T, baseDir, name, dep string) Options {
	t.Helper()
	ref, err := dependency.Parse(dep)
	if err != nil {
		t.Fatal(err)
	}
	return Options{
		Name:       name,
		BaseDir:    baseDir,
		Dependency: ref,
		Silent:     true,
		Stdout:     io.Discard,
		Stderr:     io.Discard,
		Logger:     logging.NewForTest(),
	}
}

// assertOnly fails unless baseDir contains exactly the given entries.
func assertOnly(t *testing.T, baseDir string, names ...string) {
	t.Helper()
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	if strings.Join(got, ",") != strings.Join(names, ",") {
		t.Errorf("%s contains %v, want %v", baseDir, got, names)
	}
}

func TestNewTarget(t *testing.T) {
	base := t.TempDir()
	target, err := NewTarget(base, "my-theme")
	if err != nil {
		t.Fatalf("NewTarget() error: %v", err)
	}
	if target.Dir != filepath.Join(base, "my-theme") {
		t.Errorf("Dir = %q", target.Dir)
	}
	if !filepath.IsAbs(target.Dir) {
		t.Errorf("Dir %q is not absolute", target.Dir)
	}

	var invalid *naming.InvalidNameError
	if _, err := NewTarget(base, "My Theme"); !errors.As(err, &invalid) {
		t.Errorf("NewTarget(My Theme) error = %v, want *naming.InvalidNameError", err)
	}
}

// statErrFs fails every Stat with a permission error.
type statErrFs struct {
	afero.Fs
}

func (statErrFs) Stat(name string) (os.FileInfo, error) {
	return nil, &fs.PathError{Op: "stat", Path: name, Err: syscall.EACCES}
}

func TestCheckTarget(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("/work/existing", 0755); err != nil {
		t.Fatal(err)
	}

	if err := CheckTarget(fsys, "/work/new"); err != nil {
		t.Errorf("CheckTarget(absent) = %v, want nil", err)
	}
	if err := CheckTarget(fsys, "/work/existing"); !errors.Is(err, ErrTargetExists) {
		t.Errorf("CheckTarget(existing) = %v, want ErrTargetExists", err)
	}

	err := CheckTarget(statErrFs{fsys}, "/work/locked")
	if err == nil || errors.Is(err, ErrTargetExists) {
		t.Fatalf("CheckTarget(locked) = %v, want the underlying error", err)
	}
	if !errors.Is(err, syscall.EACCES) {
		t.Errorf("CheckTarget(locked) should wrap EACCES, got %v", err)
	}
}

func TestRun_CreatesProject(t *testing.T) {
	bin := testutil.NewBinDir(t)
	testutil.FakeYarn(t, bin, "1.22.19", "shopify-pipeline")
	base := t.TempDir()

	progress := &recorder{}
	opts := newOptions(t, base, "my-theme", "shopify-pipeline")
	opts.Progress = progress

	result, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	target := filepath.Join(base, "my-theme")
	if result.Target.Dir != target {
		t.Errorf("Target.Dir = %q, want %q", result.Target.Dir, target)
	}
	if result.Manager.Name != pkgmanager.NameYarn {
		t.Errorf("Manager = %s, want yarn", result.Manager.Name)
	}
	if result.DependencyVersion != "2.0.0" {
		t.Errorf("DependencyVersion = %q, want 2.0.0", result.DependencyVersion)
	}
	if result.Initializer.Runtime != runtime.RuntimeExec {
		t.Errorf("Initializer.Runtime = %q", result.Initializer.Runtime)
	}

	data, err := os.ReadFile(filepath.Join(target, "package.json"))
	if err != nil {
		t.Fatalf("package.json not created: %v", err)
	}
	var pkg map[string]any
	if err := json.Unmarshal(data, &pkg); err != nil {
		t.Fatalf("package.json is not JSON: %v", err)
	}
	if pkg["name"] != "my-theme" || pkg["version"] != "0.1.0" || pkg["private"] != true {
		t.Errorf("package.json = %s", data)
	}

	if _, err := os.Stat(filepath.Join(target, ".initialized")); err != nil {
		t.Errorf("initializer did not run: %v", err)
	}
	assertOnly(t, base, "my-theme")

	want := []string{"creating " + target, "installing shopify-pipeline yarn", "bootstrapping"}
	if strings.Join(progress.events, "|") != strings.Join(want, "|") {
		t.Errorf("progress = %v, want %v", progress.events, want)
	}
}

func TestRun_FallsBackToNPM(t *testing.T) {
	bin := testutil.NewBinDir(t)
	testutil.WriteFailingTool(t, bin, "yarnpkg", "yarn is broken", 1)
	testutil.FakeNPM(t, bin, "10.2.0", "shopify-pipeline")
	base := t.TempDir()

	result, err := Run(context.Background(), newOptions(t, base, "my-theme", "shopify-pipeline"))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result.Manager.Name != pkgmanager.NameNPM {
		t.Errorf("Manager = %s, want npm", result.Manager.Name)
	}

	args, err := os.ReadFile(filepath.Join(base, "my-theme", ".install-args"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(args)); got != "install --save-dev shopify-pipeline" {
		t.Errorf("npm args = %q", got)
	}
}

func TestRun_GitDependencyOverride(t *testing.T) {
	bin := testutil.NewBinDir(t)
	testutil.FakeYarn(t, bin, "1.22.19", "REPO")
	base := t.TempDir()

	dep := "git+ssh://git@github.com/acme/REPO.git#feature"
	result, err := Run(context.Background(), newOptions(t, base, "my-theme", dep))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !strings.Contains(result.Initializer.Path, filepath.Join("node_modules", "REPO", "scripts")) {
		t.Errorf("Initializer.Path = %q, want it under node_modules/REPO/scripts", result.Initializer.Path)
	}
	args, err := os.ReadFile(filepath.Join(base, "my-theme", ".install-args"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(args)); got != "add --dev "+dep {
		t.Errorf("yarn args = %q", got)
	}
}

func TestRun_InvalidNameTouchesNothing(t *testing.T) {
	bin := testutil.NewBinDir(t)
	marker := filepath.Join(t.TempDir(), "probed")
	testutil.WriteTool(t, bin, "yarnpkg", "touch "+marker+"\n")
	base := t.TempDir()

	_, err := Run(context.Background(), newOptions(t, base, "_bad", "shopify-pipeline"))
	var invalid *naming.InvalidNameError
	if !errors.As(err, &invalid) {
		t.Fatalf("Run() error = %v, want *naming.InvalidNameError", err)
	}
	assertOnly(t, base)
	if _, err := os.Stat(marker); err == nil {
		t.Error("package manager was probed for an invalid name")
	}
}

func TestRun_ExistingTarget(t *testing.T) {
	testutil.NewBinDir(t)
	base := t.TempDir()
	existing := filepath.Join(base, "my-theme")
	if err := os.Mkdir(existing, 0755); err != nil {
		t.Fatal(err)
	}

	progress := &recorder{}
	opts := newOptions(t, base, "my-theme", "shopify-pipeline")
	opts.Progress = progress

	_, err := Run(context.Background(), opts)
	if !errors.Is(err, ErrTargetExists) {
		t.Fatalf("Run() error = %v, want ErrTargetExists", err)
	}
	assertOnly(t, base, "my-theme")
	entries, _ := os.ReadDir(existing)
	if len(entries) != 0 {
		t.Errorf("existing directory was written to: %v", entries)
	}
	if len(progress.events) != 0 {
		t.Errorf("no progress expected, got %v", progress.events)
	}
}

func TestRun_InstallFailureCleansUp(t *testing.T) {
	bin := testutil.NewBinDir(t)
	testutil.WriteTool(t, bin, "yarnpkg", `
case "$1" in
--version) echo 1.22.19 ;;
*) echo "network unreachable" >&2; exit 1 ;;
esac
`)
	base := t.TempDir()

	_, err := Run(context.Background(), newOptions(t, base, "my-theme", "shopify-pipeline"))
	var installErr *pkgmanager.InstallError
	if !errors.As(err, &installErr) {
		t.Fatalf("Run() error = %v, want *pkgmanager.InstallError", err)
	}
	if !strings.Contains(err.Error(), "yarnpkg add --dev shopify-pipeline") {
		t.Errorf("error should name the command, got %q", err)
	}
	assertOnly(t, base)
}

func TestRun_InitFailureCleansUp(t *testing.T) {
	bin := testutil.NewBinDir(t)
	testutil.WriteTool(t, bin, "yarnpkg", `
case "$1" in
--version) echo 1.22.19 ;;
add)
	mkdir -p node_modules/shopify-pipeline/scripts
	printf '#!/bin/sh\necho "cannot copy templates" >&2\nexit 1\n' > node_modules/shopify-pipeline/scripts/init
	chmod +x node_modules/shopify-pipeline/scripts/init
	;;
esac
`)
	base := t.TempDir()

	_, err := Run(context.Background(), newOptions(t, base, "my-theme", "shopify-pipeline"))
	var initErr *runtime.InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("Run() error = %v, want *runtime.InitError", err)
	}
	if !strings.Contains(initErr.Stderr, "cannot copy templates") {
		t.Errorf("Stderr = %q", initErr.Stderr)
	}
	assertOnly(t, base)
}

func TestRun_MissingInitializer(t *testing.T) {
	bin := testutil.NewBinDir(t)
	testutil.WriteTool(t, bin, "yarnpkg", `
case "$1" in
--version) echo 1.22.19 ;;
add) mkdir -p node_modules/shopify-pipeline ;;
esac
`)
	base := t.TempDir()

	_, err := Run(context.Background(), newOptions(t, base, "my-theme", "shopify-pipeline"))
	if err == nil || !strings.Contains(err.Error(), "provides no initializer") {
		t.Fatalf("Run() error = %v, want missing initializer", err)
	}
	assertOnly(t, base)
}

// renameErrFs fails Rename and delegates everything else.
type renameErrFs struct {
	afero.Fs
}

func (renameErrFs) Rename(oldname, newname string) error {
	return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: syscall.EXDEV}
}

func TestRun_RenameFailureCleansUp(t *testing.T) {
	bin := testutil.NewBinDir(t)
	testutil.FakeYarn(t, bin, "1.22.19", "shopify-pipeline")
	base := t.TempDir()

	opts := newOptions(t, base, "my-theme", "shopify-pipeline")
	opts.Fs = renameErrFs{afero.NewOsFs()}

	_, err := Run(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), "moving project into") {
		t.Fatalf("Run() error = %v, want rename failure", err)
	}
	assertOnly(t, base)
}

func TestRun_DefaultDependency(t *testing.T) {
	bin := testutil.NewBinDir(t)
	testutil.FakeYarn(t, bin, "1.22.19", "shopify-pipeline")
	base := t.TempDir()

	opts := newOptions(t, base, "my-theme", "shopify-pipeline")
	opts.Dependency = dependency.Reference{}

	if _, err := Run(context.Background(), opts); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "my-theme", "node_modules", "shopify-pipeline")); err != nil {
		t.Errorf("default dependency not installed: %v", err)
	}
}
