package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Entry point locations, relative to the dependency's directory.
const (
	ScriptsDir     = "scripts"
	NodeEntryPoint = "init.js"
	ExecEntryPoint = "init"
)

// Supported runtime identifiers.
const (
	RuntimeNode = "node"
	RuntimeExec = "exec"
)

// EntryPoint is a resolved initializer.
type EntryPoint struct {
	Module  string
	Path    string
	Runtime string
}

// Runtime executes an initializer entry point against a target directory.
type Runtime interface {
	// Init runs entry for targetDir. vars are added to the inherited
	// environment of the child process.
	Init(ctx context.Context, entry *EntryPoint, targetDir string, vars map[string]string) error
}

// InitError is returned when an initializer exits with a non-zero status.
type InitError struct {
	Entry    string
	ExitCode int
	Stderr   string
}

func (e *InitError) Error() string {
	msg := fmt.Sprintf("init script %s failed with exit code %d", e.Entry, e.ExitCode)
	if e.Stderr != "" {
		msg += ":\n" + e.Stderr
	}
	return msg
}

// ModuleDir returns the directory module is installed into under projectDir.
func ModuleDir(projectDir, module string) string {
	return filepath.Join(projectDir, "node_modules", filepath.FromSlash(module))
}

// Resolve locates the initializer shipped by module inside projectDir.
// scripts/init.js takes precedence over scripts/init.
func Resolve(projectDir, module string) (*EntryPoint, error) {
	moduleDir := ModuleDir(projectDir, module)
	if _, err := os.Stat(moduleDir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("dependency %s is not installed at %s", module, moduleDir)
		}
		return nil, fmt.Errorf("checking %s: %w", moduleDir, err)
	}

	nodeEntry := filepath.Join(moduleDir, ScriptsDir, NodeEntryPoint)
	if isFile(nodeEntry) {
		return &EntryPoint{Module: module, Path: nodeEntry, Runtime: RuntimeNode}, nil
	}

	execEntry := filepath.Join(moduleDir, ScriptsDir, ExecEntryPoint)
	if isFile(execEntry) {
		return &EntryPoint{Module: module, Path: execEntry, Runtime: RuntimeExec}, nil
	}

	return nil, fmt.Errorf("dependency %s provides no initializer: expected %s or %s",
		module, filepath.Join(ScriptsDir, NodeEntryPoint), filepath.Join(ScriptsDir, ExecEntryPoint))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Dispatch returns the Runtime for the given runtime identifier. Output of
// the initializer is streamed to stdout and stderr; nil writers default to
// os.Stdout/os.Stderr.
func Dispatch(runtime string, stdout, stderr io.Writer) Runtime {
	switch runtime {
	case RuntimeNode:
		return &NodeRuntime{Stdout: stdout, Stderr: stderr}
	case RuntimeExec:
		return &ExecRuntime{Stdout: stdout, Stderr: stderr}
	default:
		return &unknownRuntime{name: runtime}
	}
}

// unknownRuntime is returned when the runtime identifier is not recognized.
type unknownRuntime struct {
	name string
}

func (u *unknownRuntime) Init(_ context.Context, _ *EntryPoint, _ string, _ map[string]string) error {
	return fmt.Errorf("unknown runtime %q: supported runtimes are %q and %q", u.name, RuntimeNode, RuntimeExec)
}
