package runtime

import (
	"context"
	"io"
	"os/exec"
)

// ExecRuntime runs scripts/init executables directly.
type ExecRuntime struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Init invokes `<entry> <targetDir>` in targetDir.
func (e *ExecRuntime) Init(ctx context.Context, entry *EntryPoint, targetDir string, vars map[string]string) error {
	cmd := exec.CommandContext(ctx, entry.Path, targetDir)
	return run(cmd, entry, targetDir, vars, e.Stdout, e.Stderr)
}
