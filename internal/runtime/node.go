package runtime

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// nodeShim loads the entry module, calls its exported function with the
// target directory and waits for a returned promise. Any throw or rejection
// exits with status 1.
const nodeShim = `
const entry = process.argv[1];
const target = process.argv[2];
const mod = require(entry);
const init = typeof mod === 'function' ? mod : mod && mod.default;
if (typeof init !== 'function') {
  console.error('initializer ' + entry + ' does not export a function');
  process.exit(1);
}
Promise.resolve()
  .then(() => init(target))
  .catch((err) => {
    console.error(err && err.stack ? err.stack : String(err));
    process.exit(1);
  });
`

// stderrTailLines is how many lines of initializer stderr an InitError keeps.
const stderrTailLines = 20

// NodeRuntime runs scripts/init.js initializers.
type NodeRuntime struct {
	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Init invokes `node -e <shim> <entry> <targetDir>` in targetDir.
func (n *NodeRuntime) Init(ctx context.Context, entry *EntryPoint, targetDir string, vars map[string]string) error {
	nodeBin, err := exec.LookPath("node")
	if err != nil {
		return fmt.Errorf("node runtime requires Node.js: %w", err)
	}

	cmd := exec.CommandContext(ctx, nodeBin, "-e", nodeShim, entry.Path, targetDir)
	return run(cmd, entry, targetDir, vars, n.Stdout, n.Stderr)
}

// run executes cmd in targetDir with vars added to the environment, streaming
// output to the configured writers and keeping stderr for error reporting.
func run(cmd *exec.Cmd, entry *EntryPoint, targetDir string, vars map[string]string, stdout, stderr io.Writer) error {
	cmd.Dir = targetDir
	cmd.Env = buildEnv(os.Environ(), vars)
	cmd.Stdin = os.Stdin

	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	var stderrBuf bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		return &InitError{
			Entry:    entry.Path,
			ExitCode: exitErr.ExitCode(),
			Stderr:   tailLines(stderrBuf.String(), stderrTailLines),
		}
	}
	return fmt.Errorf("running initializer %s: %w", entry.Path, err)
}

// buildEnv returns env with vars set, in sorted key order so the result is
// deterministic.
func buildEnv(env []string, vars map[string]string) []string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = setEnv(env, k, vars[k])
	}
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

func tailLines(s string, n int) string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
