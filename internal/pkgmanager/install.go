package pkgmanager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// outputTailLines is how many lines of captured output a silent install
// failure reports.
const outputTailLines = 20

// Streams configures the standard streams of the install process.
type Streams struct {
	// Stdout and Stderr default to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	// Silent discards the process output instead of streaming it. The
	// output is still captured for error reporting.
	Silent bool
}

// InstallError is returned when the install process fails to start or exits
// with a non-zero status.
type InstallError struct {
	Dir         string
	CommandLine string
	// ExitCode is -1 when the process could not be started.
	ExitCode int
	// Output holds the tail of the captured output of a silent install.
	Output string
	Err    error
}

func (e *InstallError) Error() string {
	msg := fmt.Sprintf("could not install in %q with command %q", e.Dir, e.CommandLine)
	if e.Output != "" {
		msg += "\n" + e.Output
	}
	return msg
}

func (e *InstallError) Unwrap() error { return e.Err }

// Install adds dep as a dev dependency of the project in dir. It returns nil
// only when the package manager exits with status zero.
func (m *Manager) Install(ctx context.Context, dir, dep string, s Streams) error {
	args := m.AddDevArgs(dep)
	cmd := exec.CommandContext(ctx, m.Command, args...)
	cmd.Dir = dir

	var captured bytes.Buffer
	if s.Silent {
		cmd.Stdout = &captured
		cmd.Stderr = &captured
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = s.Stdout
		if cmd.Stdout == nil {
			cmd.Stdout = os.Stdout
		}
		cmd.Stderr = s.Stderr
		if cmd.Stderr == nil {
			cmd.Stderr = os.Stderr
		}
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	installErr := &InstallError{
		Dir:         dir,
		CommandLine: m.CommandLine(dep),
		ExitCode:    -1,
		Output:      tail(captured.String(), outputTailLines),
		Err:         err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		installErr.ExitCode = exitErr.ExitCode()
	}
	return installErr
}

// tail returns the last n lines of s.
func tail(s string, n int) string {
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
