package pkgmanager

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
)

// Supported package managers.
const (
	NameYarn = "yarn"
	NameNPM  = "npm"

	// PreferenceAuto probes for yarn and falls back to npm.
	PreferenceAuto = "auto"
)

// Manager is a detected package manager.
type Manager struct {
	Name    string
	Command string
	// Version is nil when the version output could not be parsed.
	Version *semver.Version
}

// Yarn returns the yarn manager, invoked as yarnpkg.
func Yarn() *Manager { return &Manager{Name: NameYarn, Command: "yarnpkg"} }

// NPM returns the npm manager.
func NPM() *Manager { return &Manager{Name: NameNPM, Command: "npm"} }

// AddDevArgs returns the arguments that add dep as a dev dependency.
func (m *Manager) AddDevArgs(dep string) []string {
	if m.Name == NameYarn {
		return []string{"add", "--dev", dep}
	}
	return []string{"install", "--save-dev", dep}
}

// CommandLine returns the full install command for dep as a single string.
func (m *Manager) CommandLine(dep string) string {
	return m.Command + " " + strings.Join(m.AddDevArgs(dep), " ")
}

// RunPrefix returns how project scripts are run with this manager,
// e.g. "yarn" in "yarn serve" or "npm run" in "npm run serve".
func (m *Manager) RunPrefix() string {
	if m.Name == NameYarn {
		return "yarn"
	}
	return "npm run"
}

func (m *Manager) String() string {
	if m.Version == nil {
		return m.Name
	}
	return m.Name + " " + m.Version.String()
}

// Detect selects a package manager according to preference, which is one of
// PreferenceAuto, NameYarn or NameNPM.
func Detect(ctx context.Context, preference string, logger *log.Logger) (*Manager, error) {
	switch preference {
	case PreferenceAuto, "":
		yarn := Yarn()
		v, err := probe(ctx, yarn.Command)
		if err == nil {
			yarn.Version = v
			logger.Debug("using yarn", "version", versionString(v))
			return yarn, nil
		}
		logger.Debug("yarn not available, falling back to npm", "err", err)

		npm := NPM()
		// npm is assumed present; a failed probe only loses the version.
		if v, err := probe(ctx, npm.Command); err == nil {
			npm.Version = v
		} else {
			logger.Debug("npm version probe failed", "err", err)
		}
		return npm, nil
	case NameYarn, NameNPM:
		m := Yarn()
		if preference == NameNPM {
			m = NPM()
		}
		v, err := probe(ctx, m.Command)
		if err != nil {
			return nil, fmt.Errorf("%s was requested but %q failed: %w", preference, m.Command+" --version", err)
		}
		m.Version = v
		logger.Debug("using configured package manager", "name", m.Name, "version", versionString(v))
		return m, nil
	default:
		return nil, fmt.Errorf("unknown package manager %q: supported values are %q, %q and %q",
			preference, PreferenceAuto, NameYarn, NameNPM)
	}
}

// probe runs `<command> --version` and parses its output.
func probe(ctx context.Context, command string) (*semver.Version, error) {
	out, err := exec.CommandContext(ctx, command, "--version").Output()
	if err != nil {
		return nil, err
	}
	// Unparseable output still means the tool runs.
	v, _ := parseVersion(strings.TrimSpace(string(out)))
	return v, nil
}

// parseVersion strips a leading "v" and parses the version string.
func parseVersion(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}

func versionString(v *semver.Version) string {
	if v == nil {
		return "unknown"
	}
	return v.String()
}
