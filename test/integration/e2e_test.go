//go:build integration

package integration_test

import (
	"path/filepath"
	"strings"
	"testing"
)

// TestCreateWithYarn covers the full flow: manifest, install, init, rename
// and the success summary.
func TestCreateWithYarn(t *testing.T) {
	env := setupTestEnv(t)
	env.writeTool(t, "yarnpkg", installScript("1.22.19", "add", "shopify-pipeline"))

	stdout, stderr, code := env.run(t, "my-theme")
	if code != 0 {
		t.Fatalf("exit code = %d\nstdout:\n%s\nstderr:\n%s", code, stdout, stderr)
	}

	project := filepath.Join(env.WorkDir, "my-theme")
	assertFileContains(t, filepath.Join(project, "package.json"), `"name": "my-theme"`)
	assertFileContains(t, filepath.Join(project, "package.json"), `"version": "0.1.0"`)
	assertFileContains(t, filepath.Join(project, "package.json"), `"private": true`)
	assertFileContains(t, filepath.Join(project, ".install-args"), "add --dev shopify-pipeline")
	assertFileContains(t, filepath.Join(project, "src", ".name"), "my-theme")
	assertFileExists(t, filepath.Join(project, "config", "shopify.yml"))
	assertOnlyEntries(t, env.WorkDir, "my-theme")

	for _, want := range []string{"Creating a new Shopify Pipeline theme in", "yarn serve", "yarn deploy", "config/shopify.yml"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

// TestCreateFallsBackToNPM runs with no yarnpkg on PATH.
func TestCreateFallsBackToNPM(t *testing.T) {
	env := setupTestEnv(t)
	env.writeTool(t, "npm", installScript("10.2.0", "install", "shopify-pipeline"))

	stdout, stderr, code := env.run(t, "my-theme", "--silent")
	if code != 0 {
		t.Fatalf("exit code = %d\nstderr:\n%s", code, stderr)
	}
	assertFileContains(t, filepath.Join(env.WorkDir, "my-theme", ".install-args"), "install --save-dev shopify-pipeline")
	if !strings.Contains(stdout, "npm run serve") {
		t.Errorf("summary should use npm run:\n%s", stdout)
	}
}

// TestCreateFromGitReference installs a git dependency and runs its initializer.
func TestCreateFromGitReference(t *testing.T) {
	env := setupTestEnv(t)
	env.writeTool(t, "yarnpkg", installScript("1.22.19", "add", "theme-kit"))

	ref := "git+ssh://git@github.com/acme/theme-kit.git#main"
	_, stderr, code := env.run(t, "my-theme", "--silent", "--internal-testing-repo="+ref)
	if code != 0 {
		t.Fatalf("exit code = %d\nstderr:\n%s", code, stderr)
	}
	assertFileContains(t, filepath.Join(env.WorkDir, "my-theme", ".install-args"), ref)
	assertFileExists(t, filepath.Join(env.WorkDir, "my-theme", "src", ".name"))
}

// TestCreateConfigForcesNPM uses the config file in HOME.
func TestCreateConfigForcesNPM(t *testing.T) {
	env := setupTestEnv(t)
	env.writeTool(t, "yarnpkg", installScript("1.22.19", "add", "shopify-pipeline"))
	env.writeTool(t, "npm", installScript("10.2.0", "install", "shopify-pipeline"))
	writeFile(t, filepath.Join(env.HomeDir, ".shopify-pipeline", "config.yaml"), "package_manager: npm\nsilent: true\n")

	_, stderr, code := env.run(t, "my-theme")
	if code != 0 {
		t.Fatalf("exit code = %d\nstderr:\n%s", code, stderr)
	}
	assertFileContains(t, filepath.Join(env.WorkDir, "my-theme", ".install-args"), "install --save-dev")
}
