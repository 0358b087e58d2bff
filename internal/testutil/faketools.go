// Package testutil provides helpers shared by package tests: fake
// executables standing in for yarnpkg, npm and node, placed on a temporary
// PATH so the real tools are never touched.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// RequirePOSIX skips the test on platforms without /bin/sh.
func RequirePOSIX(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are POSIX shell scripts")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
}

// NewBinDir creates a directory for fake tools and puts it in front of PATH.
// The system PATH stays reachable so scripts can use mkdir, chmod and friends.
func NewBinDir(t *testing.T) string {
	t.Helper()
	RequirePOSIX(t)

	dir := t.TempDir()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return dir
}

// NewIsolatedBinDir creates a directory for fake tools and makes it the only
// PATH entry. Scripts must stick to shell builtins.
func NewIsolatedBinDir(t *testing.T) string {
	t.Helper()
	RequirePOSIX(t)

	dir := t.TempDir()
	t.Setenv("PATH", dir)
	return dir
}

// WriteTool writes an executable shell script called name into dir.
func WriteTool(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + strings.TrimLeft(body, "\n")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("writing fake tool %s: %v", name, err)
	}
	return path
}

// WriteFailingTool writes a tool that prints msg to stderr and exits with code.
func WriteFailingTool(t *testing.T, dir, name, msg string, code int) string {
	t.Helper()
	body := "echo '" + msg + "' >&2\nexit " + strconv.Itoa(code) + "\n"
	return WriteTool(t, dir, name, body)
}

// FakeYarn writes a yarnpkg that reports version and, on `add`, installs a
// package called module whose scripts/init executable writes a marker file
// named .initialized into the directory it is given.
func FakeYarn(t *testing.T, dir, version, module string) string {
	t.Helper()
	return WriteTool(t, dir, "yarnpkg", fakeInstaller(version, "add", module))
}

// FakeNPM is FakeYarn for npm, triggered by `install`.
func FakeNPM(t *testing.T, dir, version, module string) string {
	t.Helper()
	return WriteTool(t, dir, "npm", fakeInstaller(version, "install", module))
}

func fakeInstaller(version, verb, module string) string {
	pkgDir := "node_modules/" + module
	return `
case "$1" in
--version)
	echo "` + version + `"
	;;
` + verb + `)
	echo "$@" > .install-args
	mkdir -p "` + pkgDir + `/scripts"
	printf '{"name":"%s","version":"2.0.0"}\n' "` + module + `" > "` + pkgDir + `/package.json"
	cat > "` + pkgDir + `/scripts/init" <<'INIT'
#!/bin/sh
echo "$1" > "$1/.initialized"
INIT
	chmod +x "` + pkgDir + `/scripts/init"
	;;
*)
	echo "unexpected arguments: $@" >&2
	exit 2
	;;
esac
`
}
