package naming

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxLength is the longest name npm accepts for new packages.
const MaxLength = 214

var (
	blacklist = []string{"node_modules", "favicon.ico"}

	// Node.js built-in modules. Names matching one of these shadow the
	// built-in when required, so npm refuses them for new packages.
	coreModules = map[string]bool{
		"assert": true, "async_hooks": true, "buffer": true, "child_process": true,
		"cluster": true, "console": true, "constants": true, "crypto": true,
		"dgram": true, "diagnostics_channel": true, "dns": true, "domain": true,
		"events": true, "fs": true, "http": true, "http2": true, "https": true,
		"inspector": true, "module": true, "net": true, "os": true, "path": true,
		"perf_hooks": true, "process": true, "punycode": true, "querystring": true,
		"readline": true, "repl": true, "stream": true, "string_decoder": true,
		"sys": true, "timers": true, "tls": true, "trace_events": true, "tty": true,
		"url": true, "util": true, "v8": true, "vm": true, "wasi": true,
		"worker_threads": true, "zlib": true,
	}

	scopedPattern = regexp.MustCompile(`^@([^/]+)/([^/]+)$`)
)

// Result is the outcome of validating a package name. Errors make a name
// invalid for any package; warnings only make it invalid for new ones.
type Result struct {
	ValidForNewPackages bool
	ValidForOldPackages bool
	Errors              []string
	Warnings            []string
}

// Problems returns errors followed by warnings.
func (r Result) Problems() []string {
	out := make([]string, 0, len(r.Errors)+len(r.Warnings))
	out = append(out, r.Errors...)
	return append(out, r.Warnings...)
}

// InvalidNameError is returned by Check when a name cannot be used for a new
// project.
type InvalidNameError struct {
	Name     string
	Problems []string
}

func (e *InvalidNameError) Error() string {
	return "The provided application name is invalid: " + strings.Join(e.Problems, ", ")
}

// Validate applies the npm package-name rules to name.
func Validate(name string) Result {
	var errs, warnings []string

	if name == "" {
		errs = append(errs, "name length must be greater than zero")
	}
	if strings.HasPrefix(name, ".") {
		errs = append(errs, "name cannot start with a period")
	}
	if strings.HasPrefix(name, "_") {
		errs = append(errs, "name cannot start with an underscore")
	}
	if strings.TrimSpace(name) != name {
		errs = append(errs, "name cannot contain leading or trailing spaces")
	}
	for _, b := range blacklist {
		if strings.ToLower(name) == b {
			errs = append(errs, fmt.Sprintf("%s is a blacklisted name", b))
		}
	}

	if coreModules[strings.ToLower(name)] {
		warnings = append(warnings, fmt.Sprintf("%s is a core module name", name))
	}
	if len(name) > MaxLength {
		warnings = append(warnings, fmt.Sprintf("name can no longer contain more than %d characters", MaxLength))
	}
	if strings.ToLower(name) != name {
		warnings = append(warnings, "name can no longer contain capital letters")
	}
	segments := strings.Split(name, "/")
	if strings.ContainsAny(segments[len(segments)-1], "~'!()*") {
		warnings = append(warnings, `name can no longer contain special characters ("~'!()*")`)
	}

	if !urlSafe(name) {
		m := scopedPattern.FindStringSubmatch(name)
		if m == nil || !urlSafe(m[1]) || !urlSafe(m[2]) {
			errs = append(errs, "name can only contain URL-friendly characters")
		}
	}

	return Result{
		ValidForNewPackages: len(errs) == 0 && len(warnings) == 0,
		ValidForOldPackages: len(errs) == 0,
		Errors:              errs,
		Warnings:            warnings,
	}
}

// Check returns an *InvalidNameError unless name is usable as the name of a
// new project directory and package.
func Check(name string) error {
	r := Validate(name)
	if !r.ValidForNewPackages {
		return &InvalidNameError{Name: name, Problems: r.Problems()}
	}
	if strings.Contains(name, "/") {
		return &InvalidNameError{
			Name:     name,
			Problems: []string{"scoped package names cannot be used as a directory name"},
		}
	}
	return nil
}

// urlSafe reports whether s is unchanged by JavaScript's encodeURIComponent.
func urlSafe(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.IndexByte("-_.!~*'()", c) >= 0:
		default:
			return false
		}
	}
	return true
}
