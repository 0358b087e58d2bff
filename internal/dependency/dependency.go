package dependency

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Reference is a parsed dependency reference.
type Reference struct {
	// Raw is passed to the package manager unchanged.
	Raw string
	// Module is the directory name under node_modules.
	Module string
	// Ref is the git ref after '#' for git references.
	Ref string
	// Constraint is the version range for registry references, if any.
	Constraint *semver.Constraints
	// Tag is a dist-tag such as "latest" or "next" for registry references.
	Tag string
}

// IsGit reports whether the reference points to a git repository.
func (r Reference) IsGit() bool {
	return strings.HasPrefix(r.Raw, "git+")
}

func (r Reference) String() string { return r.Raw }

// Parse parses raw into a Reference. Supported forms:
//
//	shopify-pipeline
//	shopify-pipeline@^2.0.0
//	@scope/name@next
//	git+ssh://git@github.com/org/REPO.git#ref
func Parse(raw string) (Reference, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Reference{}, fmt.Errorf("dependency reference must not be empty")
	}

	if strings.HasPrefix(raw, "git+") {
		return parseGit(raw)
	}
	return parseRegistry(raw)
}

func parseGit(raw string) (Reference, error) {
	location, ref, _ := strings.Cut(raw, "#")

	// scp-like locations (git@host:org/repo.git) are not valid URLs, so the
	// last path segment is taken from the string directly.
	segment := location
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		segment = u.Path
	}
	segment = strings.TrimRight(segment, "/")
	if i := strings.LastIndexAny(segment, "/:"); i >= 0 {
		segment = segment[i+1:]
	}
	module := strings.TrimSuffix(path.Base(segment), ".git")
	if module == "" || module == "." {
		return Reference{}, fmt.Errorf("cannot derive a module name from %q", raw)
	}

	return Reference{Raw: raw, Module: module, Ref: ref}, nil
}

func parseRegistry(raw string) (Reference, error) {
	name, spec := raw, ""
	// The version separator is the first '@' after an optional scope prefix.
	searchFrom := 0
	if strings.HasPrefix(raw, "@") {
		searchFrom = 1
	}
	if i := strings.Index(raw[searchFrom:], "@"); i >= 0 {
		name, spec = raw[:searchFrom+i], raw[searchFrom+i+1:]
	}
	if name == "" || name == "@" {
		return Reference{}, fmt.Errorf("invalid dependency reference %q", raw)
	}
	if strings.HasPrefix(name, "@") && !strings.Contains(name, "/") {
		return Reference{}, fmt.Errorf("invalid scoped dependency %q: missing package name", raw)
	}

	r := Reference{Raw: raw, Module: name}
	if spec == "" {
		return r, nil
	}

	if c, err := semver.NewConstraint(spec); err == nil {
		r.Constraint = c
		return r, nil
	}
	if isTag(spec) {
		r.Tag = spec
		return r, nil
	}
	return Reference{}, fmt.Errorf("invalid version %q in dependency %q", spec, raw)
}

// isTag reports whether spec looks like an npm dist-tag. Tags must not be
// parseable as a semver range, which is checked by the caller.
func isTag(spec string) bool {
	if spec == "" {
		return false
	}
	for _, c := range spec {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.':
		default:
			return false
		}
	}
	return true
}
