// Package manifest builds, validates and writes the package.json seeded into
// every new project. Records are checked against an embedded JSON Schema and
// the version must be a strict semantic version.
package manifest
