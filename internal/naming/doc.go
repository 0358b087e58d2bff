// Package naming validates project names against the npm package-name rules.
// A project name doubles as the directory name and the "name" field of the
// generated package.json, so it has to satisfy both.
package naming
