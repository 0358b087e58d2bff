// Package pkgmanager detects which Node package manager is available and
// uses it to add a dev dependency to a project. Yarn is preferred and probed
// through the yarnpkg binary so Hadoop's unrelated yarn command is never
// picked up; npm is the fallback.
package pkgmanager
