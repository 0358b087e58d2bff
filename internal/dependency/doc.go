// Package dependency parses the package reference handed to the package
// manager. Besides the raw string passed through to yarn or npm, a Reference
// knows the directory name the package lands in under node_modules, which is
// where the init entry point is looked up.
package dependency
