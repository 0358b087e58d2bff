// Package scaffold creates a new project. It powers the root command: the
// project is assembled in a staging directory next to the target (manifest,
// dependency install, delegated initializer) and renamed into place only
// after every step succeeded, so a failed run never leaves a half-built
// project behind.
package scaffold
