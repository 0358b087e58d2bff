// Package updater tells users when a newer release of the CLI is out. The
// latest release is looked up on GitHub at most once a day and cached in the
// config directory; the command is usually installed once and forgotten, so
// the notice is the only prompt to upgrade.
package updater
