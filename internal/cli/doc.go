// Package cli defines the command for create-shopify-pipeline. The command
// only handles flag parsing, configuration and output; the work itself is
// delegated to the scaffold package.
package cli
