// Package runtime defines the plugin contract for delegated initializers and
// the runtimes that execute them. A dependency opts in by shipping either
// scripts/init.js, a Node module exporting a function that takes the target
// directory, or scripts/init, an executable that takes the target directory
// as its only argument. Resolve finds the entry point and Dispatch picks the
// runtime that runs it.
package runtime
