// Package main hosts the glyphsmith CLI entrypoint and command graph.
//
// Each font operation (optimize, convert, merge-svg) runs either over the
// paths given on the command line, one job at a time, or as an interactive
// prompt loop when no path is given. The package resolves configuration,
// sets up logging, and brackets every command with the console encoding
// scope so subcommands only deal with presenting results.
//
// Keep this package lean: behaviour lives in the internal packages and is
// surfaced here through commands and flags.
package main
