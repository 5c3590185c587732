// Package fontforge mediates access to the FontForge executable that runs
// the glyphsmith operation scripts.
//
// It builds the "fontforge -script FILE ARGS..." command line, optionally
// routes it through sh or cmd.exe with every argument quoted as one literal,
// streams stdout as it arrives, and captures stderr verbatim together with
// the exit code. A non-zero exit is an Outcome, not an error: errors are
// reserved for processes that could not be run at all.
//
// Prefer this package over ad-hoc exec.Command usage when interacting with
// FontForge so argument quoting and stderr capture remain consistent.
package fontforge
