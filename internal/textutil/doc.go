// Package textutil quotes and splits command lines for building engine
// invocations and reading dropped paths.
//
// QuoteArg renders a path as exactly one literal argument for sh or cmd.exe.
// Quoting never consults the filesystem; the same input always renders the
// same argument.
package textutil
