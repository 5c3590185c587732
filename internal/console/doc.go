// Package console scopes the terminal encoding to one CLI run.
//
// Apply switches the console to the configured code page (Windows) or wraps
// user-facing output in a transcoder when the locale is not UTF-8 (other
// platforms). Restore undoes it. Nothing here is global; callers hold the
// Session and must print through Session.Writer.
package console
