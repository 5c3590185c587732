// Package fontdiff compares two TrueType/OpenType fonts.
//
// A comparison reports the code points each font maps through its cmap,
// which were added or removed, and which shared code points changed their
// outline or horizontal metrics. Fonts are parsed natively with
// golang.org/x/image/font/sfnt; the FontForge engine is not involved.
package fontdiff
