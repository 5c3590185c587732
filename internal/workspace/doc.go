// Package workspace owns the per-job working directories the engine runs in.
//
// Every job directory lives directly under the configured temp root and is
// named glyphsmith-job-<uuid>. An advisory lock on <root>/.glyphsmith.lock is
// held from Create until Dir.Remove, so across every glyphsmith process at
// most one job directory exists at a time. Directories left behind by a
// crashed run are therefore orphans by definition and are removed as soon as
// the next Create acquires the lock.
package workspace
