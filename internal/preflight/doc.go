// Package preflight provides readiness checks for the FontForge engine, its
// operation scripts, and the directories glyphsmith writes to.
//
// These checks run in two contexts:
//   - Every job calls ResolveTools before a working directory is created.
//     A missing engine or script fails that job with a configuration error.
//   - The CLI "glyphsmith doctor" command uses RunAll to display every
//     check in one table.
package preflight
