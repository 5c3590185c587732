// Package fontjob runs one font operation end to end.
//
// Process checks a job in a fixed order and stops at the first failure:
//  1. the input path is non-empty
//  2. the input exists (a file, or a directory for merge-svg)
//  3. the engine and the operation script are installed
//  4. the extension and options are acceptable for the operation
//
// Only then is a working directory created. The input is staged into it, the
// engine runs with it as the working directory, every file the engine
// produced is moved to the output directory, and the working directory is
// removed whatever happened. Errors carry one of the services markers;
// engine failures are *EngineError values holding the captured stderr.
package fontjob
