// Package session drives the interactive prompt loop for one operation.
//
// The loop is an explicit state machine:
//
//	AwaitingInput -> Validating -> Invoking -> Reporting -> AwaitingInput
//
// with two short-circuits: Validating -> Reporting when a precondition
// fails, and AwaitingInput -> Terminated on an exit keyword or end of input.
// Errors are always reported and never end the loop.
package session
