// Package connstate defines the per-connection state object that moves
// through the orchestrator's pipeline stages.
//
// A State carries the raw socket, the accumulating read buffer, the
// most recently parsed command, the pending response, and a fatal-error
// flag, behind a single serializing lock. Exactly one pipeline stage
// holds that lock at a time: the stage that currently owns the
// connection acquires it when claiming the job and releases it only
// when handing the connection to the next stage (by enqueuing a job on
// another pool) or to close_and_cleanup. Two stages never touch the
// same State concurrently.
package connstate
