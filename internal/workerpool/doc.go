// Package workerpool implements a fixed-size group of goroutines sharing
// a bounded FIFO job queue, with cooperative condition-variable wakeups
// and a blocking, join-based shutdown.
//
// Workers block on a condition variable with a short timed wait so the
// shutdown flag is observed promptly even under an idle queue. Destroy
// sets the shutdown flag and blocks until every worker has exited,
// matching the blocking-join contract of the original thread pool rather
// than a busy-loop poll.
package workerpool
