// Package orchestrator owns the listening socket, the kernel readiness
// primitive, the connection registry, and the four worker pools (read,
// parse+execute, write, and a spare reserved for future use), and moves
// each connection through the pipeline:
//
//	accept -> readiness set -> read pool -> parse+execute pool -> write pool -> (readiness set | closed)
//
// One dedicated goroutine runs accept(2) in a loop; another runs the
// readiness wait in a loop. Everything else happens on the worker
// pools. A connection's serializing lock (internal/connstate) is
// acquired once, when the readiness loop claims a ready descriptor, and
// is released only by whichever stage either hands the connection back
// to the readiness set or closes it — so at most one goroutine ever
// touches a given connection's state at a time, even though different
// requests for that connection may run on different worker goroutines
// over its lifetime.
//
// Lock hierarchy, acquired in this order and never reversed:
//
//  1. connection registry lock
//  2. per-connection state lock
//  3. readiness-set lock
//
// There is no separate literal "in-flight set": a descriptor not
// present in the readiness primitive's armed set is, by construction,
// owned by whichever pipeline stage's job queue currently holds it.
package orchestrator
