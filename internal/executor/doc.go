// Package executor validates a parsed RESP object as a GET/SET/DEL
// command and executes it against the partitioned store, producing the
// RESP response object.
//
// A command is valid iff the top-level object is an array of length
// exactly 2 (GET), exactly 3 (SET) or >= 2 (DEL), its first element is a simple-or-bulk string
// whose lowercase value names a known verb, and every key argument is a
// simple-or-bulk string. Anything else yields a non-fatal "Invalid
// command" error response; the connection is still recycled normally.
package executor
