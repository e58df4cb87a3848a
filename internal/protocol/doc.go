// Package protocol implements a subset of the RESP (REdis Serialization
// Protocol) wire format: simple strings, errors, integers, bulk strings,
// and arrays.
//
// This package implements:
//
//   - value.go: the Value sum type and its serializer
//   - parser.go: ParseNext, the cursor-based object parser
//
// Serialize always writes canonical RESP. The parser also accepts some
// non-canonical forms (a '+' sign on an integer, any negative bulk length
// as null, leading zeros in a length), and those do not re-serialize to
// the bytes they were parsed from. A Value built through the New*
// constructors round-trips through Serialize then Parse to a structurally
// equal Value, except an Array holding elements other than bulk strings
// and arrays, which the parser rejects.
package protocol
