// Package respclient implements a minimal client for the RESP-subset
// protocol spoken by shardkv-server: it encodes a command as a RESP
// array of bulk strings, writes it to a TCP connection, and decodes the
// single reply object that comes back.
package respclient
