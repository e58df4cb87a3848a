package executor

import (
	"testing"

	"github.com/dreamware/shardkv/internal/protocol"
	"github.com/dreamware/shardkv/internal/store"
)

func bulkArray(parts ...string) protocol.Value {
	elems := make([]protocol.Value, len(parts))
	for i, p := range parts {
		elems[i] = protocol.NewBulkString([]byte(p))
	}
	return protocol.NewArray(elems)
}

func newTestExecutor() *Executor {
	return New(store.New(store.DefaultNumDatastores), nil)
}

func TestExecuteSetThenGet(t *testing.T) {
	e := newTestExecutor()

	res := e.Execute(bulkArray("SET", "x", "1"))
	if res.Fatal {
		t.Fatal("SET should not be fatal")
	}
	if res.Response.Kind != protocol.KindSimpleString || res.Response.Str != "OK" {
		t.Errorf("SET response = %+v, want SimpleString(OK)", res.Response)
	}

	res = e.Execute(bulkArray("GET", "x"))
	if res.Response.Kind != protocol.KindBulkString || string(res.Response.Bulk) != "1" {
		t.Errorf("GET response = %+v, want BulkString(1)", res.Response)
	}
}

func TestExecuteGetMissingKey(t *testing.T) {
	e := newTestExecutor()

	res := e.Execute(bulkArray("GET", "nop"))
	if !res.Response.IsNullBulkString() {
		t.Errorf("GET on missing key = %+v, want null bulk string", res.Response)
	}
}

func TestExecuteDel(t *testing.T) {
	e := newTestExecutor()

	e.Execute(bulkArray("SET", "a", "1"))

	res := e.Execute(bulkArray("DEL", "a", "b"))
	if res.Response.Kind != protocol.KindInteger || res.Response.Int != 1 {
		t.Errorf("DEL response = %+v, want Integer(1)", res.Response)
	}

	res = e.Execute(bulkArray("GET", "a"))
	if !res.Response.IsNullBulkString() {
		t.Error("GET after DEL should return null bulk string")
	}
}

func TestExecuteDelIdempotent(t *testing.T) {
	e := newTestExecutor()
	e.Execute(bulkArray("SET", "a", "1"))

	res := e.Execute(bulkArray("DEL", "a", "a"))
	if res.Response.Int != 1 {
		t.Errorf("DEL with a repeated key should count it once, got %d", res.Response.Int)
	}
}

func TestExecuteCaseInsensitiveVerb(t *testing.T) {
	e := newTestExecutor()

	res := e.Execute(bulkArray("sEt", "x", "1"))
	if res.Response.Str != "OK" {
		t.Errorf("lowercase/mixed-case verb should still execute, got %+v", res.Response)
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	e := newTestExecutor()

	res := e.Execute(bulkArray("PING"))
	if res.Response.Kind != protocol.KindError || res.Response.Str != "Invalid command" {
		t.Errorf("unknown command response = %+v, want Error(Invalid command)", res.Response)
	}
	if res.Fatal {
		t.Error("invalid command must not be fatal")
	}
}

func TestExecuteTooFewArgs(t *testing.T) {
	e := newTestExecutor()

	res := e.Execute(bulkArray("GET"))
	if res.Response.Kind != protocol.KindError {
		t.Errorf("GET with no key should be invalid, got %+v", res.Response)
	}

	res = e.Execute(bulkArray("SET", "x"))
	if res.Response.Kind != protocol.KindError {
		t.Errorf("SET with no value should be invalid, got %+v", res.Response)
	}
}

func TestExecuteTooManyArgs(t *testing.T) {
	e := newTestExecutor()

	res := e.Execute(bulkArray("GET", "x", "y"))
	if res.Response.Kind != protocol.KindError {
		t.Errorf("GET with two keys should be invalid, got %+v", res.Response)
	}

	res = e.Execute(bulkArray("SET", "x", "1", "garbage"))
	if res.Response.Kind != protocol.KindError {
		t.Errorf("SET with a trailing argument should be invalid, got %+v", res.Response)
	}
}

func TestExecuteNonArrayCommand(t *testing.T) {
	e := newTestExecutor()

	res := e.Execute(protocol.NewSimpleString("hi"))
	if res.Response.Kind != protocol.KindError {
		t.Errorf("non-array command should be invalid, got %+v", res.Response)
	}
}

func TestExecuteSetStoresRawSerialization(t *testing.T) {
	// SET stores the RESP serialization of the value argument; GET
	// re-parses it rather than reinterpreting the raw bytes.
	e := newTestExecutor()
	e.Execute(bulkArray("SET", "x", "1"))

	raw, found := e.store.Get("x")
	if !found {
		t.Fatal("expected key to be present after SET")
	}
	if string(raw) != "$1\r\n1\r\n" {
		t.Errorf("stored bytes = %q, want %q", raw, "$1\r\n1\r\n")
	}
}

func TestCommandVerb(t *testing.T) {
	verb, ok := CommandVerb(bulkArray("SeT", "x", "1"))
	if !ok || verb != "set" {
		t.Errorf("CommandVerb = (%q, %v), want (\"set\", true)", verb, ok)
	}

	if _, ok := CommandVerb(protocol.NewSimpleString("hi")); ok {
		t.Error("CommandVerb should reject a non-array object")
	}

	if _, ok := CommandVerb(protocol.NewArray(nil)); ok {
		t.Error("CommandVerb should reject an empty array")
	}
}

func TestExecuteGetUnparsableStoredValue(t *testing.T) {
	e := newTestExecutor()
	// Force an invariant violation: corrupt bytes behind a key.
	e.store.Set("corrupt", []byte("not-resp"))

	res := e.Execute(bulkArray("GET", "corrupt"))
	if !res.Response.IsNullBulkString() {
		t.Errorf("unparsable stored value should yield null bulk string, got %+v", res.Response)
	}
	if res.Fatal {
		t.Error("an unparsable stored value must not fail the connection")
	}
}
