package protocol

import (
	"strconv"
	"testing"
)

func TestParseNextCursorBeyondEnd(t *testing.T) {
	_, _, err := ParseNext([]byte{}, 0)
	assertParseErrorKind(t, err, CursorBeyondEnd)
}

func TestParseNextInvalidType(t *testing.T) {
	_, _, err := ParseNext([]byte("?garbage\r\n"), 0)
	assertParseErrorKind(t, err, InvalidType)
}

func TestParseSimpleString(t *testing.T) {
	v, next, err := ParseNext([]byte("+PONG\r\n"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindSimpleString || v.Str != "PONG" {
		t.Errorf("got %+v, want SimpleString(PONG)", v)
	}
	if next != 7 {
		t.Errorf("cursor = %d, want 7", next)
	}
}

func TestParseSimpleStringMissingCRLF(t *testing.T) {
	_, _, err := ParseNext([]byte("+PONG"), 0)
	assertParseErrorKind(t, err, CrlfMissing)
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		wire string
		want int64
	}{
		{":0\r\n", 0},
		{":123\r\n", 123},
		{":-5\r\n", -5},
	}
	for _, tt := range tests {
		v, _, err := ParseNext([]byte(tt.wire), 0)
		if err != nil {
			t.Fatalf("ParseNext(%q) error = %v", tt.wire, err)
		}
		if v.Kind != KindInteger || v.Int != tt.want {
			t.Errorf("ParseNext(%q) = %+v, want Integer(%d)", tt.wire, v, tt.want)
		}
	}
}

func TestParseIntegerInvalidNumber(t *testing.T) {
	_, _, err := ParseNext([]byte(":abc\r\n"), 0)
	assertParseErrorKind(t, err, InvalidNumber)
}

func TestParseNullBulkString(t *testing.T) {
	v, next, err := ParseNext([]byte("$-1\r\n"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.IsNullBulkString() {
		t.Errorf("got %+v, want null bulk string", v)
	}
	if next != 5 {
		t.Errorf("cursor = %d, want 5", next)
	}
}

func TestParseEmptyBulkString(t *testing.T) {
	v, next, err := ParseNext([]byte("$0\r\n\r\n"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindBulkString || v.IsNull || len(v.Bulk) != 0 {
		t.Errorf("got %+v, want empty non-null bulk string", v)
	}
	if next != 6 {
		t.Errorf("cursor = %d, want 6", next)
	}
}

func TestParseBulkString(t *testing.T) {
	v, next, err := ParseNext([]byte("$5\r\nhello\r\n"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindBulkString || string(v.Bulk) != "hello" {
		t.Errorf("got %+v, want BulkString(hello)", v)
	}
	if next != 11 {
		t.Errorf("cursor = %d, want 11", next)
	}
}

func TestParseBulkStringLengthMismatch(t *testing.T) {
	// declared length 5, only 3 bytes present before the terminator
	_, _, err := ParseNext([]byte("$5\r\nabc\r\n"), 0)
	assertParseErrorKind(t, err, CrlfMissing)
}

func TestParseBulkStringContainsCRLF(t *testing.T) {
	_, _, err := ParseNext([]byte("$3\r\na\rb\r\n"), 0)
	assertParseErrorKind(t, err, StringContainsCrlf)
}

func TestParseBulkStringTooLarge(t *testing.T) {
	wire := "$" + strconv.Itoa(MaxBulkLen+1) + "\r\n"
	_, _, err := ParseNext([]byte(wire), 0)
	assertParseErrorKind(t, err, NoMemory)
}

func TestParseArray(t *testing.T) {
	wire := "*3\r\n$3\r\nSET\r\n$1\r\nx\r\n$1\r\n1\r\n"
	v, next, err := ParseNext([]byte(wire), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindArray || len(v.Array) != 3 {
		t.Fatalf("got %+v, want 3-element array", v)
	}
	if string(v.Array[0].Bulk) != "SET" || string(v.Array[1].Bulk) != "x" || string(v.Array[2].Bulk) != "1" {
		t.Errorf("array elements = %+v", v.Array)
	}
	if next != len(wire) {
		t.Errorf("cursor = %d, want %d", next, len(wire))
	}
}

func TestParseArrayNegativeLength(t *testing.T) {
	_, _, err := ParseNext([]byte("*-5\r\n"), 0)
	assertParseErrorKind(t, err, InvalidArrayLength)
}

func TestParseArrayTooLarge(t *testing.T) {
	wire := "*" + strconv.Itoa(MaxArrayLen+1) + "\r\n"
	_, _, err := ParseNext([]byte(wire), 0)
	assertParseErrorKind(t, err, NoMemory)
}

func TestParseArrayWithNonBulkElement(t *testing.T) {
	// An integer in an array position is well-formed RESP but unsupported
	// at this position.
	wire := "*1\r\n:5\r\n"
	_, _, err := ParseNext([]byte(wire), 0)
	assertParseErrorKind(t, err, NotImplemented)
}

func TestParseArrayOfArrays(t *testing.T) {
	wire := "*1\r\n*1\r\n$1\r\na\r\n"
	v, next, err := ParseNext([]byte(wire), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindArray || len(v.Array) != 1 || v.Array[0].Kind != KindArray {
		t.Errorf("got %+v, want nested array", v)
	}
	if next != len(wire) {
		t.Errorf("cursor = %d, want %d", next, len(wire))
	}
}

func TestParseSequentialObjects(t *testing.T) {
	wire := "+OK\r\n:42\r\n"
	v1, next1, err := ParseNext([]byte(wire), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v1.Kind != KindSimpleString || v1.Str != "OK" {
		t.Errorf("first object = %+v, want SimpleString(OK)", v1)
	}
	v2, next2, err := ParseNext([]byte(wire), next1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v2.Kind != KindInteger || v2.Int != 42 {
		t.Errorf("second object = %+v, want Integer(42)", v2)
	}
	if next2 != len(wire) {
		t.Errorf("final cursor = %d, want %d", next2, len(wire))
	}
}

func assertParseErrorKind(t *testing.T, err error, want ErrorKind) {
	t.Helper()
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error = %v (%T), want *ParseError", err, err)
	}
	if pe.Kind != want {
		t.Errorf("ParseError.Kind = %v, want %v", pe.Kind, want)
	}
}
