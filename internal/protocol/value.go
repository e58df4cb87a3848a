package protocol

import (
	"strconv"
	"strings"
)

// Kind identifies which RESP variant a Value holds.
type Kind int

const (
	KindSimpleString Kind = iota
	KindError
	KindInteger
	KindBulkString
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindSimpleString:
		return "SimpleString"
	case KindError:
		return "Error"
	case KindInteger:
		return "Integer"
	case KindBulkString:
		return "BulkString"
	case KindArray:
		return "Array"
	default:
		return "Unknown"
	}
}

// Value is a tagged RESP object. Only the fields relevant to Kind are
// meaningful; the zero Value is an empty simple string.
type Value struct {
	Kind Kind

	// Str holds the text of a SimpleString or Error.
	Str string

	// Int holds the value of an Integer.
	Int int64

	// Bulk holds the content of a BulkString. Nil iff IsNull is true.
	Bulk []byte

	// IsNull distinguishes a null bulk string ($-1\r\n) from an empty
	// one ($0\r\n\r\n). Only meaningful when Kind == KindBulkString.
	IsNull bool

	// Array holds the elements of an Array, in order.
	Array []Value
}

// NewSimpleString builds a SimpleString value.
func NewSimpleString(s string) Value {
	return Value{Kind: KindSimpleString, Str: s}
}

// NewError builds an Error value.
func NewError(s string) Value {
	return Value{Kind: KindError, Str: s}
}

// NewInteger builds an Integer value.
func NewInteger(n int64) Value {
	return Value{Kind: KindInteger, Int: n}
}

// NewBulkString builds a non-null BulkString value from b. A nil slice
// is treated as an empty (not null) bulk string; use NewNullBulkString
// for the null case.
func NewBulkString(b []byte) Value {
	if b == nil {
		b = []byte{}
	}
	return Value{Kind: KindBulkString, Bulk: b}
}

// NewNullBulkString builds the null bulk string.
func NewNullBulkString() Value {
	return Value{Kind: KindBulkString, IsNull: true}
}

// NewArray builds an Array value from its elements.
func NewArray(elems []Value) Value {
	return Value{Kind: KindArray, Array: elems}
}

// IsNullBulkString reports whether v is the null bulk string.
func (v Value) IsNullBulkString() bool {
	return v.Kind == KindBulkString && v.IsNull
}

// Serialize returns the total RESP wire encoding of v.
func (v Value) Serialize() []byte {
	var b strings.Builder
	v.writeTo(&b)
	return []byte(b.String())
}

func (v Value) writeTo(b *strings.Builder) {
	switch v.Kind {
	case KindSimpleString:
		b.WriteByte('+')
		b.WriteString(v.Str)
		b.WriteString("\r\n")
	case KindError:
		b.WriteByte('-')
		b.WriteString(v.Str)
		b.WriteString("\r\n")
	case KindInteger:
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(v.Int, 10))
		b.WriteString("\r\n")
	case KindBulkString:
		if v.IsNull {
			b.WriteString("$-1\r\n")
			return
		}
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(len(v.Bulk)))
		b.WriteString("\r\n")
		b.Write(v.Bulk)
		b.WriteString("\r\n")
	case KindArray:
		b.WriteByte('*')
		b.WriteString(strconv.Itoa(len(v.Array)))
		b.WriteString("\r\n")
		for _, elem := range v.Array {
			elem.writeTo(b)
		}
	}
}
