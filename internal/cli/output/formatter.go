package output

import (
	"fmt"

	"github.com/dreamware/shardkv/internal/protocol"
)

// FormatReply renders v the way redis-cli renders a reply: a bare
// string for SimpleString, "(error) ..." for Error, "(integer) N" for
// Integer, "(nil)" for a null bulk string, the raw content for a
// non-null bulk string, and a numbered list for an Array.
func FormatReply(v protocol.Value) string {
	switch v.Kind {
	case protocol.KindSimpleString:
		return v.Str
	case protocol.KindError:
		return "(error) " + v.Str
	case protocol.KindInteger:
		return fmt.Sprintf("(integer) %d", v.Int)
	case protocol.KindBulkString:
		if v.IsNull {
			return "(nil)"
		}
		return string(v.Bulk)
	case protocol.KindArray:
		out := ""
		for i, elem := range v.Array {
			if i > 0 {
				out += "\n"
			}
			out += fmt.Sprintf("%d) %s", i+1, FormatReply(elem))
		}
		return out
	default:
		return "(unknown reply)"
	}
}
