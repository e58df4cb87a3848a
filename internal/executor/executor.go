package executor

import (
	"strings"

	"github.com/dreamware/shardkv/internal/protocol"
	"github.com/dreamware/shardkv/internal/store"
	"github.com/dreamware/shardkv/internal/telemetry/logger"
)

// Executor validates and executes GET/SET/DEL commands against a Store.
type Executor struct {
	store *store.Store
	log   logger.Logger
}

// New builds an Executor backed by st. log may be nil, in which case the
// package-level default logger is used.
func New(st *store.Store, log logger.Logger) *Executor {
	if log == nil {
		log = logger.Default()
	}
	return &Executor{store: st, log: log}
}

// Result is the outcome of executing one command.
type Result struct {
	// Fatal is reserved for protocol-level unrecoverable conditions: a
	// response that cannot be constructed at all. An invalid command or
	// a store operation failure is never fatal — the client receives an
	// error reply and the connection is recycled.
	Fatal bool

	// Response is the RESP object to write back to the client.
	Response protocol.Value
}

// Execute validates cmd as a command and executes it. cmd is expected to
// be the Array object produced by the RESP parser for one client
// request.
func (e *Executor) Execute(cmd protocol.Value) Result {
	verb, args, ok := parseCommand(cmd)
	if !ok {
		return Result{Response: protocol.NewError("Invalid command")}
	}

	switch verb {
	case "get":
		return e.executeGet(args)
	case "set":
		return e.executeSet(args)
	case "del":
		return e.executeDel(args)
	default:
		return Result{Response: protocol.NewError("Invalid command")}
	}
}

// parseCommand validates the command shape and returns the lowercased
// verb and the argument values (everything after element 0).
func parseCommand(cmd protocol.Value) (verb string, args []protocol.Value, ok bool) {
	if cmd.Kind != protocol.KindArray {
		return "", nil, false
	}

	verbStr, ok := argString(firstElement(cmd))
	if !ok {
		return "", nil, false
	}
	verb = strings.ToLower(verbStr)

	switch verb {
	case "get":
		if len(cmd.Array) != 2 {
			return "", nil, false
		}
	case "set":
		if len(cmd.Array) != 3 {
			return "", nil, false
		}
	case "del":
		if len(cmd.Array) < 2 {
			return "", nil, false
		}
	default:
		return "", nil, false
	}

	args = cmd.Array[1:]
	for i, a := range args {
		// SET's second argument (the value) may be any bulk-or-array
		// object; every other argument is a key and must be a string.
		if verb == "set" && i == 1 {
			continue
		}
		if _, ok := argString(a); !ok {
			return "", nil, false
		}
	}

	return verb, args, true
}

func firstElement(cmd protocol.Value) protocol.Value {
	if len(cmd.Array) == 0 {
		return protocol.Value{}
	}
	return cmd.Array[0]
}

// argString extracts the string content of a simple string or bulk
// string value. Any other kind (or a null bulk string) is not a valid
// command argument.
func argString(v protocol.Value) (string, bool) {
	switch v.Kind {
	case protocol.KindSimpleString:
		return v.Str, true
	case protocol.KindBulkString:
		if v.IsNull {
			return "", false
		}
		return string(v.Bulk), true
	default:
		return "", false
	}
}

// CommandVerb returns the lowercased verb of a parsed command object for
// use as a metrics/log label. It does not validate argument count or
// argument types the way Execute does.
func CommandVerb(cmd protocol.Value) (string, bool) {
	if cmd.Kind != protocol.KindArray || len(cmd.Array) == 0 {
		return "", false
	}
	v, ok := argString(cmd.Array[0])
	if !ok {
		return "", false
	}
	return strings.ToLower(v), true
}

func (e *Executor) executeGet(args []protocol.Value) Result {
	key, _ := argString(args[0])

	stored, found := e.store.Get(key)
	if !found {
		return Result{Response: protocol.NewNullBulkString()}
	}

	parsed, _, err := protocol.ParseNext(stored, 0)
	if err != nil {
		e.log.Error("stored value failed to re-parse", "key", key, "error", err)
		return Result{Response: protocol.NewNullBulkString()}
	}
	return Result{Response: parsed}
}

func (e *Executor) executeSet(args []protocol.Value) Result {
	key, _ := argString(args[0])
	value := args[1]

	e.store.Set(key, value.Serialize())
	return Result{Response: protocol.NewSimpleString("OK")}
}

func (e *Executor) executeDel(args []protocol.Value) Result {
	removed := int64(0)
	for _, a := range args {
		key, _ := argString(a)
		if e.store.Del(key) {
			removed++
		}
	}
	return Result{Response: protocol.NewInteger(removed)}
}
