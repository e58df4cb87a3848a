package connstate

import (
	"crypto/rand"
	"net"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/dreamware/shardkv/internal/protocol"
)

// Phase is one stop in the connection lifecycle.
type Phase int

const (
	Accepted Phase = iota
	WaitingForReadiness
	WaitingForReadJob
	Reading
	Parsing
	Writing
	Closing
)

// String implements fmt.Stringer, used in log lines.
func (p Phase) String() string {
	switch p {
	case Accepted:
		return "accepted"
	case WaitingForReadiness:
		return "waiting_for_readiness"
	case WaitingForReadJob:
		return "waiting_for_read_job"
	case Reading:
		return "reading"
	case Parsing:
		return "parsing"
	case Writing:
		return "writing"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}

// State is one accepted connection's pipeline record. Fields are only
// safe to read or mutate while the lock (Lock/Unlock) is held by the
// calling goroutine; the orchestrator is responsible for that
// discipline, not this type.
type State struct {
	mu sync.Mutex

	// ID is a per-connection identifier used as a log correlation key
	// (conn_id), so one connection's path through the pipeline stages
	// stays greppable across worker goroutines.
	ID string

	FD   int
	Conn net.Conn

	Phase Phase

	// ReadBuf holds the bytes of one read drain. The parse+execute stage
	// parses a single RESP object from it and does not wait for more
	// bytes; a buffer that does not parse gets an error response.
	ReadBuf []byte

	Command    protocol.Value
	HasCommand bool

	Response    protocol.Value
	HasResponse bool

	// Fatal marks a connection for closing once the current stage
	// finishes (e.g. an executor result flagged fatal). FatalMessage is used when no structured RESP response
	// object can be formed at all.
	Fatal        bool
	FatalMessage string
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return ""
	}
	return id.String()
}

// New creates a connection state in the Accepted phase for a freshly
// accepted socket.
func New(fd int, conn net.Conn) *State {
	return &State{
		ID:    newID(),
		FD:    fd,
		Conn:  conn,
		Phase: Accepted,
	}
}

// Lock acquires the connection's serializing lock. The caller must hold
// it for the entire duration it owns the connection, releasing it only
// via Unlock once it hands the connection to the next stage or to
// close_and_cleanup.
func (s *State) Lock() { s.mu.Lock() }

// Unlock releases the serializing lock.
func (s *State) Unlock() { s.mu.Unlock() }

// SetCommand records the command parsed for this pass.
func (s *State) SetCommand(v protocol.Value) {
	s.Command = v
	s.HasCommand = true
}

// ClearCommand discards any parsed command.
func (s *State) ClearCommand() {
	s.Command = protocol.Value{}
	s.HasCommand = false
}

// SetResponse records the response pending a write.
func (s *State) SetResponse(v protocol.Value) {
	s.Response = v
	s.HasResponse = true
}

// ClearResponse discards any pending response.
func (s *State) ClearResponse() {
	s.Response = protocol.Value{}
	s.HasResponse = false
}

// MarkFatal flags the connection for closing once the current stage
// completes, recording a fixed-width fallback message for callers that
// cannot construct a structured response.
func (s *State) MarkFatal(message string) {
	s.Fatal = true
	s.FatalMessage = message
}

// Reset restores the state for re-entry into WaitingForReadiness after
// a successful, non-fatal write completes a request/response cycle.
func (s *State) Reset() {
	s.ReadBuf = s.ReadBuf[:0]
	s.ClearCommand()
	s.ClearResponse()
	s.Phase = WaitingForReadiness
}
