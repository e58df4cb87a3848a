package orchestrator

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/dreamware/shardkv/internal/connstate"
	"github.com/dreamware/shardkv/internal/executor"
	"github.com/dreamware/shardkv/internal/protocol"
	"github.com/dreamware/shardkv/internal/telemetry/logger"
)

const (
	readChunkSize = 4096

	fallbackErrorReply = "-ERROR\r\n"

	writeRetries = 8
	writeBackoff = 2 * time.Millisecond
)

// isAgain reports whether err is the non-blocking "try again" signal.
// EAGAIN and EWOULDBLOCK share the same value on Linux but can differ on
// other unix platforms, so both are checked explicitly.
func isAgain(err error) bool {
	return err == unix.EAGAIN || err == unix.EWOULDBLOCK
}

// readJob drains whatever is currently available on the connection's
// socket into its read buffer, then hands the connection to the
// parse+execute pool. It assumes the caller already holds the
// connection's lock.
type readJob struct {
	o     *Orchestrator
	state *connstate.State
}

func (j *readJob) Run() {
	s := j.state
	s.Phase = connstate.Reading
	fd := s.FD

	buf := make([]byte, readChunkSize)
	for {
		n, err := unix.Read(fd, buf)
		if n > 0 {
			s.ReadBuf = append(s.ReadBuf, buf[:n]...)
		}
		if err != nil {
			if isAgain(err) {
				break
			}
			j.o.log.Error("read failed", "conn_id", s.ID, "fd", fd, "error", err)
			j.o.closeAndCleanup(s)
			return
		}
		if n == 0 {
			j.o.log.Debug("peer closed connection", "conn_id", s.ID, "fd", fd)
			j.o.closeAndCleanup(s)
			return
		}
		if n < len(buf) {
			break
		}
	}

	if len(s.ReadBuf) == 0 {
		// Woken with nothing to read (e.g. a stale readiness
		// notification); go back to waiting rather than parsing an
		// empty buffer as a command.
		j.o.recycle(s)
		return
	}

	if err := j.o.enqueueParseExecute(s); err != nil {
		j.o.log.Error("enqueue parse/execute failed", "conn_id", s.ID, "fd", fd, "error", err)
		j.o.closeAndCleanup(s)
	}
}

// parseExecuteJob parses the accumulated read buffer as one command and
// executes it, producing the response to write back. It assumes the
// caller already holds the connection's lock.
type parseExecuteJob struct {
	o        *Orchestrator
	state    *connstate.State
	executor *executor.Executor
}

func (j *parseExecuteJob) Run() {
	s := j.state
	s.Phase = connstate.Parsing
	fd := s.FD

	cmd, _, err := protocol.ParseNext(s.ReadBuf, 0)
	if err != nil {
		preview := logger.PreviewString(string(s.ReadBuf))
		s.SetResponse(protocol.NewError("Unable to parse '" + preview + "'. Try again."))
		j.o.log.Debug("parse failed", "conn_id", s.ID, "fd", fd, "error", err)
		if err := j.o.enqueueWrite(s); err != nil {
			j.o.log.Error("enqueue write failed", "conn_id", s.ID, "fd", fd, "error", err)
			j.o.closeAndCleanup(s)
		}
		return
	}
	s.SetCommand(cmd)

	start := time.Now()
	result := j.executor.Execute(cmd)
	j.o.observeCommand(cmd, result, time.Since(start))

	s.SetResponse(result.Response)
	if result.Fatal {
		s.MarkFatal(fallbackErrorReply)
	}

	if err := j.o.enqueueWrite(s); err != nil {
		j.o.log.Error("enqueue write failed", "conn_id", s.ID, "fd", fd, "error", err)
		j.o.closeAndCleanup(s)
	}
}

// writeJob writes the pending response (or the fixed fallback message,
// for a fatal connection with no constructible response) and either
// recycles the connection back into the readiness set or closes it. It
// assumes the caller already holds the connection's lock.
type writeJob struct {
	o     *Orchestrator
	state *connstate.State
}

func (j *writeJob) Run() {
	s := j.state
	s.Phase = connstate.Writing
	fd := s.FD

	var payload []byte
	switch {
	case s.Fatal && s.FatalMessage != "":
		payload = []byte(s.FatalMessage)
	case s.HasResponse:
		payload = s.Response.Serialize()
	default:
		payload = []byte(fallbackErrorReply)
	}

	if err := writeAll(fd, payload); err != nil {
		j.o.log.Error("write failed", "conn_id", s.ID, "fd", fd, "error", err)
		j.o.closeAndCleanup(s)
		return
	}

	if s.Fatal {
		j.o.closeAndCleanup(s)
		return
	}

	j.o.recycle(s)
}

// writeAll writes b to fd in full, retrying on EAGAIN a bounded number
// of times with a short backoff; the pipeline performs one write per
// response and does not register for EPOLLOUT readiness.
func writeAll(fd int, b []byte) error {
	for len(b) > 0 {
		n, err := unix.Write(fd, b)
		if err != nil {
			if !isAgain(err) {
				return err
			}
			for attempt := 0; attempt < writeRetries; attempt++ {
				time.Sleep(writeBackoff)
				n, err = unix.Write(fd, b)
				if err == nil {
					break
				}
				if !isAgain(err) {
					return err
				}
			}
			if err != nil {
				return err
			}
		}
		b = b[n:]
	}
	return nil
}

func commandResultLabel(result executor.Result) string {
	if result.Response.Kind == protocol.KindError {
		return "error"
	}
	return "ok"
}

func commandVerbLabel(cmd protocol.Value) string {
	verb, ok := executor.CommandVerb(cmd)
	if !ok {
		return "unknown"
	}
	return verb
}
