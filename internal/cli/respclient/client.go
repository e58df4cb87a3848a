package respclient

import (
	"fmt"
	"net"
	"time"

	"github.com/dreamware/shardkv/internal/protocol"
)

const readChunkSize = 4096

// Client is a single connection to a shardkv-server RESP listener.
type Client struct {
	addr    string
	timeout time.Duration
	conn    net.Conn
}

// New builds a Client for addr. The connection is opened lazily on the
// first Execute call.
func New(addr string, timeout time.Duration) *Client {
	return &Client{addr: addr, timeout: timeout}
}

// Close closes the underlying connection, if one is open.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Client) ensureConnected() error {
	if c.conn != nil {
		return nil
	}
	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		return fmt.Errorf("respclient: dial %s: %w", c.addr, err)
	}
	c.conn = conn
	return nil
}

// Execute sends args as one command (args[0] is the verb) and returns
// the decoded reply.
func (c *Client) Execute(args []string) (protocol.Value, error) {
	if err := c.ensureConnected(); err != nil {
		return protocol.Value{}, err
	}

	elems := make([]protocol.Value, len(args))
	for i, a := range args {
		elems[i] = protocol.NewBulkString([]byte(a))
	}
	req := protocol.NewArray(elems)

	if c.timeout > 0 {
		c.conn.SetDeadline(time.Now().Add(c.timeout))
	}
	if _, err := c.conn.Write(req.Serialize()); err != nil {
		c.Close()
		return protocol.Value{}, fmt.Errorf("respclient: write: %w", err)
	}

	return c.readReply()
}

func (c *Client) readReply() (protocol.Value, error) {
	buf := make([]byte, 0, readChunkSize)
	chunk := make([]byte, readChunkSize)

	for {
		n, err := c.conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			if v, _, perr := protocol.ParseNext(buf, 0); perr == nil {
				return v, nil
			}
		}
		if err != nil {
			c.Close()
			return protocol.Value{}, fmt.Errorf("respclient: read: %w", err)
		}
	}
}
