package orchestrator

import (
	"fmt"
	"net"
	"strconv"

	"golang.org/x/sys/unix"
)

const listenBacklog = 128

// createListenSocket builds a raw IPv4 listening socket bound to addr
// ("host:port") with address and port reuse enabled, mirroring the
// original server's socket setup. The returned fd is left in blocking
// mode: the accept loop runs on a dedicated goroutine and is meant to
// block in accept(2), matching the parallel-OS-threads-with-blocking-IO
// scheduling model rather than an event-loop-integrated listener.
func createListenSocket(addr string) (int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return -1, fmt.Errorf("orchestrator: invalid listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return -1, fmt.Errorf("orchestrator: invalid port %q: %w", portStr, err)
	}

	var ip [4]byte
	if host == "" || host == "0.0.0.0" {
		ip = [4]byte{0, 0, 0, 0}
	} else {
		resolved, err := net.ResolveIPAddr("ip4", host)
		if err != nil {
			return -1, fmt.Errorf("orchestrator: resolving %q: %w", host, err)
		}
		v4 := resolved.IP.To4()
		if v4 == nil {
			return -1, fmt.Errorf("orchestrator: %q is not an IPv4 address", host)
		}
		copy(ip[:], v4)
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return -1, fmt.Errorf("orchestrator: socket: %w", err)
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("orchestrator: setsockopt SO_REUSEADDR: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("orchestrator: setsockopt SO_REUSEPORT: %w", err)
	}

	sa := &unix.SockaddrInet4{Port: port, Addr: ip}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("orchestrator: bind %q: %w", addr, err)
	}
	if err := unix.Listen(fd, listenBacklog); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("orchestrator: listen: %w", err)
	}

	return fd, nil
}
