//go:build !linux

package orchestrator

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// pollReadiness is the non-Linux readiness primitive. There is no
// persistent kernel-resident interest set to rearm, as epoll has on
// Linux: every call to Wait polls the full desired set directly.
//
// A blocked Wait is woken by a self-pipe: Add/Remove write a byte to
// wakeW, and the read end wakeR is always included in the poll set so a
// pending mutation returns Wait within bounded time instead of waiting
// out the remainder of the timeout. Mirrors the original's
// pthread_kill(SIGUSR1) wakeup.
type pollReadiness struct {
	wakeR int
	wakeW int

	mu      sync.Mutex
	desired map[int]struct{}
}

func newReadiness() (readiness, error) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return nil, err
	}
	if err := unix.SetNonblock(p[0], true); err != nil {
		unix.Close(p[0])
		unix.Close(p[1])
		return nil, err
	}
	if err := unix.SetNonblock(p[1], true); err != nil {
		unix.Close(p[0])
		unix.Close(p[1])
		return nil, err
	}
	return &pollReadiness{
		wakeR:   p[0],
		wakeW:   p[1],
		desired: make(map[int]struct{}),
	}, nil
}

func (r *pollReadiness) wake() {
	_, _ = unix.Write(r.wakeW, []byte{1})
}

func (r *pollReadiness) Add(fd int) {
	r.mu.Lock()
	r.desired[fd] = struct{}{}
	r.mu.Unlock()
	r.wake()
}

func (r *pollReadiness) Remove(fd int) {
	r.mu.Lock()
	delete(r.desired, fd)
	r.mu.Unlock()
	r.wake()
}

func (r *pollReadiness) Wait(timeout time.Duration) ([]int, error) {
	r.mu.Lock()
	fds := make([]unix.PollFd, 0, len(r.desired)+1)
	fds = append(fds, unix.PollFd{Fd: int32(r.wakeR), Events: unix.POLLIN})
	for fd := range r.desired {
		fds = append(fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
	}
	r.mu.Unlock()

	n, err := unix.Poll(fds, int(timeout.Milliseconds()))
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	ready := make([]int, 0, n)
	for _, pfd := range fds {
		if pfd.Revents == 0 {
			continue
		}
		if int(pfd.Fd) == r.wakeR {
			drain := make([]byte, 64)
			for {
				nr, _ := unix.Read(r.wakeR, drain)
				if nr <= 0 {
					break
				}
			}
			continue
		}
		ready = append(ready, int(pfd.Fd))
	}
	return ready, nil
}

func (r *pollReadiness) Close() error {
	_ = unix.Close(r.wakeW)
	return unix.Close(r.wakeR)
}
