//go:build linux

package orchestrator

import (
	"encoding/binary"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

const maxEpollEvents = 64

// epollReadiness is the Linux readiness primitive. Its Wait rearms the
// full desired set with the kernel on every call: every descriptor
// armed on the previous call is removed with EPOLL_CTL_DEL, then every
// currently desired descriptor is re-added with EPOLL_CTL_ADD. This is
// simpler than tracking per-descriptor epoll state across pipeline
// transitions, at the cost of O(R) syscalls per iteration where R is
// the armed set size — a deliberate, documented tradeoff rather than an
// oversight.
type epollReadiness struct {
	epfd   int
	wakeFd int

	mu      sync.Mutex
	desired map[int]struct{}
	armed   map[int]struct{}
}

func newReadiness() (readiness, error) {
	fd, err := unix.EpollCreate1(0)
	if err != nil {
		return nil, err
	}
	wakeFd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		unix.Close(fd)
		return nil, err
	}
	ev := unix.EpollEvent{Events: unix.EPOLLIN}
	ev.Fd = int32(wakeFd)
	if err := unix.EpollCtl(fd, unix.EPOLL_CTL_ADD, wakeFd, &ev); err != nil {
		unix.Close(wakeFd)
		unix.Close(fd)
		return nil, err
	}
	return &epollReadiness{
		epfd:    fd,
		wakeFd:  wakeFd,
		desired: make(map[int]struct{}),
		armed:   make(map[int]struct{}),
	}, nil
}

// wake unblocks a Wait call that is already parked in the kernel, per
// spec.md's requirement that a pending Add/Remove not wait out the
// remainder of the poll timeout. Mirrors the original's
// pthread_kill(SIGUSR1) wakeup with an eventfd write instead.
func (r *epollReadiness) wake() {
	buf := make([]byte, 8)
	binary.NativeEndian.PutUint64(buf, 1)
	_, _ = unix.Write(r.wakeFd, buf)
}

func (r *epollReadiness) Add(fd int) {
	r.mu.Lock()
	r.desired[fd] = struct{}{}
	r.mu.Unlock()
	r.wake()
}

func (r *epollReadiness) Remove(fd int) {
	r.mu.Lock()
	delete(r.desired, fd)
	r.mu.Unlock()
	r.wake()
}

func (r *epollReadiness) Wait(timeout time.Duration) ([]int, error) {
	r.mu.Lock()
	for fd := range r.armed {
		_ = unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	}
	r.armed = make(map[int]struct{}, len(r.desired))
	for fd := range r.desired {
		ev := unix.EpollEvent{Events: unix.EPOLLIN}
		ev.Fd = int32(fd)
		if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err == nil {
			r.armed[fd] = struct{}{}
		}
	}
	r.mu.Unlock()

	events := make([]unix.EpollEvent, maxEpollEvents)
	n, err := unix.EpollWait(r.epfd, events, int(timeout.Milliseconds()))
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, err
	}

	ready := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if events[i].Events == 0 {
			continue
		}
		fd := int(events[i].Fd)
		if fd == r.wakeFd {
			drain := make([]byte, 8)
			_, _ = unix.Read(r.wakeFd, drain)
			continue
		}
		ready = append(ready, fd)
	}
	return ready, nil
}

func (r *epollReadiness) Close() error {
	_ = unix.Close(r.wakeFd)
	return unix.Close(r.epfd)
}
