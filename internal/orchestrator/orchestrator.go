package orchestrator

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
	"golang.org/x/time/rate"

	"github.com/dreamware/shardkv/internal/connstate"
	"github.com/dreamware/shardkv/internal/executor"
	"github.com/dreamware/shardkv/internal/protocol"
	"github.com/dreamware/shardkv/internal/server/config"
	"github.com/dreamware/shardkv/internal/store"
	"github.com/dreamware/shardkv/internal/telemetry/logger"
	"github.com/dreamware/shardkv/internal/telemetry/metric"
	"github.com/dreamware/shardkv/internal/workerpool"
)

// Orchestrator owns the listening socket, the readiness primitive, the
// connection registry, and the four worker pools, and drives every
// connection through the read -> parse+execute -> write pipeline.
type Orchestrator struct {
	cfg     config.ServerConfig
	log     logger.Logger
	metrics *metric.Registry
	exec    *executor.Executor

	listenFD int
	registry *registry
	ready    readiness

	readPool         *workerpool.Pool
	parseExecutePool *workerpool.Pool
	writePool        *workerpool.Pool
	sparePool        *workerpool.Pool

	acceptLimiter *rate.Limiter

	shuttingDown atomic.Bool
}

// New builds an Orchestrator from cfg, backed by st. log and reg may be
// nil, in which case the package default logger and a fresh metrics
// registry are used.
func New(cfg config.ServerConfig, st *store.Store, log logger.Logger, reg *metric.Registry) (*Orchestrator, error) {
	if log == nil {
		log = logger.Default()
	}
	if reg == nil {
		reg = metric.NewRegistry()
	}

	listenFD, err := createListenSocket(cfg.Server.Addr)
	if err != nil {
		return nil, err
	}

	rdy, err := newReadiness()
	if err != nil {
		unix.Close(listenFD)
		return nil, fmt.Errorf("orchestrator: creating readiness primitive: %w", err)
	}

	o := &Orchestrator{
		cfg:      cfg,
		log:      log,
		metrics:  reg,
		exec:     executor.New(st, log),
		listenFD: listenFD,
		registry: newRegistry(),
		ready:    rdy,
	}

	o.readPool = workerpool.New("read", cfg.Pools.ReadWorkers, cfg.Pools.QueueDepth)
	o.parseExecutePool = workerpool.New("parse-execute", cfg.Pools.ParseExecuteWorkers, cfg.Pools.QueueDepth)
	o.writePool = workerpool.New("write", cfg.Pools.WriteWorkers, cfg.Pools.QueueDepth)
	o.sparePool = workerpool.New("spare", cfg.Pools.SpareWorkers, cfg.Pools.QueueDepth)

	if cfg.Server.AcceptRatePerSec > 0 {
		o.acceptLimiter = rate.NewLimiter(rate.Limit(cfg.Server.AcceptRatePerSec), cfg.Server.AcceptBurst)
	}

	return o, nil
}

// Run starts the accept and readiness loops and blocks until both have
// returned, then returns the first non-nil error. The readiness loop
// returns when ctx is canceled, after Shutdown, or when a readiness wait
// fails; the accept loop returns after Shutdown (or, when an accept rate
// limit is set, once ctx is canceled while it waits for a token).
func (o *Orchestrator) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return o.acceptLoop(ctx) })
	g.Go(func() error { return o.readinessLoop(ctx) })
	return g.Wait()
}

// Shutdown stops accepting new work, destroys every worker pool
// (waiting for in-flight jobs to finish), and closes every remaining
// connection along with the listening socket and readiness primitive.
func (o *Orchestrator) Shutdown() error {
	o.shuttingDown.Store(true)

	var result *multierror.Error
	// shutdown(2) wakes an Accept blocked on the socket; close alone does not.
	_ = unix.Shutdown(o.listenFD, unix.SHUT_RDWR)
	if err := unix.Close(o.listenFD); err != nil {
		result = multierror.Append(result, fmt.Errorf("closing listen socket: %w", err))
	}

	o.readPool.Destroy()
	o.parseExecutePool.Destroy()
	o.writePool.Destroy()
	o.sparePool.Destroy()

	for _, s := range o.registry.all() {
		s.Lock()
		fd := s.FD
		s.Unlock()
		o.registry.remove(fd)
		o.ready.Remove(fd)
		if err := unix.Close(fd); err != nil {
			result = multierror.Append(result, fmt.Errorf("closing fd %d: %w", fd, err))
		}
	}

	if err := o.ready.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("closing readiness primitive: %w", err))
	}

	return result.ErrorOrNil()
}

// ActiveConnections returns the number of connections currently tracked
// by the registry.
func (o *Orchestrator) ActiveConnections() int {
	return o.registry.count()
}

// PoolStat is a snapshot of one worker pool's load, for the admin
// /stats endpoint and the workerpool metrics gauges.
type PoolStat struct {
	Name        string
	QueueDepth  int
	LiveWorkers int
}

// PoolStats returns a snapshot of every worker pool's load.
func (o *Orchestrator) PoolStats() []PoolStat {
	pools := []*workerpool.Pool{o.readPool, o.parseExecutePool, o.writePool, o.sparePool}
	stats := make([]PoolStat, len(pools))
	for i, p := range pools {
		stats[i] = PoolStat{Name: p.Name(), QueueDepth: p.QueueDepth(), LiveWorkers: p.LiveWorkers()}
		o.metrics.PoolQueueDepth.WithLabelValues(p.Name()).Set(float64(p.QueueDepth()))
		o.metrics.PoolLiveWorkers.WithLabelValues(p.Name()).Set(float64(p.LiveWorkers()))
	}
	return stats
}

func (o *Orchestrator) acceptLoop(ctx context.Context) error {
	for {
		if o.shuttingDown.Load() {
			return nil
		}
		if o.acceptLimiter != nil {
			if err := o.acceptLimiter.Wait(ctx); err != nil {
				return nil
			}
		}

		fd, _, err := unix.Accept(o.listenFD)
		if err != nil {
			if o.shuttingDown.Load() {
				return nil
			}
			if err == unix.EINTR || isAgain(err) {
				continue
			}
			o.log.Error("accept failed", "error", err)
			continue
		}

		if err := unix.SetNonblock(fd, true); err != nil {
			o.log.Error("set nonblocking failed", "fd", fd, "error", err)
		}

		s := connstate.New(fd, nil)
		o.registry.insert(s)
		o.ready.Add(fd)

		o.metrics.ConnectionsAccepted.Inc()
		o.metrics.ConnectionsActive.Inc()
		o.log.Debug("accepted connection", "conn_id", s.ID, "fd", fd)
	}
}

func (o *Orchestrator) readinessLoop(ctx context.Context) error {
	for {
		if o.shuttingDown.Load() {
			return nil
		}

		readyFDs, err := o.ready.Wait(o.cfg.Readiness.PollTimeout)
		if err != nil {
			if o.shuttingDown.Load() {
				return nil
			}
			o.log.Error("readiness wait failed", "error", err)
			return err
		}

		for _, fd := range readyFDs {
			s, ok := o.registry.get(fd)
			if !ok {
				continue
			}

			s.Lock()
			s.Phase = connstate.WaitingForReadJob
			o.ready.Remove(fd)

			if err := o.readPool.AddJob(&readJob{o: o, state: s}); err != nil {
				o.log.Error("enqueue read job failed", "conn_id", s.ID, "fd", fd, "error", err)
				o.closeAndCleanup(s)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

func (o *Orchestrator) enqueueParseExecute(s *connstate.State) error {
	s.Phase = connstate.Parsing
	return o.parseExecutePool.AddJob(&parseExecuteJob{o: o, state: s, executor: o.exec})
}

func (o *Orchestrator) enqueueWrite(s *connstate.State) error {
	s.Phase = connstate.Writing
	return o.writePool.AddJob(&writeJob{o: o, state: s})
}

// recycle resets a connection after a successful, non-fatal write and
// returns it to the readiness set.
func (o *Orchestrator) recycle(s *connstate.State) {
	fd := s.FD
	s.Reset()
	o.ready.Add(fd)
	s.Unlock()
}

// closeAndCleanup is the terminal transition into Closing: it releases
// the connection-state lock, removes the descriptor from the registry
// and the readiness set, and closes the socket.
func (o *Orchestrator) closeAndCleanup(s *connstate.State) {
	s.Phase = connstate.Closing
	fd := s.FD
	reason := "ok"
	if s.Fatal {
		reason = "fatal"
	}
	s.Unlock()

	o.registry.remove(fd)
	o.ready.Remove(fd)
	if err := unix.Close(fd); err != nil {
		o.log.Error("close failed", "fd", fd, "error", err)
	}

	o.metrics.ConnectionsActive.Dec()
	o.metrics.ConnectionsClosed.WithLabelValues(reason).Inc()
}

func (o *Orchestrator) observeCommand(cmd protocol.Value, result executor.Result, elapsed time.Duration) {
	verb := commandVerbLabel(cmd)
	o.metrics.CommandsTotal.WithLabelValues(verb, commandResultLabel(result)).Inc()
	o.metrics.CommandDuration.WithLabelValues(verb).Observe(elapsed.Seconds())
}
