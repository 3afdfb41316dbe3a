// File: pool/pool.go
// Package pool implements a fixed set of realtime worker goroutines
// coordinated by one barrier.Triggered, exposing the driver-facing
// wake/wait/wake-and-wait operations.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package pool

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"github.com/momentics/rtworker/apple"
	"github.com/momentics/rtworker/barrier"
	"github.com/momentics/rtworker/isolcpu"
	"github.com/momentics/rtworker/rtmetrics"
	"github.com/momentics/rtworker/rtwerr"
	"github.com/momentics/rtworker/worker"
)

// AutoCore requests that AddWorker choose the least-used core itself.
const AutoCore = -1

// DefaultPriority is the priority AddWorker uses when none is given,
// matching the original's add_worker(priority=75) default.
const DefaultPriority = 75

// Callback is the application-supplied per-worker unit of work.
type Callback = worker.Callback

type coreEntry struct {
	id    int
	count int
}

// Config carries construction-time pool behavior.
type Config struct {
	DisableDenormals  bool
	BreakOnModeSwitch bool
	WorkgroupHandle   apple.WorkgroupHandle
	Logger            *log.Logger
	Metrics           *rtmetrics.Registry
	SampleRate        int
	AudioChunkSize    int
}

// Option configures a Pool at construction time.
type Option func(*Config)

// WithDenormalsOff toggles automatic denormal flushing in worker threads.
// Defaults to true.
func WithDenormalsOff(v bool) Option { return func(c *Config) { c.DisableDenormals = v } }

// WithBreakOnModeSwitch sets the RT-kernel mode-switch debug flag. The flag
// is copied into each worker's Config; no worker code acts on it.
func WithBreakOnModeSwitch(v bool) Option { return func(c *Config) { c.BreakOnModeSwitch = v } }

// WithWorkgroupHandle supplies an Apple CoreAudio workgroup handle for
// workers to join. Ignored on non-darwin builds.
func WithWorkgroupHandle(h apple.WorkgroupHandle) Option {
	return func(c *Config) { c.WorkgroupHandle = h }
}

// WithLogger overrides the pool's logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option { return func(c *Config) { c.Logger = l } }

// WithMetrics attaches a metrics registry updated at generation boundaries.
func WithMetrics(m *rtmetrics.Registry) Option { return func(c *Config) { c.Metrics = m } }

// WithAudioTiming records the sample rate and per-period chunk size in each
// worker's Config. The macOS realtime period that threadsvc sets is a fixed
// value and does not depend on them.
func WithAudioTiming(sampleRate, audioChunkSize int) Option {
	return func(c *Config) { c.SampleRate, c.AudioChunkSize = sampleRate, audioChunkSize }
}

// WorkerOption configures one AddWorker call.
type WorkerOption func(*workerOptions)

type workerOptions struct {
	priority int
	core     int
}

// WithPriority overrides the default priority (75) for one worker.
func WithPriority(p int) WorkerOption { return func(o *workerOptions) { o.priority = p } }

// WithCore pins a worker to an explicit core instead of auto-selecting one.
func WithCore(core int) WorkerOption { return func(o *workerOptions) { o.core = core } }

// Pool is a fixed-size, core-pinned realtime worker pool.
type Pool struct {
	mu          sync.Mutex
	poolRunning atomic.Bool
	closed      atomic.Bool
	workers     []*worker.Worker
	cores       []coreEntry
	b           *barrier.Triggered
	cfg         Config
}

// New builds a pool restricted to the given core ids. An empty cores slice
// is rejected with ErrInvalidArguments; callers choose the core set, for
// example with AutoDetectCores or DefaultCores.
func New(cores []int, opts ...Option) (*Pool, error) {
	if len(cores) == 0 {
		return nil, rtwerr.ErrInvalidArguments
	}
	cfg := Config{DisableDenormals: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	entries := make([]coreEntry, len(cores))
	for i, c := range cores {
		entries[i] = coreEntry{id: c}
	}

	p := &Pool{
		cores: entries,
		b:     barrier.New(0),
		cfg:   cfg,
	}
	p.poolRunning.Store(true)
	return p, nil
}

// DefaultCores returns 0..n-1, used when the caller has no isolated-CPU
// preference. On Linux with isolated CPUs configured, callers should prefer
// isolcpu.Read() instead.
func DefaultCores(n int) []int {
	cores := make([]int, n)
	for i := range cores {
		cores[i] = i
	}
	return cores
}

// coreIndexLocked returns the index of the entry for a given core id, or -1.
func (p *Pool) coreIndexLocked(core int) int {
	for i := range p.cores {
		if p.cores[i].id == core {
			return i
		}
	}
	return -1
}

// pickAutoCoreLocked selects the least-used core, ties broken toward the
// lowest core id. It mirrors the original's add_worker exactly: scan the
// core table from its last index down to its first,
// overwriting the running minimum on "<=" rather than "<", so among equal
// usages the entry closest to index 0 wins.
func (p *Pool) pickAutoCoreLocked() int {
	minIdx := len(p.cores) - 1
	minUsage := p.cores[minIdx].count
	for i := len(p.cores) - 1; i >= 0; i-- {
		cur := p.cores[i].count
		if cur <= minUsage {
			minUsage = cur
			minIdx = i
		}
	}
	return p.cores[minIdx].id
}

// AddWorker registers a new worker, spawns it, and blocks until it has
// reached its park point. Any failure rolls back all bookkeeping performed
// up to that point, leaving the pool exactly as if the call had never
// happened.
func (p *Pool) AddWorker(cb Callback, data any, opts ...WorkerOption) (rtwerr.Status, rtwerr.PlatformStatus) {
	wo := workerOptions{priority: DefaultPriority, core: AutoCore}
	for _, opt := range opts {
		opt(&wo)
	}

	if wo.priority < 0 || wo.priority > 100 {
		return rtwerr.StatusInvalidArguments, rtwerr.PlatformStatusEmpty
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	core := wo.core
	if core != AutoCore {
		if p.coreIndexLocked(core) == -1 {
			return rtwerr.StatusInvalidArguments, rtwerr.PlatformStatusEmpty
		}
	} else {
		core = p.pickAutoCoreLocked()
	}
	idx := p.coreIndexLocked(core)

	prevN := len(p.workers)
	p.b.SetN(prevN + 1)
	p.cores[idx].count++

	rollback := func() {
		p.b.SetN(prevN)
		p.cores[idx].count--
	}

	w := worker.New(p.b, &p.poolRunning, cb, data, worker.Config{
		DisableDenormals:  p.cfg.DisableDenormals,
		BreakOnModeSwitch: p.cfg.BreakOnModeSwitch,
		WorkgroupHandle:   p.cfg.WorkgroupHandle,
		SampleRate:        p.cfg.SampleRate,
		AudioChunkSize:    p.cfg.AudioChunkSize,
	})

	if err := w.Run(wo.priority, core); err != nil {
		rollback()
		return rtwerr.FromError(err), rtwerr.PlatformStatusEmpty
	}

	p.workers = append(p.workers, w)
	if p.cfg.Metrics != nil {
		p.cfg.Metrics.IncCounter("workers_added")
	}

	if err := p.b.WaitForAll(context.Background()); err != nil {
		p.workers = p.workers[:len(p.workers)-1]
		rollback()
		return rtwerr.StatusError, rtwerr.PlatformStatusEmpty
	}

	if status := w.PlatformStatus(); !platformStatusOK(status) {
		w.Stop()
		p.b.ReleaseAll()
		_ = w.Join(context.Background())

		p.workers = p.workers[:len(p.workers)-1]
		rollback()
		return rtwerr.StatusError, status
	}

	return rtwerr.StatusOK, w.PlatformStatus()
}

func platformStatusOK(s rtwerr.PlatformStatus) bool {
	switch s {
	case rtwerr.PlatformStatusOK, rtwerr.PlatformStatusEmpty,
		rtwerr.PlatformStatusRealtimeOk, rtwerr.PlatformStatusNoWorkgroupPassed:
		return true
	default:
		return false
	}
}

// WakeWorkers releases the current generation without waiting for it to
// complete.
func (p *Pool) WakeWorkers() error {
	p.b.ReleaseAll()
	return nil
}

// WaitForWorkersIdle blocks until every worker has parked for the current
// generation.
func (p *Pool) WaitForWorkersIdle(ctx context.Context) error {
	return p.b.WaitForAll(ctx)
}

// WakeAndWait is the preferred synchronous per-period dispatch primitive:
// release the current generation and block until all workers have parked
// for the next one, using the barrier's fused ReleaseAndWait.
func (p *Pool) WakeAndWait(ctx context.Context) error {
	err := p.b.ReleaseAndWait(ctx)
	if err == nil && p.cfg.Metrics != nil {
		p.cfg.Metrics.IncCounter("generations_completed")
	}
	return err
}

// NumWorkers returns the number of registered workers.
func (p *Pool) NumWorkers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workers)
}

// CoreWorkerCounts returns a snapshot of per-core worker counts, for
// diagnostics and tests.
func (p *Pool) CoreWorkerCounts() map[int]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[int]int, len(p.cores))
	for _, c := range p.cores {
		out[c.id] = c.count
	}
	return out
}

// Close implements the pool's shutdown protocol: wait for the current
// generation to finish, clear the running flag, release once so every
// worker observes it and exits its loop, then join them in registration
// order. A second call is a safe no-op, guarded by a single compare-and-swap
// on p.closed.
func (p *Pool) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}

	ctx := context.Background()
	if err := p.b.WaitForAll(ctx); err != nil {
		return err
	}
	p.poolRunning.Store(false)
	p.b.ReleaseAll()

	p.mu.Lock()
	workers := append([]*worker.Worker(nil), p.workers...)
	p.mu.Unlock()

	for _, w := range workers {
		if err := w.Join(ctx); err != nil {
			return err
		}
	}
	return nil
}

// AutoDetectCores returns the isolated-CPU set from the well-known sysfs
// node when one is configured, falling back to 0..n-1 otherwise.
func AutoDetectCores(n int) []int {
	if cores, err := isolcpu.Read(); err == nil && len(cores) > 0 {
		return cores
	}
	return DefaultCores(n)
}
