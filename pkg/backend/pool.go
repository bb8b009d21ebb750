package backend

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/galecloud/gale/pkg/log"
	"github.com/galecloud/gale/pkg/metrics"
	"github.com/galecloud/gale/pkg/utils"
)

// Details about a registered executor.
type ExecutorInfo struct {
	// Stable executor identifier.
	ID string

	// Address the executor serves on.
	HostPort string

	// Number of units the executor provides.
	Units int

	// Memory granted to the executor, in MiB.
	MemoryMB int

	// Free form node properties reported at registration.
	Attributes map[string]string

	// Time the executor registered.
	RegisteredAt time.Time
}

// Executor bookkeeping shared by all backends.
// Tracks registered executors, maintains the registered unit count and
// decides when work may be released to the scheduler.
type Pool struct {
	mu sync.RWMutex

	// Map of executor id to executor
	executors map[string]*ExecutorInfo

	// Total number of registered units.
	// Read lock-free by the sufficiency predicate.
	units atomic.Int64

	// Lifetime counters
	granted atomic.Int64
	lost    atomic.Int64

	// Set once the pool has been stopped. Removals after that point
	// are expected churn and are not escalated to the scheduler.
	stopped atomic.Bool

	scheduler  Scheduler
	sufficient func() bool
	maxWait    time.Duration
	createdAt  time.Time
}

// Create a new executor pool.
// The sufficient callback decides when enough units have registered,
// nil means no gating. The pool releases work regardless once maxWait
// has elapsed since creation.
func NewPool(scheduler Scheduler, sufficient func() bool, maxWait time.Duration) *Pool {
	return &Pool{
		executors:  map[string]*ExecutorInfo{},
		scheduler:  scheduler,
		sufficient: sufficient,
		maxWait:    maxWait,
		createdAt:  time.Now(),
	}
}

// Register a new executor with the pool.
// Duplicate identifiers are rejected with ErrAlreadyExists.
func (p *Pool) RegisterExecutor(info *ExecutorInfo) error {
	if p.stopped.Load() {
		return utils.ErrTerminated
	}

	p.mu.Lock()
	if _, ok := p.executors[info.ID]; ok {
		p.mu.Unlock()
		log.Warnf("add - executor - duplicate id: %s", info.ID)
		return utils.ErrAlreadyExists
	}

	if info.RegisteredAt.IsZero() {
		info.RegisteredAt = time.Now()
	}

	p.executors[info.ID] = info
	count := len(p.executors)
	total := p.units.Add(int64(info.Units))
	p.granted.Add(1)
	p.mu.Unlock()

	metrics.ExecutorsRegistered.Set(float64(count))
	metrics.UnitsRegistered.Set(float64(total))

	log.Infof("add - executor - id: %s, host: %s, units: %d, total: %d", info.ID, info.HostPort, info.Units, total)
	return nil
}

// Remove an executor from the pool and report the loss to the scheduler.
// Removing an unknown identifier is a no-op. Removals after Stop are
// bookkept but no longer reported.
func (p *Pool) RemoveExecutor(id string, reason LossReason) {
	p.mu.Lock()
	info, ok := p.executors[id]
	if !ok {
		p.mu.Unlock()
		log.Debugf("del - executor - unknown - id: %s", id)
		return
	}

	delete(p.executors, id)
	count := len(p.executors)
	total := p.units.Add(-int64(info.Units))
	p.lost.Add(1)
	p.mu.Unlock()

	metrics.ExecutorsRegistered.Set(float64(count))
	metrics.UnitsRegistered.Set(float64(total))

	if p.stopped.Load() {
		log.Debugf("del - executor - id: %s, reason: %s, total: %d", id, reason, total)
		return
	}

	metrics.ExecutorsLost.WithLabelValues(lossLabel(reason)).Inc()

	log.Infof("del - executor - id: %s, reason: %s, total: %d", id, reason, total)
	p.scheduler.ExecutorLost(id, reason)
}

// Returns the executor with the given id, or nil.
func (p *Pool) Executor(id string) *ExecutorInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.executors[id]
}

// Returns all registered executors, ordered by id.
func (p *Pool) Executors() []*ExecutorInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()

	executors := make([]*ExecutorInfo, 0, len(p.executors))
	for _, info := range p.executors {
		executors = append(executors, info)
	}

	sort.Slice(executors, func(i, j int) bool {
		return executors[i].ID < executors[j].ID
	})

	return executors
}

// Total number of registered units. Lock-free.
func (p *Pool) RegisteredUnits() int64 {
	return p.units.Load()
}

// Number of registered executors.
func (p *Pool) ExecutorCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.executors)
}

// True once work may be released to the scheduler, either because the
// sufficiency check passed or because the registration grace period
// has expired.
func (p *Pool) IsReady() bool {
	if p.sufficient == nil || p.sufficient() {
		return true
	}

	return p.maxWait > 0 && time.Since(p.createdAt) >= p.maxWait
}

// Block until the pool is ready or the context is cancelled.
func (p *Pool) WaitUntilReady(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if p.IsReady() {
			log.Infof("rdy - backend - executors: %d, units: %d", p.ExecutorCount(), p.RegisteredUnits())
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Stop the pool. Further removals are treated as shutdown churn.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// Identifier used when the cluster never assigned one.
func (p *Pool) FallbackApplicationID() string {
	return fmt.Sprintf("gale-app-%d", p.createdAt.UnixMilli())
}

// Time the pool was created.
func (p *Pool) StartedAt() time.Time {
	return p.createdAt
}

// Pool statistics
func (p *Pool) Statistics() *BackendStatistics {
	return &BackendStatistics{
		Executors:        p.ExecutorCount(),
		RegisteredUnits:  p.RegisteredUnits(),
		GrantedExecutors: p.granted.Load(),
		LostExecutors:    p.lost.Load(),
		StartedAt:        p.createdAt,
	}
}
