//go:build mutexcheck

package utils

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// How long an acquisition may stall before the watchdog gives up.
const mutexStallTimeout = 30 * time.Second

// checkedMutex is a sync.RWMutex with an acquisition watchdog. When a
// lock cannot be taken within mutexStallTimeout, the stack of the last
// write holder and of the stalled goroutine are dumped to stderr and
// the process panics. Only write holders are tracked; read holders are
// too many to be useful in a report.
type checkedMutex struct {
	mu     sync.RWMutex
	holder atomic.Pointer[string]
}

func NewRWMutex() *checkedMutex {
	return &checkedMutex{}
}

func (m *checkedMutex) Lock() {
	m.acquire(m.mu.Lock, "Lock")
	stack := currentStack()
	m.holder.Store(&stack)
}

func (m *checkedMutex) Unlock() {
	m.holder.Store(nil)
	m.mu.Unlock()
}

func (m *checkedMutex) RLock() {
	m.acquire(m.mu.RLock, "RLock")
}

func (m *checkedMutex) RUnlock() {
	m.mu.RUnlock()
}

func (m *checkedMutex) acquire(lock func(), op string) {
	done := make(chan struct{})
	go func() {
		lock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(mutexStallTimeout):
		if holder := m.holder.Load(); holder != nil {
			fmt.Fprintf(os.Stderr, "mutex held by:\n%s\n", *holder)
		}
		fmt.Fprintf(os.Stderr, "stalled %s at:\n%s\n", op, currentStack())
		panic("mutex acquisition stalled")
	}
}

func currentStack() string {
	buffer := make([]byte, 64*1024)
	return string(buffer[:runtime.Stack(buffer, false)])
}
