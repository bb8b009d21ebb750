package utils

import "sync"

// A single-fire gate that releases all waiters once tripped.
//
// Trip may be called any number of times from any goroutine; only the
// first call has an effect. Wait blocks until the latch is tripped and
// returns immediately if it already was. The latch never re-arms.
type Latch struct {
	once sync.Once
	done chan struct{}
}

func NewLatch() *Latch {
	return &Latch{
		done: make(chan struct{}),
	}
}

// Trip the latch, releasing all current and future waiters. Idempotent.
func (l *Latch) Trip() {
	l.once.Do(func() {
		close(l.done)
	})
}

// Wait for the latch to be tripped.
func (l *Latch) Wait() {
	<-l.done
}

// Channel that is closed when the latch is tripped.
func (l *Latch) Done() <-chan struct{} {
	return l.done
}

// Check if the latch has been tripped, without blocking.
func (l *Latch) Tripped() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}
