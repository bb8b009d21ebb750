package utils

// RWMutex is the locking interface used where lock acquisition should
// be observable. NewRWMutex returns the standard library mutex unless
// the mutexcheck build tag swaps in a watchdog variant that reports
// stalled acquisitions.
type RWMutex interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}
