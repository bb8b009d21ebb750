package utils

import (
	"container/list"
	"sync"
)

// An item tracked by the LRU index. Items are keyed by path and
// contribute their size to the total.
type LRUItem interface {
	Path() string
	Size() int64
}

// EvictFunc is called when an item is about to be evicted. Returning
// false vetoes the eviction and the item stays indexed, e.g. because
// it is still in use.
type EvictFunc[E LRUItem] func(item E) bool

// LRU is a size-bounded, least-recently-used index of items.
// When the total size exceeds the maximum, the oldest items are
// evicted until the total fits. A maximum of zero means unbounded.
type LRU[E LRUItem] struct {
	mu sync.Mutex

	maxSize     int64
	currentSize int64

	order *list.List
	index map[string]*list.Element

	onEvict EvictFunc[E]
}

func NewLRU[E LRUItem](maxSize int64, onEvict EvictFunc[E]) *LRU[E] {
	return &LRU[E]{
		maxSize: maxSize,
		order:   list.New(),
		index:   make(map[string]*list.Element),
		onEvict: onEvict,
	}
}

// Add an item to the index, evicting the least recently used items
// if the size bound is exceeded. Re-adding an existing path marks it
// as most recently used and updates its accounted size.
func (lru *LRU[E]) Add(item E) {
	lru.mu.Lock()
	defer lru.mu.Unlock()

	if elem, ok := lru.index[item.Path()]; ok {
		lru.currentSize += item.Size() - elem.Value.(E).Size()
		elem.Value = item
		lru.order.MoveToFront(elem)
	} else {
		elem := lru.order.PushFront(item)
		lru.index[item.Path()] = elem
		lru.currentSize += item.Size()
	}

	if lru.maxSize <= 0 {
		return
	}

	// Walk from the oldest entry until the size fits or every
	// remaining item has vetoed its eviction.
	for e := lru.order.Back(); e != nil && lru.currentSize > lru.maxSize; {
		prev := e.Prev()
		if lru.onEvict == nil || lru.onEvict(e.Value.(E)) {
			lru.unlink(e)
		}
		e = prev
	}
}

// Get an item by path, marking it as most recently used.
func (lru *LRU[E]) Get(path string) (item E, ok bool) {
	lru.mu.Lock()
	defer lru.mu.Unlock()

	if elem, hit := lru.index[path]; hit {
		lru.order.MoveToFront(elem)
		return elem.Value.(E), true
	}
	return
}

// Remove an item from the index without invoking the eviction callback.
func (lru *LRU[E]) Remove(path string) {
	lru.mu.Lock()
	defer lru.mu.Unlock()

	if elem, hit := lru.index[path]; hit {
		lru.unlink(elem)
	}
}

// Total size of all indexed items.
func (lru *LRU[E]) Size() int64 {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	return lru.currentSize
}

// Number of indexed items.
func (lru *LRU[E]) Count() int {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	return lru.order.Len()
}

func (lru *LRU[E]) unlink(elem *list.Element) {
	lru.order.Remove(elem)
	item := elem.Value.(E)
	delete(lru.index, item.Path())
	lru.currentSize -= item.Size()
}
