package filter

import (
	"container/list"
	"sync"
)

// CacheStats reports compile cache usage
type CacheStats struct {
	Entries   int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// programCache keeps the most recently compiled filters, keyed by the
// trimmed expression. The front of order is the most recently used.
type programCache[V any] struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	index    map[string]*list.Element
	stats    CacheStats
}

type cached[V any] struct {
	expression string
	value      V
}

func newProgramCache[V any](capacity int) *programCache[V] {
	return &programCache[V]{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element, capacity),
	}
}

func (c *programCache[V]) lookup(expression string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[expression]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}

	c.stats.Hits++
	c.order.MoveToFront(el)
	return el.Value.(*cached[V]).value, true
}

func (c *programCache[V]) store(expression string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[expression]; ok {
		el.Value.(*cached[V]).value = value
		c.order.MoveToFront(el)
		return
	}

	c.index[expression] = c.order.PushFront(&cached[V]{expression: expression, value: value})
	for c.order.Len() > c.capacity {
		c.evict(c.order.Back())
	}
}

func (c *programCache[V]) evict(el *list.Element) {
	c.order.Remove(el)
	delete(c.index, el.Value.(*cached[V]).expression)
	c.stats.Evictions++
}

func (c *programCache[V]) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	clear(c.index)
	c.stats = CacheStats{}
}

func (c *programCache[V]) snapshot() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.Entries = c.order.Len()
	stats.Capacity = c.capacity
	return stats
}
