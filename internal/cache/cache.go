// Package cache implements a fixed-capacity, recency-ordered cache of file
// payloads keyed by path.
//
// Entries live in a slab owned by the cache. The recency list links slab
// slots by index and the hash index maps keys to generation-checked handles,
// so neither structure owns an entry and a released slot can never be
// reached through a stale handle.
package cache

import (
	"fmt"
	"sync"

	"github.com/guttosm/lru-webserver/internal/hashindex"
	"github.com/guttosm/lru-webserver/internal/metrics"
)

// noSlot marks an absent list neighbour or list end.
const noSlot int32 = -1

// Entry is a read-only view of a cached resource.
// Payload must not be modified by the caller.
type Entry struct {
	Key         string
	ContentType string
	Payload     []byte
}

// Len returns the payload length.
func (e Entry) Len() int {
	return len(e.Payload)
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
	Capacity  int   `json:"capacity"`
}

// handle addresses a slab slot. It is valid while gen matches the slot's generation.
type handle struct {
	slot int32
	gen  uint32
}

// slot holds one entry plus its position in the recency list.
type slot struct {
	key         string
	contentType string
	payload     []byte
	prev        int32
	next        int32
	gen         uint32
	live        bool
}

// released records an entry handed to the release hook after unlock.
type released struct {
	key    string
	reason ReleaseReason
}

// LRU is a thread-safe least-recently-used cache bounded by entry count.
// The head of the recency list is the most recently used entry.
type LRU struct {
	mu            sync.Mutex
	capacity      int
	size          int
	head          int32
	tail          int32
	slots         []slot
	free          []int32
	index         *hashindex.Index[handle]
	policy        DuplicatePolicy
	maxEntryBytes int
	onRelease     ReleaseHook
	hits          int64
	misses        int64
	evictions     int64
	closed        bool
}

// New creates an empty cache holding at most capacity entries.
// indexHint sizes the hash index; <= 0 selects the index default.
func New(capacity, indexHint int, opts ...Option) (*LRU, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	c := &LRU{
		capacity: capacity,
		head:     noSlot,
		tail:     noSlot,
		slots:    make([]slot, 0, capacity),
		index:    hashindex.New[handle](indexHint),
		policy:   ReplaceDuplicates,
	}
	for _, opt := range opts {
		opt(c)
	}

	metrics.UpdateCacheMetrics(0, capacity)
	return c, nil
}

// Get returns the entry for key and marks it most recently used.
// A miss has no side effect on size or recency order.
func (c *LRU) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.lookup(key)
	if !ok {
		c.misses++
		metrics.RecordCacheOperation("get", "miss")
		return Entry{}, false
	}

	c.moveToFront(i)
	c.hits++
	metrics.RecordCacheOperation("get", "hit")
	return c.view(i), true
}

// Peek returns the entry for key without touching recency order or hit counters.
func (c *LRU) Peek(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.lookup(key)
	if !ok {
		return Entry{}, false
	}
	return c.view(i), true
}

// Put stores a copy of payload under key as the most recently used entry.
//
// When the cache is full the least recently used entry is evicted first.
// A key that is already cached is handled according to the DuplicatePolicy.
// On error the cache is unchanged.
func (c *LRU) Put(key, contentType string, payload []byte) error {
	if c.maxEntryBytes > 0 && len(payload) > c.maxEntryBytes {
		metrics.RecordCacheOperation("set", "too_large")
		return fmt.Errorf("%w: %q is %d bytes, limit %d", ErrAllocationFailure, key, len(payload), c.maxEntryBytes)
	}
	data := cloneBytes(payload)

	c.mu.Lock()
	rel, err := c.putLocked(key, contentType, data)
	c.mu.Unlock()

	c.notify(rel)
	return err
}

func (c *LRU) putLocked(key, contentType string, data []byte) ([]released, error) {
	if c.closed {
		return nil, ErrClosed
	}

	var rel []released
	if i, ok := c.lookup(key); ok {
		if c.policy == RejectDuplicates {
			metrics.RecordCacheOperation("set", "duplicate")
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}
		c.unlink(i)
		c.index.Delete(key)
		c.release(i)
		c.size--
		rel = append(rel, released{key: key, reason: ReleaseReplaced})
	} else if c.size == c.capacity {
		rel = append(rel, c.evictTail())
	}

	i := c.alloc()
	s := &c.slots[i]
	s.key = key
	s.contentType = contentType
	s.payload = data
	s.live = true

	c.pushFront(i)
	c.index.Put(key, handle{slot: i, gen: s.gen})
	c.size++

	c.checkInvariants()
	metrics.RecordCacheOperation("set", "success")
	metrics.UpdateCacheMetrics(c.size, c.capacity)
	return rel, nil
}

// Destroy releases the index and every remaining entry.
// It is safe to call more than once; later calls do nothing.
func (c *LRU) Destroy() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.index.Destroy()

	rel := make([]released, 0, c.size)
	for i := c.head; i != noSlot; {
		next := c.slots[i].next
		rel = append(rel, released{key: c.slots[i].key, reason: ReleaseDestroyed})
		c.release(i)
		i = next
	}

	c.head, c.tail = noSlot, noSlot
	c.size = 0
	c.slots = nil
	c.free = nil
	c.closed = true
	c.mu.Unlock()

	metrics.RecordCacheOperation("destroy", "success")
	metrics.UpdateCacheMetrics(0, c.capacity)
	c.notify(rel)
}

// Len returns the number of cached entries.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Cap returns the maximum number of entries.
func (c *LRU) Cap() int {
	return c.capacity
}

// Keys returns cached keys from most to least recently used.
func (c *LRU) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, 0, c.size)
	for i := c.head; i != noSlot; i = c.slots[i].next {
		out = append(out, c.slots[i].key)
	}
	return out
}

// Metrics returns current cache performance metrics.
func (c *LRU) Metrics() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Metrics{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      c.size,
		Capacity:  c.capacity,
	}
}

// lookup resolves key to a live slot.
func (c *LRU) lookup(key string) (int32, bool) {
	if c.closed {
		return noSlot, false
	}
	h, ok := c.index.Get(key)
	if !ok {
		return noSlot, false
	}
	if h.slot < 0 || int(h.slot) >= len(c.slots) {
		return noSlot, false
	}
	s := &c.slots[h.slot]
	if !s.live || s.gen != h.gen {
		return noSlot, false
	}
	return h.slot, true
}

func (c *LRU) view(i int32) Entry {
	s := &c.slots[i]
	return Entry{Key: s.key, ContentType: s.contentType, Payload: s.payload}
}

// evictTail removes the least recently used entry from the list and the index.
func (c *LRU) evictTail() released {
	i := c.tail
	key := c.slots[i].key

	c.unlink(i)
	c.index.Delete(key)
	c.release(i)
	c.size--
	c.evictions++

	metrics.RecordCacheOperation("evict", "capacity")
	return released{key: key, reason: ReleaseEvicted}
}

// alloc returns a free slot, reusing released ones first.
func (c *LRU) alloc() int32 {
	if n := len(c.free); n > 0 {
		i := c.free[n-1]
		c.free = c.free[:n-1]
		return i
	}
	c.slots = append(c.slots, slot{prev: noSlot, next: noSlot})
	return int32(len(c.slots) - 1)
}

// release clears a slot and invalidates every handle to it.
func (c *LRU) release(i int32) {
	s := &c.slots[i]
	gen := s.gen + 1
	*s = slot{prev: noSlot, next: noSlot, gen: gen}
	c.free = append(c.free, i)
}

// pushFront links slot i at the head of the list.
func (c *LRU) pushFront(i int32) {
	s := &c.slots[i]
	s.prev = noSlot
	s.next = c.head
	if c.head == noSlot {
		c.tail = i
	} else {
		c.slots[c.head].prev = i
	}
	c.head = i
}

// unlink removes slot i from the list without touching the index.
func (c *LRU) unlink(i int32) {
	s := &c.slots[i]
	if s.prev == noSlot {
		c.head = s.next
	} else {
		c.slots[s.prev].next = s.next
	}
	if s.next == noSlot {
		c.tail = s.prev
	} else {
		c.slots[s.next].prev = s.prev
	}
	s.prev, s.next = noSlot, noSlot
}

// moveToFront promotes slot i to most recently used.
func (c *LRU) moveToFront(i int32) {
	if i == c.head {
		return
	}
	c.unlink(i)
	c.pushFront(i)
}

// checkInvariants panics if the list, the index and size disagree.
func (c *LRU) checkInvariants() {
	if c.size < 0 || c.size > c.capacity || c.index.Len() != c.size {
		panic(fmt.Sprintf("cache: inconsistent state: size=%d capacity=%d indexed=%d", c.size, c.capacity, c.index.Len()))
	}
	if (c.size == 0) != (c.head == noSlot) || (c.head == noSlot) != (c.tail == noSlot) {
		panic(fmt.Sprintf("cache: inconsistent list ends: size=%d head=%d tail=%d", c.size, c.head, c.tail))
	}
}

func (c *LRU) notify(rel []released) {
	if c.onRelease == nil {
		return
	}
	for _, r := range rel {
		c.onRelease(r.key, r.reason)
	}
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
