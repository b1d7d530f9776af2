// Package hashindex provides a string-keyed hash table used as a lookup
// accelerator by the LRU cache.
//
// The index stores values by copy and never owns what they refer to:
// Destroy drops the buckets and leaves the referenced data untouched.
// An Index is not safe for concurrent use.
package hashindex

import "hash/fnv"

const (
	// DefaultBuckets is the bucket count used when New receives a size hint <= 0.
	DefaultBuckets = 128

	// MaxInitialBuckets bounds what a size hint can preallocate. The index
	// still grows past it as entries arrive.
	MaxInitialBuckets = 1 << 20

	// MaxBuckets is the largest bucket array; the index stops growing there.
	MaxBuckets = 1 << 30

	// maxLoadNum/maxLoadDen is the load factor that triggers a resize.
	maxLoadNum = 3
	maxLoadDen = 4
)

// node is a single chain link in a bucket.
type node[V any] struct {
	key   string
	hash  uint32
	value V
	next  *node[V]
}

// Index maps string keys to values using separate chaining.
type Index[V any] struct {
	buckets []*node[V]
	mask    uint32
	count   int
}

// New creates an index sized for roughly sizeHint entries.
// A sizeHint <= 0 selects DefaultBuckets.
func New[V any](sizeHint int) *Index[V] {
	n := DefaultBuckets
	if sizeHint > 0 {
		n = min(nextPow2(sizeHint), MaxInitialBuckets)
	}
	return &Index[V]{
		buckets: make([]*node[V], n),
		mask:    uint32(n - 1),
	}
}

// Put inserts or overwrites the mapping for key.
func (ix *Index[V]) Put(key string, value V) {
	if ix.buckets == nil {
		ix.reset(DefaultBuckets)
	}

	h := hashKey(key)
	for n := ix.buckets[h&ix.mask]; n != nil; n = n.next {
		if n.hash == h && n.key == key {
			n.value = value
			return
		}
	}

	b := h & ix.mask
	ix.buckets[b] = &node[V]{key: key, hash: h, value: value, next: ix.buckets[b]}
	ix.count++

	if ix.count*maxLoadDen > len(ix.buckets)*maxLoadNum {
		ix.grow()
	}
}

// Get returns the value stored for key.
func (ix *Index[V]) Get(key string) (V, bool) {
	var zero V
	if ix.count == 0 {
		return zero, false
	}

	h := hashKey(key)
	for n := ix.buckets[h&ix.mask]; n != nil; n = n.next {
		if n.hash == h && n.key == key {
			return n.value, true
		}
	}
	return zero, false
}

// Delete removes the mapping for key and reports whether it was present.
func (ix *Index[V]) Delete(key string) bool {
	if ix.count == 0 {
		return false
	}

	h := hashKey(key)
	b := h & ix.mask
	var prev *node[V]
	for n := ix.buckets[b]; n != nil; n = n.next {
		if n.hash == h && n.key == key {
			if prev == nil {
				ix.buckets[b] = n.next
			} else {
				prev.next = n.next
			}
			n.next = nil
			ix.count--
			return true
		}
		prev = n
	}
	return false
}

// Len returns the number of mappings.
func (ix *Index[V]) Len() int {
	return ix.count
}

// Buckets returns the current bucket count.
func (ix *Index[V]) Buckets() int {
	return len(ix.buckets)
}

// Destroy releases all internal storage. Values are dropped, not released.
// The index may be reused after Destroy; it starts over with DefaultBuckets.
func (ix *Index[V]) Destroy() {
	ix.buckets = nil
	ix.mask = 0
	ix.count = 0
}

// grow doubles the bucket array and rehashes every node in place.
func (ix *Index[V]) grow() {
	if len(ix.buckets) >= MaxBuckets {
		return
	}
	old := ix.buckets
	ix.buckets = make([]*node[V], len(old)*2)
	ix.mask = uint32(len(ix.buckets) - 1)

	for _, head := range old {
		for n := head; n != nil; {
			next := n.next
			b := n.hash & ix.mask
			n.next = ix.buckets[b]
			ix.buckets[b] = n
			n = next
		}
	}
}

func (ix *Index[V]) reset(n int) {
	ix.buckets = make([]*node[V], n)
	ix.mask = uint32(n - 1)
	ix.count = 0
}

func hashKey(key string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32()
}

// nextPow2 rounds n up to the next power of two, saturating at MaxBuckets.
func nextPow2(n int) int {
	p := 1
	for p < n && p < MaxBuckets {
		p *= 2
	}
	return p
}
