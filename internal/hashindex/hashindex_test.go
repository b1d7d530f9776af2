package hashindex

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name            string
		sizeHint        int
		expectedBuckets int
	}{
		{name: "zero hint uses default", sizeHint: 0, expectedBuckets: DefaultBuckets},
		{name: "negative hint uses default", sizeHint: -5, expectedBuckets: DefaultBuckets},
		{name: "hint rounded up to power of two", sizeHint: 100, expectedBuckets: 128},
		{name: "exact power of two kept", sizeHint: 16, expectedBuckets: 16},
		{name: "hint of one", sizeHint: 1, expectedBuckets: 1},
		{name: "large hint clamped", sizeHint: MaxInitialBuckets*8 + 1, expectedBuckets: MaxInitialBuckets},
		{name: "hint near int overflow clamped", sizeHint: 1<<62 + 1, expectedBuckets: MaxInitialBuckets},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := New[int](tt.sizeHint)
			assert.Equal(t, tt.expectedBuckets, ix.Buckets())
			assert.Equal(t, 0, ix.Len())
		})
	}
}

func TestNextPow2(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		expected int
	}{
		{name: "one", n: 1, expected: 1},
		{name: "rounds up", n: 1000, expected: 1024},
		{name: "at cap", n: MaxBuckets, expected: MaxBuckets},
		{name: "above cap saturates", n: MaxBuckets*4 + 3, expected: MaxBuckets},
		{name: "near int overflow saturates", n: 1<<62 + 1, expected: MaxBuckets},
		{name: "max int saturates", n: math.MaxInt, expected: MaxBuckets},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done := make(chan int, 1)
			go func() { done <- nextPow2(tt.n) }()

			select {
			case got := <-done:
				assert.Equal(t, tt.expected, got)
			case <-time.After(2 * time.Second):
				t.Fatalf("nextPow2(%d) did not return", tt.n)
			}
		})
	}
}

func TestIndex_PutGet(t *testing.T) {
	ix := New[int](0)

	ix.Put("a", 1)
	ix.Put("b", 2)

	v, ok := ix.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = ix.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = ix.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 2, ix.Len())
}

func TestIndex_PutOverwrites(t *testing.T) {
	ix := New[string](0)

	ix.Put("k", "first")
	ix.Put("k", "second")

	v, ok := ix.Get("k")
	require.True(t, ok)
	assert.Equal(t, "second", v)
	assert.Equal(t, 1, ix.Len())
}

func TestIndex_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setup     []string
		deleteKey string
		want      bool
		wantLen   int
	}{
		{name: "delete present key", setup: []string{"a", "b"}, deleteKey: "a", want: true, wantLen: 1},
		{name: "delete absent key", setup: []string{"a"}, deleteKey: "z", want: false, wantLen: 1},
		{name: "delete from empty index", setup: nil, deleteKey: "a", want: false, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := New[int](0)
			for i, k := range tt.setup {
				ix.Put(k, i)
			}

			assert.Equal(t, tt.want, ix.Delete(tt.deleteKey))
			assert.Equal(t, tt.wantLen, ix.Len())
			_, ok := ix.Get(tt.deleteKey)
			assert.False(t, ok)
		})
	}
}

func TestIndex_CollisionChains(t *testing.T) {
	// A single bucket forces every key into one chain.
	ix := New[int](1)

	for i := 0; i < 5; i++ {
		ix.buckets[0] = &node[int]{key: fmt.Sprintf("k%d", i), hash: hashKey(fmt.Sprintf("k%d", i)), value: i, next: ix.buckets[0]}
		ix.count++
	}

	// Delete from head, middle and tail of the chain.
	assert.True(t, ix.Delete("k4"))
	assert.True(t, ix.Delete("k2"))
	assert.True(t, ix.Delete("k0"))

	for _, k := range []string{"k1", "k3"} {
		_, ok := ix.Get(k)
		assert.True(t, ok, k)
	}
	for _, k := range []string{"k0", "k2", "k4"} {
		_, ok := ix.Get(k)
		assert.False(t, ok, k)
	}
	assert.Equal(t, 2, ix.Len())
}

func TestIndex_Grow(t *testing.T) {
	ix := New[int](4)
	const n = 1000

	for i := 0; i < n; i++ {
		ix.Put(fmt.Sprintf("/serverroot/file-%d.html", i), i)
	}

	assert.Equal(t, n, ix.Len())
	assert.LessOrEqual(t, ix.Len()*maxLoadDen, ix.Buckets()*maxLoadNum)

	for i := 0; i < n; i++ {
		v, ok := ix.Get(fmt.Sprintf("/serverroot/file-%d.html", i))
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestIndex_DestroyDoesNotTouchValues(t *testing.T) {
	type payload struct{ data []byte }
	p := &payload{data: []byte("keep me")}

	ix := New[*payload](0)
	ix.Put("p", p)
	ix.Destroy()

	assert.Equal(t, 0, ix.Len())
	_, ok := ix.Get("p")
	assert.False(t, ok)
	assert.Equal(t, []byte("keep me"), p.data)

	// Reusable after destroy.
	ix.Put("p", p)
	got, ok := ix.Get("p")
	assert.True(t, ok)
	assert.Same(t, p, got)
	assert.Equal(t, DefaultBuckets, ix.Buckets())
}
