package rendering

import (
	"sync"
)

// Cache size defaults - eviction trims to the target so it happens in small, frequent steps
const (
	DefaultSliceCacheMaxSize    = 4096
	DefaultSliceCacheTargetSize = 3072
)

// SliceCache is a thread-safe cache of per-column draw resources such as texture sub-images.
// Entries are evicted oldest first once the cache reaches its maximum size.
type SliceCache[K comparable, V any] struct {
	cache      map[K]V
	mutex      sync.RWMutex
	cacheOrder []K
	maxSize    int
	targetSize int
}

// NewSliceCache creates a cache holding at most maxSize entries. Values <= 0 select the defaults.
func NewSliceCache[K comparable, V any](maxSize int) *SliceCache[K, V] {
	if maxSize <= 0 {
		maxSize = DefaultSliceCacheMaxSize
	}
	target := maxSize * 3 / 4
	if maxSize == DefaultSliceCacheMaxSize {
		target = DefaultSliceCacheTargetSize
	}
	return &SliceCache[K, V]{
		cache:      make(map[K]V, maxSize),
		cacheOrder: make([]K, 0, maxSize),
		maxSize:    maxSize,
		targetSize: target,
	}
}

// GetOrCreate returns the cached value for key, calling createFunc on a miss
func (sc *SliceCache[K, V]) GetOrCreate(key K, createFunc func() V) V {
	sc.mutex.RLock()
	if v, exists := sc.cache[key]; exists {
		sc.mutex.RUnlock()
		return v
	}
	sc.mutex.RUnlock()

	newValue := createFunc()

	sc.mutex.Lock()
	defer sc.mutex.Unlock()

	// Another goroutine may have stored it while we were creating
	if v, exists := sc.cache[key]; exists {
		return v
	}

	if len(sc.cache) >= sc.maxSize {
		evictCount := len(sc.cacheOrder) - sc.targetSize
		if evictCount > 0 && evictCount <= len(sc.cacheOrder) {
			for i := 0; i < evictCount; i++ {
				delete(sc.cache, sc.cacheOrder[i])
			}
			sc.cacheOrder = append(sc.cacheOrder[:0:0], sc.cacheOrder[evictCount:]...)
		}
	}

	sc.cache[key] = newValue
	sc.cacheOrder = append(sc.cacheOrder, key)
	return newValue
}

// Len returns the number of cached entries
func (sc *SliceCache[K, V]) Len() int {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()
	return len(sc.cache)
}

// Clear drops every entry
func (sc *SliceCache[K, V]) Clear() {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	sc.cache = make(map[K]V, sc.maxSize)
	sc.cacheOrder = sc.cacheOrder[:0]
}
