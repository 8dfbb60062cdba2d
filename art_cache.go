package bitmapwriter

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"

	list "github.com/bahlo/generic-list-go"
)

// ArtCache provides thread-safe caching of parsed pixel art for programs
// that draw the same icons repeatedly. When the maximum size is reached the
// least recently used bitmap is evicted.
//
// Files are keyed by path, in-memory art by the SHA256 of its content.
// Both keys include the packing layout, because the same art packs to
// different bytes under different bit orders and alignments.
type ArtCache struct {
	mu        sync.RWMutex
	entries   map[string]*list.Element[*cacheEntry]
	lru       *list.List[*cacheEntry]
	maxSize   int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	key    string
	bitmap *Bitmap
}

// Global default cache for convenience
var defaultCache = NewArtCache(64)

// NewArtCache creates a cache holding at most maxSize bitmaps.
// A maxSize of 0 or negative means unlimited cache size.
func NewArtCache(maxSize int) *ArtCache {
	return &ArtCache{
		entries: make(map[string]*list.Element[*cacheEntry]),
		lru:     list.New[*cacheEntry](),
		maxSize: maxSize,
	}
}

// layoutKey distinguishes the packing layouts of the same source.
func layoutKey(opts []Option) string {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	k := "|le"
	if o.bigEndian {
		k = "|be"
	}
	if o.byteAligned {
		k += "|aligned"
	}
	return k
}

// LoadArtCached loads pixel art from a file through the default cache.
func LoadArtCached(path string, opts ...Option) (*Bitmap, error) {
	return defaultCache.LoadArt(path, opts...)
}

// LoadArt loads pixel art from a file, returning the cached bitmap if the
// same path was loaded before with the same layout.
func (c *ArtCache) LoadArt(path string, opts ...Option) (*Bitmap, error) {
	key := path + layoutKey(opts)
	if bm := c.get(key); bm != nil {
		return bm, nil
	}

	bm, err := LoadArt(path, opts...)
	if err != nil {
		return nil, err
	}
	c.put(key, bm)
	return bm, nil
}

// ParseArtCached parses pixel art through the default cache.
func ParseArtCached(data []byte, opts ...Option) (*Bitmap, error) {
	return defaultCache.ParseArt(data, opts...)
}

// ParseArt parses pixel art, returning the cached bitmap when identical
// content was parsed before with the same layout.
func (c *ArtCache) ParseArt(data []byte, opts ...Option) (*Bitmap, error) {
	hash := sha256.Sum256(data)
	key := "sha256:" + hex.EncodeToString(hash[:]) + layoutKey(opts)

	if bm := c.get(key); bm != nil {
		return bm, nil
	}

	bm, err := ParseArtBytes(data, opts...)
	if err != nil {
		return nil, err
	}
	c.put(key, bm)
	return bm, nil
}

// get looks the key up under the read lock and takes the write lock only
// to move a hit to the front.
func (c *ArtCache) get(key string) *Bitmap {
	c.mu.RLock()
	elem, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.misses.Add(1)
		return nil
	}

	c.mu.Lock()
	// The entry may have been evicted between the two locks
	if _, still := c.entries[key]; still {
		c.lru.MoveToFront(elem)
	}
	c.mu.Unlock()

	c.hits.Add(1)
	return elem.Value.bitmap
}

// put adds a bitmap, evicting the least recently used entry when full.
func (c *ArtCache) put(key string, bm *Bitmap) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		return
	}
	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictLRU()
	}
	c.entries[key] = c.lru.PushFront(&cacheEntry{key: key, bitmap: bm})
}

func (c *ArtCache) evictLRU() {
	back := c.lru.Back()
	if back == nil {
		return
	}
	delete(c.entries, back.Value.key)
	c.lru.Remove(back)
	c.evictions.Add(1)
}

// Clear removes all bitmaps from the cache. Statistics are kept.
func (c *ArtCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element[*cacheEntry])
	c.lru.Init()
}

// Stats returns cache statistics.
func (c *ArtCache) Stats() CacheStats {
	c.mu.RLock()
	size := len(c.entries)
	var bytes int64
	for _, elem := range c.entries {
		bytes += int64(len(elem.Value.bitmap.pix))
	}
	c.mu.RUnlock()

	return CacheStats{
		Size:      size,
		MaxSize:   c.maxSize,
		Bytes:     bytes,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// CacheStats contains cache performance statistics
type CacheStats struct {
	Size      int    // Current number of cached bitmaps
	MaxSize   int    // Maximum cache size
	Bytes     int64  // Packed pixel bytes held
	Hits      uint64 // Number of cache hits
	Misses    uint64 // Number of cache misses
	Evictions uint64 // Number of evictions
}

// HitRate returns the cache hit rate as a percentage (0-100)
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) * 100 / float64(total)
}

// SetDefaultCacheSize replaces the default cache with an empty one of the
// given size. Call it once at startup.
func SetDefaultCacheSize(maxSize int) {
	defaultCache = NewArtCache(maxSize)
}

// ClearDefaultCache clears the default cache.
func ClearDefaultCache() {
	defaultCache.Clear()
}

// DefaultCacheStats returns statistics for the default cache.
func DefaultCacheStats() CacheStats {
	return defaultCache.Stats()
}
