package bdfgo

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"
)

// FontCache keeps parsed fonts for long-running programs that render with the
// same few fonts over and over. Entries are keyed by file path or, for raw
// data, by a "sha256:" content hash. When the cache is full the least
// recently used font is evicted.
//
// A cached *Font is shared between callers and must be treated as read-only.
type FontCache struct {
	mu      sync.RWMutex
	entries map[string]*list.Element
	order   *list.List // front is most recently used
	maxSize int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	key  string
	font *Font
	size int64
}

// CacheStats contains cache performance statistics
type CacheStats struct {
	Size      int    // Current number of cached fonts
	Bytes     int64  // Approximate memory held by cached fonts
	MaxSize   int    // Maximum cache size, 0 when unbounded
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

var defaultCache atomic.Pointer[FontCache]

func init() {
	defaultCache.Store(NewFontCache(100))
}

// NewFontCache creates a cache holding at most maxSize fonts.
// A maxSize of 0 or less means the cache never evicts.
func NewFontCache(maxSize int) *FontCache {
	if maxSize < 0 {
		maxSize = 0
	}
	return &FontCache{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		maxSize: maxSize,
	}
}

// LoadFont loads the BDF file at path, serving repeat requests for the same
// path from the cache. Failed loads are not cached.
func (c *FontCache) LoadFont(path string) (*Font, error) {
	return c.load(path, func() (*Font, error) {
		return LoadFont(path)
	})
}

// ParseFont parses BDF data, serving repeat requests for identical content
// from the cache regardless of where the bytes came from.
func (c *FontCache) ParseFont(data []byte) (*Font, error) {
	sum := sha256.Sum256(data)
	return c.load("sha256:"+hex.EncodeToString(sum[:]), func() (*Font, error) {
		return ParseFontBytes(data)
	})
}

// load returns the font cached under key or builds it with fill. Two
// goroutines missing on the same key may both call fill; the first result
// stored wins and is returned to both.
func (c *FontCache) load(key string, fill func() (*Font, error)) (*Font, error) {
	if font, ok := c.lookup(key); ok {
		c.hits.Add(1)
		return font, nil
	}
	c.misses.Add(1)

	font, err := fill()
	if err != nil {
		return nil, err
	}
	return c.store(key, font), nil
}

func (c *FontCache) lookup(key string) (*Font, bool) {
	c.mu.RLock()
	_, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	// The entry may have been evicted between the two locks
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).font, true
}

func (c *FontCache) store(key string, font *Font) *Font {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*cacheEntry).font
	}

	for c.maxSize > 0 && c.order.Len() >= c.maxSize {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
		c.evictions.Add(1)
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{
		key:  key,
		font: font,
		size: estimateFontSize(font),
	})
	return font
}

// Remove drops the font cached under path, if any. Content-keyed entries
// age out through eviction.
func (c *FontCache) Remove(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[path]; ok {
		c.order.Remove(elem)
		delete(c.entries, path)
	}
}

// Clear removes all fonts from the cache. Statistics are kept.
func (c *FontCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// Stats returns a snapshot of the cache statistics.
func (c *FontCache) Stats() CacheStats {
	c.mu.RLock()
	size := c.order.Len()
	var bytes int64
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		bytes += elem.Value.(*cacheEntry).size
	}
	c.mu.RUnlock()

	return CacheStats{
		Size:      size,
		Bytes:     bytes,
		MaxSize:   c.maxSize,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// estimateFontSize gives a rough byte count for a parsed font: the Font
// header, one byte per bitmap row, a fixed cost per glyph record and map
// slot, plus the metadata strings. Use pprof when the real figure matters.
func estimateFontSize(f *Font) int64 {
	if f == nil {
		return 0
	}

	const (
		fontHeader  = 100
		glyphRecord = 96
		mapSlot     = 40
	)

	size := int64(fontHeader + len(f.Name) + len(f.Version))
	for _, g := range f.glyphs {
		size += int64(len(g.Rows)+len(g.Name)) + glyphRecord + mapSlot
	}
	for _, s := range f.Comments {
		size += int64(len(s))
	}
	for _, s := range f.Warnings {
		size += int64(len(s))
	}
	return size
}

// LoadFontCached loads a font file through the default cache.
func LoadFontCached(path string) (*Font, error) {
	return defaultCache.Load().LoadFont(path)
}

// ParseFontCached parses font data through the default cache.
func ParseFontCached(data []byte) (*Font, error) {
	return defaultCache.Load().ParseFont(data)
}

// SetDefaultCacheSize replaces the default cache with an empty one holding
// at most maxSize fonts.
func SetDefaultCacheSize(maxSize int) {
	defaultCache.Store(NewFontCache(maxSize))
}

// ClearDefaultCache clears the default font cache.
func ClearDefaultCache() {
	defaultCache.Load().Clear()
}

// DefaultCacheStats returns statistics for the default cache.
func DefaultCacheStats() CacheStats {
	return defaultCache.Load().Stats()
}
