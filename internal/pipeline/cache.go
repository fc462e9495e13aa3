package pipeline

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache provides thread-safe caching of loaded images to avoid decoding the
// same file repeatedly.
//
// Entries are keyed by the exact path string and the options they were
// loaded with, so a downscaled load never shadows a full-size one.
// Concurrent loads of the same uncached key share a single decode.
// Cached images stay in memory until Evict or Clear is called.
//
// # Example Usage
//
//	cache := pipeline.NewCache()
//	img, err := cache.Load("/path/to/photo.jpg", pipeline.LoadOptions{})
//	if err != nil {
//	    return err
//	}
//	cache.Evict("/path/to/photo.jpg") // Optional: free memory
type Cache struct {
	mu     sync.RWMutex
	images map[cacheKey]*Image
	group  singleflight.Group
}

type cacheKey struct {
	path string
	opts LoadOptions
}

func (k cacheKey) String() string {
	return strconv.Itoa(k.opts.MaxDimension) + ":" + k.path
}

// NewCache creates an empty cache ready for concurrent use.
func NewCache() *Cache {
	return &Cache{
		images: make(map[cacheKey]*Image),
	}
}

// Load returns the cached Image for path, decoding it on first use.
// Decode failures are not cached.
func (c *Cache) Load(path string, opts LoadOptions) (*Image, error) {
	key := cacheKey{path: path, opts: opts}

	if img, ok := c.lookup(key); ok {
		return img, nil
	}

	v, err, _ := c.group.Do(key.String(), func() (interface{}, error) {
		if img, ok := c.lookup(key); ok {
			return img, nil
		}
		img, err := Load(path, opts)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.images[key] = img
		c.mu.Unlock()
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Image), nil
}

func (c *Cache) lookup(key cacheKey) (*Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.images[key]
	return img, ok
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes all images from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[cacheKey]*Image)
	c.mu.Unlock()
}

// Evict removes every cached entry for path, whatever options it was loaded
// with. Unknown paths are ignored.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	for key := range c.images {
		if key.path == path {
			delete(c.images, key)
		}
	}
	c.mu.Unlock()
}
