package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"image"
	"sync"

	"github.com/visagelab/faceanalysis/internal/face"
	"github.com/visagelab/faceanalysis/pkg/imgutil"
)

// FrameCache provides thread-safe cached face lookups keyed by frame content.
//
// An empty face list is a valid cached result: a frame that was analysed and
// contained no faces hits the cache on the next lookup instead of triggering
// a fresh detection. Only a frame that was never stored misses.
type FrameCache struct {
	entries map[string][]face.Face
	mu      sync.RWMutex
}

// New creates a new frame cache.
func New() *FrameCache {
	return &FrameCache{
		entries: make(map[string][]face.Face),
	}
}

// Key derives the content key for a frame: a SHA-1 digest over its raw pixel
// bytes. Two frames with identical pixel content share a key.
func Key(frame image.Image) string {
	sum := sha1.Sum(imgutil.PixelBytes(frame))
	return hex.EncodeToString(sum[:])
}

// Get retrieves the cached face list for a frame. The second return value
// distinguishes "analysed, zero faces" (true, empty slice) from "never
// analysed" (false).
func (c *FrameCache) Get(frame image.Image) ([]face.Face, bool) {
	key := Key(frame)
	c.mu.RLock()
	defer c.mu.RUnlock()
	faces, ok := c.entries[key]
	return faces, ok
}

// Put stores the face list for a frame. Concurrent writers for the same frame
// simply overwrite each other; the faces for a given frame content are
// identical either way.
func (c *FrameCache) Put(frame image.Image, faces []face.Face) {
	key := Key(frame)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = faces
}

// Clear drops every cached entry.
func (c *FrameCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]face.Face)
}

// Len returns the number of cached frames.
func (c *FrameCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
