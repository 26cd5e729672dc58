// Package assets loads the static shape data used by the morph targets.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// silhouetteYAML is the canonical reveal silhouette (a dragon curve).
//
//go:embed silhouette.yaml
var silhouetteYAML []byte

// EmbeddedSilhouette is the key under which the built-in silhouette is cached.
const EmbeddedSilhouette = ""

// Shape is a flat list of canonical 2D points.
type Shape struct {
	Name   string       `yaml:"name"`
	Points [][2]float32 `yaml:"points"`
}

// ParseShape decodes a YAML shape document.
func ParseShape(data []byte) (*Shape, error) {
	var s Shape
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding shape: %w", err)
	}
	if len(s.Points) == 0 {
		return nil, errors.New("shape has no points")
	}
	return &s, nil
}

// Vec2s converts the shape points for the geometry generators.
func (s *Shape) Vec2s() []mgl32.Vec2 {
	out := make([]mgl32.Vec2, len(s.Points))
	for i, p := range s.Points {
		out[i] = mgl32.Vec2{p[0], p[1]}
	}
	return out
}

// Manager loads shapes once and hands out the cached copies. Returned
// slices are shared and must be treated as read-only.
type Manager struct {
	cache *Cache
}

// NewManager creates a new shape manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// Silhouette returns the canonical points of the shape at path, or of the
// embedded silhouette when path is empty.
func (m *Manager) Silhouette(path string) ([]mgl32.Vec2, error) {
	if pts, ok := m.cache.Get(path); ok {
		return pts, nil
	}

	data := silhouetteYAML
	if path != EmbeddedSilhouette {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading shape %s: %w", path, err)
		}
	}

	shape, err := ParseShape(data)
	if err != nil {
		return nil, err
	}
	pts := shape.Vec2s()
	m.cache.Set(path, pts)
	return pts, nil
}

// Cache is a small in-memory cache of decoded shapes.
type Cache struct {
	data map[string][]mgl32.Vec2
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]mgl32.Vec2),
	}
}

// Get retrieves a shape from cache.
func (c *Cache) Get(key string) ([]mgl32.Vec2, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pts, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return pts, ok
}

// Set stores a shape in cache.
func (c *Cache) Set(key string, pts []mgl32.Vec2) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = pts
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
