package geometry

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Names of the built-in morph targets.
const (
	TargetSphere     = "sphere"
	TargetHypercube  = "hypercube"
	TargetSilhouette = "silhouette"
)

// Builder produces a morph target of n points.
type Builder func(n int, rng *rand.Rand) (PointCloud, error)

// Registry maps target names to builders. Phases refer to targets by name,
// so adding a shape is one Register call plus a phase row.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register adds or replaces the builder for name.
func (r *Registry) Register(name string, b Builder) {
	r.builders[name] = b
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns the registered target names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build runs the builder registered under name and checks that it produced
// exactly n points.
func (r *Registry) Build(name string, n int, rng *rand.Rand) (PointCloud, error) {
	b, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, name)
	}
	pc, err := b(n, rng)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", name, err)
	}
	if pc.Len() != n || len(pc) != n*3 {
		panic(fmt.Sprintf("geometry: builder %q produced %d floats, want %d", name, len(pc), n*3))
	}
	return pc, nil
}

// Params holds the generation parameters of the built-in targets.
type Params struct {
	SphereRadius float64
	Hypercube    HypercubeParams
	Silhouette   []mgl32.Vec2 // canonical shape, read-only
	Jitter       float64      // silhouette jitter as a fraction of its extent
}

// DefaultRegistry returns a registry holding sphere, hypercube and
// silhouette builders configured from p.
func DefaultRegistry(p Params) *Registry {
	r := NewRegistry()
	r.Register(TargetSphere, func(n int, rng *rand.Rand) (PointCloud, error) {
		return Sphere(n, p.SphereRadius, rng)
	})
	r.Register(TargetHypercube, func(n int, rng *rand.Rand) (PointCloud, error) {
		return Hypercube(n, p.Hypercube, rng)
	})
	r.Register(TargetSilhouette, func(n int, rng *rand.Rand) (PointCloud, error) {
		return Silhouette(n, p.Silhouette, p.Jitter, rng)
	})
	return r
}
