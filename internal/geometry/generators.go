package geometry

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Shell thickness: radii fall in [shellInner*R, R].
const (
	shellInner = 0.7
	shellSpan  = 1 - shellInner
)

// Sphere places n points on a golden-angle lattice over a shell of the given
// radius. Each point's radius is jittered into [0.7R, R] to give the shell
// some volume.
func Sphere(n int, radius float64, rng *rand.Rand) (PointCloud, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}

	pc := NewPointCloud(n)
	golden := math.Pi * (1 + math.Sqrt(5))
	for i := 0; i < n; i++ {
		phi := math.Acos(1 - 2*(float64(i)+0.5)/float64(n))
		theta := golden * float64(i)
		r := radius * (shellInner + shellSpan*rng.Float64())

		sinPhi := math.Sin(phi)
		pc.Set(i,
			float32(r*sinPhi*math.Cos(theta)),
			float32(r*sinPhi*math.Sin(theta)),
			float32(r*math.Cos(phi)),
		)
	}
	return pc, nil
}

// HypercubeParams controls the 4D sampling and the perspective divide.
type HypercubeParams struct {
	HalfWidth float64 // W: points are drawn from [-W, W]^4
	Scale     float64 // S
	Distance  float64 // D
	W         float64 // w: weight of the 4th coordinate in the divisor
}

// DefaultHypercubeParams returns the parameters used by the default scene.
func DefaultHypercubeParams() HypercubeParams {
	return HypercubeParams{
		HalfWidth: 1.5,
		Scale:     2,
		Distance:  3,
		W:         0.5,
	}
}

// Validate checks that S / (D - v3*w) has a positive divisor for every v3.
func (p HypercubeParams) Validate() error {
	if p.HalfWidth <= 0 {
		return fmt.Errorf("%w: half width %g", ErrInvalidProjection, p.HalfWidth)
	}
	if p.Distance-p.HalfWidth*math.Abs(p.W) <= 0 {
		return fmt.Errorf("%w: D=%g W=%g w=%g", ErrInvalidProjection, p.Distance, p.HalfWidth, p.W)
	}
	return nil
}

// Hypercube draws n points uniformly from a 4D cube and projects them to 3D
// with scale = S / (D - v3*w). The result is a volumetric cloud rather than a
// wireframe.
func Hypercube(n int, p HypercubeParams, rng *rand.Rand) (PointCloud, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	pc := NewPointCloud(n)
	for i := 0; i < n; i++ {
		var v [4]float64
		for k := range v {
			v[k] = (rng.Float64()*2 - 1) * p.HalfWidth
		}
		scale := p.Scale / (p.Distance - v[3]*p.W)
		pc.Set(i,
			float32(v[0]*scale),
			float32(v[1]*scale),
			float32(v[2]*scale),
		)
	}
	return pc, nil
}

// Silhouette lays n points over a flat canonical shape. With M canonical
// points, output i uses point i mod M when M <= n, or the evenly strided
// point i*M/n when the shape has more points than the cloud. Each point is
// jittered in the plane by up to jitter*extent/2 and z is fixed to 0.
func Silhouette(n int, canonical []mgl32.Vec2, jitter float64, rng *rand.Rand) (PointCloud, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	m := len(canonical)
	if m == 0 {
		return nil, ErrEmptyShape
	}

	amount := jitter * float64(extent(canonical))

	pc := NewPointCloud(n)
	for i := 0; i < n; i++ {
		idx := i % m
		if m > n {
			idx = int(int64(i) * int64(m) / int64(n))
		}
		c := canonical[idx]
		pc.Set(i,
			c.X()+float32((rng.Float64()-0.5)*amount),
			c.Y()+float32((rng.Float64()-0.5)*amount),
			0,
		)
	}
	return pc, nil
}

// extent returns the larger side of the shape's bounding box.
func extent(points []mgl32.Vec2) float32 {
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = mgl32.Vec2{min(lo.X(), p.X()), min(lo.Y(), p.Y())}
		hi = mgl32.Vec2{max(hi.X(), p.X()), max(hi.Y(), p.Y())}
	}
	size := hi.Sub(lo)
	return max(size.X(), size.Y())
}
