// Package geometry generates the point clouds used as morph targets.
//
// Every generator returns a flat xyz buffer of exactly n points. Generators
// are pure apart from the random source they are given, and are meant to run
// once per mount; nothing here is called per frame.
package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCount is returned when a generator is asked for n <= 0 points.
	ErrInvalidCount = errors.New("point count must be positive")

	// ErrEmptyShape is returned when a silhouette has no canonical points.
	ErrEmptyShape = errors.New("silhouette has no canonical points")

	// ErrInvalidProjection is returned when hypercube projection parameters
	// would divide by a non-positive value.
	ErrInvalidProjection = errors.New("projection divisor must stay positive")

	// ErrUnknownTarget is returned by Registry.Build for unregistered names.
	ErrUnknownTarget = errors.New("unknown morph target")
)

// PointCloud is a flat sequence of xyz coordinates.
type PointCloud []float32

// NewPointCloud allocates a zeroed cloud of n points.
func NewPointCloud(n int) PointCloud {
	return make(PointCloud, n*3)
}

// Len returns the number of points.
func (pc PointCloud) Len() int {
	return len(pc) / 3
}

// At returns point i.
func (pc PointCloud) At(i int) (x, y, z float32) {
	return pc[i*3], pc[i*3+1], pc[i*3+2]
}

// Set writes point i.
func (pc PointCloud) Set(i int, x, y, z float32) {
	pc[i*3] = x
	pc[i*3+1] = y
	pc[i*3+2] = z
}

// Bounds returns the axis-aligned bounding box of the cloud.
func (pc PointCloud) Bounds() (lo, hi [3]float32) {
	if len(pc) < 3 {
		return
	}
	copy(lo[:], pc[:3])
	copy(hi[:], pc[:3])
	for i := 3; i+2 < len(pc); i += 3 {
		for axis := 0; axis < 3; axis++ {
			lo[axis] = min(lo[axis], pc[i+axis])
			hi[axis] = max(hi[axis], pc[i+axis])
		}
	}
	return
}

func checkCount(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}
	return nil
}
