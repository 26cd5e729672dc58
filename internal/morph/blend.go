package morph

import (
	"fmt"

	"github.com/Faultbox/morphfield/internal/geometry"
)

// Blend writes from*(1-t) + to*t into dst. t <= 0 and t >= 1 copy the
// endpoints exactly. All three clouds must have the same length; a
// mismatch is a programming error and panics.
func Blend(dst, from, to geometry.PointCloud, t float32) {
	if len(from) != len(to) || len(dst) != len(from) {
		panic(fmt.Sprintf("morph: blend length mismatch dst=%d from=%d to=%d", len(dst), len(from), len(to)))
	}

	switch {
	case t <= 0:
		copy(dst, from)
	case t >= 1:
		copy(dst, to)
	default:
		inv := 1 - t
		for i := range dst {
			dst[i] = from[i]*inv + to[i]*t
		}
	}
}
