package morph

import (
	"fmt"
	"sort"
)

// EaseFunc remaps a local alpha in [0,1] onto [0,1].
type EaseFunc func(a float32) float32

// Linear is the identity ease.
func Linear(a float32) float32 {
	return a
}

// InOutQuad is the symmetric quadratic smoothstep used by default.
func InOutQuad(a float32) float32 {
	if a < 0.5 {
		return 2 * a * a
	}
	t := -2*a + 2
	return 1 - t*t/2
}

// Smoothstep is the cubic Hermite ease 3a^2 - 2a^3.
func Smoothstep(a float32) float32 {
	return a * a * (3 - 2*a)
}

var eases = map[string]EaseFunc{
	"linear":      Linear,
	"in_out_quad": InOutQuad,
	"smoothstep":  Smoothstep,
}

// DefaultEase is the ease name used when none is configured.
const DefaultEase = "in_out_quad"

// EaseByName looks up an ease function. An empty name selects DefaultEase.
func EaseByName(name string) (EaseFunc, error) {
	if name == "" {
		name = DefaultEase
	}
	fn, ok := eases[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownEase, name, EaseNames())
	}
	return fn, nil
}

// EaseNames lists the available ease functions.
func EaseNames() []string {
	names := make([]string, 0, len(eases))
	for name := range eases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
