// Package morph selects the active transition from scroll progress and
// blends morph targets into the per-frame point buffer.
package morph

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidPhases is returned for a phase table that does not cover
	// [0,1] with ordered, contiguous segments.
	ErrInvalidPhases = errors.New("invalid phase table")

	// ErrUnknownEase is returned for an unregistered ease name.
	ErrUnknownEase = errors.New("unknown ease function")
)

// Phase is one segment of the progress domain, morphing From into To.
type Phase struct {
	Start float32 `yaml:"start"`
	End   float32 `yaml:"end"`
	From  string  `yaml:"from"`
	To    string  `yaml:"to"`
}

// PhaseTable is an ordered, contiguous set of phases covering [0,1]. The
// last phase is the terminal phase.
type PhaseTable []Phase

// NewPhaseTable validates phases and returns them as a table.
func NewPhaseTable(phases []Phase) (PhaseTable, error) {
	if len(phases) == 0 {
		return nil, fmt.Errorf("%w: no phases", ErrInvalidPhases)
	}
	if phases[0].Start != 0 {
		return nil, fmt.Errorf("%w: first phase starts at %g, want 0", ErrInvalidPhases, phases[0].Start)
	}
	if last := phases[len(phases)-1]; last.End != 1 {
		return nil, fmt.Errorf("%w: last phase ends at %g, want 1", ErrInvalidPhases, last.End)
	}
	for i, p := range phases {
		if !(p.Start < p.End) {
			return nil, fmt.Errorf("%w: phase %d is empty [%g, %g)", ErrInvalidPhases, i, p.Start, p.End)
		}
		if p.From == "" || p.To == "" {
			return nil, fmt.Errorf("%w: phase %d has no target", ErrInvalidPhases, i)
		}
		if i > 0 && p.Start != phases[i-1].End {
			return nil, fmt.Errorf("%w: gap or overlap between phase %d and %d", ErrInvalidPhases, i-1, i)
		}
	}

	table := make(PhaseTable, len(phases))
	copy(table, phases)
	return table, nil
}

// DefaultPhases is the sphere -> hypercube -> silhouette sequence.
func DefaultPhases() []Phase {
	return []Phase{
		{Start: 0, End: 0.33, From: "sphere", To: "hypercube"},
		{Start: 0.33, End: 0.66, From: "hypercube", To: "silhouette"},
		{Start: 0.66, End: 1, From: "silhouette", To: "silhouette"},
	}
}

// Terminal returns the index of the terminal phase.
func (t PhaseTable) Terminal() int {
	return len(t) - 1
}

// Locate returns the phase containing p and the raw local alpha within it.
// Phases are half-open [start, end) except the last, which includes 1.
// p is clamped to [0,1]; NaN is treated as 0.
func (t PhaseTable) Locate(p float32) (int, float32) {
	p = clamp01(p)
	idx := len(t) - 1
	for i := range t {
		if p < t[i].End {
			idx = i
			break
		}
	}
	ph := t[idx]
	return idx, clamp01((p - ph.Start) / (ph.End - ph.Start))
}

// Targets returns every target name the table refers to, in first-use order.
func (t PhaseTable) Targets() []string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range t {
		for _, name := range []string{p.From, p.To} {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

func clamp01(v float32) float32 {
	if math.IsNaN(float64(v)) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
