package morph

import (
	"fmt"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/morphfield/internal/geometry"
)

// Config holds the controller settings.
type Config struct {
	PointCount    int
	Phases        []Phase
	Ease          string
	BaseColor     colorful.Color
	TerminalColor colorful.Color
}

// Frame is the controller output for one tick. Positions aliases the
// controller's reusable buffer and is only valid until the next call to
// Frame.
type Frame struct {
	Positions geometry.PointCloud
	Color     colorful.Color

	Phase int     // index into the phase table
	Alpha float32 // raw local alpha
	Eased float32 // eased local alpha

	// Terminal is set once progress has reached the terminal phase.
	Terminal bool

	// Damping runs from 1 to 0 across the segment leading into the
	// terminal phase and scales the cloud rotation.
	Damping float32
}

// Controller owns the cached morph targets and the output buffer.
type Controller struct {
	table PhaseTable
	ease  EaseFunc

	targets map[string]geometry.PointCloud
	out     geometry.PointCloud

	base     colorful.Color
	terminal colorful.Color

	// frozen is set while out holds the terminal target unchanged.
	frozen bool
}

// NewController validates cfg and builds every target the phase table
// refers to, once, using the registry.
func NewController(cfg Config, registry *geometry.Registry, rng *rand.Rand) (*Controller, error) {
	table, err := NewPhaseTable(cfg.Phases)
	if err != nil {
		return nil, err
	}
	ease, err := EaseByName(cfg.Ease)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		table:    table,
		ease:     ease,
		targets:  make(map[string]geometry.PointCloud),
		base:     cfg.BaseColor,
		terminal: cfg.TerminalColor,
	}

	// Reject unknown names before generating anything.
	for _, name := range table.Targets() {
		if !registry.Has(name) {
			return nil, fmt.Errorf("morph target: %w: %q", geometry.ErrUnknownTarget, name)
		}
	}
	for _, name := range table.Targets() {
		pc, err := registry.Build(name, cfg.PointCount, rng)
		if err != nil {
			return nil, fmt.Errorf("morph target: %w", err)
		}
		c.targets[name] = pc
	}

	c.out = geometry.NewPointCloud(cfg.PointCount)
	return c, nil
}

// Len returns the number of points per frame.
func (c *Controller) Len() int {
	return c.out.Len()
}

// Phases returns the validated phase table.
func (c *Controller) Phases() PhaseTable {
	return c.table
}

// Target returns the cached cloud for name. The result must not be modified.
func (c *Controller) Target(name string) (geometry.PointCloud, bool) {
	pc, ok := c.targets[name]
	return pc, ok
}

// Frame computes the blended cloud and colour for progress p. It runs in
// O(N) and does not allocate.
func (c *Controller) Frame(p float32) Frame {
	idx, alpha := c.table.Locate(p)
	ph := c.table[idx]

	f := Frame{
		Positions: c.out,
		Phase:     idx,
		Alpha:     alpha,
	}

	if idx == c.table.Terminal() {
		if !c.frozen {
			copy(c.out, c.targets[ph.To])
			c.frozen = true
		}
		f.Eased = 1
		f.Terminal = true
		f.Color = c.terminal
		return f
	}

	c.frozen = false
	eased := c.ease(alpha)
	Blend(c.out, c.targets[ph.From], c.targets[ph.To], eased)

	f.Eased = eased
	f.Color = c.base
	f.Damping = 1
	if idx == c.table.Terminal()-1 {
		f.Color = c.base.BlendRgb(c.terminal, float64(eased))
		f.Damping = 1 - eased
	}
	return f
}
