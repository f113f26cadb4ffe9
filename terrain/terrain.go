package terrain

import (
	"math"

	"github.com/lixenwraith/tracksim/suspension"
	"github.com/lixenwraith/tracksim/vmath"
)

// HeightFunc returns terrain elevation at a horizontal position
type HeightFunc func(x, z float64) float64

// Heightfield is procedural ground implementing the suspension ray-cast
// contract; a pure query service with no mutable state
type Heightfield struct {
	height HeightFunc
	layer  uint32
}

// New wraps a height function on a collision layer
func New(height HeightFunc, layer uint32) *Heightfield {
	return &Heightfield{height: height, layer: layer}
}

// Flat returns a constant-elevation height function
func Flat(y float64) HeightFunc {
	return func(x, z float64) float64 { return y }
}

// Rolling returns layered sine terrain: broad waves with a shorter
// secondary swell, enough geometry variation to exercise the suspension
func Rolling(amplitude, wavelength float64) HeightFunc {
	return func(x, z float64) float64 {
		w1 := math.Sin(z/wavelength) * amplitude
		w2 := math.Sin((x+z)/(wavelength*0.4)) * amplitude * 0.35
		return w1 + w2
	}
}

// HeightAt returns terrain elevation at (x, z)
func (h *Heightfield) HeightAt(x, z float64) float64 {
	return h.height(x, z)
}

// NormalAt approximates the surface normal by central differences
func (h *Heightfield) NormalAt(x, z float64) vmath.Vec3 {
	const eps = 0.05
	dx := (h.height(x+eps, z) - h.height(x-eps, z)) / (2 * eps)
	dz := (h.height(x, z+eps) - h.height(x, z-eps)) / (2 * eps)
	return vmath.V3Normalize(vmath.Vec3{X: -dx, Y: 1, Z: -dz})
}

// Cast marches the ray against the heightfield and refines the first
// crossing by bisection. Returns the nearest hit within maxDist on the
// given layer mask, or false when the ray stays above ground
func (h *Heightfield) Cast(origin, dir vmath.Vec3, maxDist float64, mask uint32) (suspension.RayHit, bool) {
	if mask&h.layer == 0 || maxDist <= 0 {
		return suspension.RayHit{}, false
	}

	below := func(t float64) bool {
		p := vmath.V3Add(origin, vmath.V3Scale(dir, t))
		return p.Y <= h.height(p.X, p.Z)
	}

	// Already inside the ground: surface contact at the origin
	if below(0) {
		return suspension.RayHit{Distance: 0, Normal: h.NormalAt(origin.X, origin.Z)}, true
	}

	const marchSteps = 64
	step := maxDist / marchSteps
	lo := 0.0
	hi := -1.0
	for t := step; t <= maxDist+1e-9; t += step {
		if below(t) {
			hi = t
			break
		}
		lo = t
	}
	if hi < 0 {
		return suspension.RayHit{}, false
	}

	// Bisect the bracketed crossing
	for i := 0; i < 24; i++ {
		mid := (lo + hi) * 0.5
		if below(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}

	p := vmath.V3Add(origin, vmath.V3Scale(dir, hi))
	return suspension.RayHit{Distance: hi, Normal: h.NormalAt(p.X, p.Z)}, true
}
