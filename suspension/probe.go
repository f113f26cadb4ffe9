package suspension

import (
	"github.com/lixenwraith/tracksim/vmath"
)

// GroundProbe senses ground below one suspension point
// The cast origin is offset restLength above the anchor so the point can
// detect ground even when fully extended or slightly above rest
type GroundProbe struct {
	ray        Raycaster
	restLength float64
	mask       uint32
}

// NewGroundProbe wraps a raycaster for a given strut rest length
func NewGroundProbe(ray Raycaster, restLength float64, mask uint32) GroundProbe {
	return GroundProbe{ray: ray, restLength: restLength, mask: mask}
}

// Probe casts from restLength above the world anchor along -up for
// 2*restLength and returns the [0, restLength]-clamped distance from the
// anchor to the hit, or (restLength, false) when nothing is in range
func (g GroundProbe) Probe(worldAnchor, up vmath.Vec3) (float64, bool) {
	origin := vmath.V3Add(worldAnchor, vmath.V3Scale(up, g.restLength))
	hit, ok := g.ray.Cast(origin, vmath.V3Neg(up), 2*g.restLength, g.mask)
	if !ok {
		return g.restLength, false
	}
	return vmath.Clamp(hit.Distance-g.restLength, 0, g.restLength), true
}
