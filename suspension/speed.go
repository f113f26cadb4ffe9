package suspension

import (
	"github.com/lixenwraith/tracksim/vmath"
)

// EstimateTrackSpeed averages the forward-axis point velocity over grounded
// points to produce the visual belt speed. Pure function of current body
// state, returns 0 when nothing is grounded
func EstimateTrackSpeed(body Body, forward vmath.Vec3, anchors []vmath.Vec3, states []PointState) float64 {
	sum := 0.0
	grounded := 0
	for i := range states {
		if !states[i].Grounded {
			continue
		}
		sum += vmath.V3Dot(PointVelocity(body, anchors[i]), forward)
		grounded++
	}
	if grounded == 0 {
		return 0
	}
	return sum / float64(grounded)
}
