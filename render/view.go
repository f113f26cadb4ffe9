package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tracksim/dynamics"
	"github.com/lixenwraith/tracksim/suspension"
	"github.com/lixenwraith/tracksim/terrain"
)

// View draws a side elevation of the vehicle over the terrain profile.
// It reads rig and body state through read-only accessors and never
// mutates physics
type View struct {
	screen tcell.Screen
	body   *dynamics.Body
	rig    *suspension.Rig
	ground *terrain.Heightfield

	// world-to-screen scale, characters per meter
	scaleX float64
	scaleY float64
}

var (
	styleGround = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHull   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleWheel  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleAir    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorAqua)
)

// spinGlyphs visualize wheel rotation; one glyph per quarter turn
var spinGlyphs = []rune{'|', '/', '-', '\\'}

// NewView builds a renderer over an initialized screen
func NewView(screen tcell.Screen, body *dynamics.Body, rig *suspension.Rig, ground *terrain.Heightfield) *View {
	return &View{
		screen: screen,
		body:   body,
		rig:    rig,
		ground: ground,
		scaleX: 4,
		scaleY: 2,
	}
}

// Draw renders one frame: terrain profile, hull, wheel stations, rollers,
// and the HUD line
func (v *View) Draw(paused bool) {
	v.screen.Clear()
	w, h := v.screen.Size()
	if w < 10 || h < 6 {
		v.screen.Show()
		return
	}

	pos := v.body.Position()
	// Camera: vehicle fixed at 1/3 width, vertically centered on the hull
	camZ := pos.Z - float64(w)/(3*v.scaleX)
	camY := pos.Y + float64(h)/(2*v.scaleY)

	toCol := func(z float64) int { return int((z - camZ) * v.scaleX) }
	toRow := func(y float64) int { return int((camY - y) * v.scaleY) }

	// Terrain profile with fill below the surface
	for col := 0; col < w; col++ {
		z := camZ + float64(col)/v.scaleX
		gy := v.ground.HeightAt(pos.X, z)
		top := toRow(gy)
		for row := top; row < h-1; row++ {
			ch := '░'
			if row == top {
				ch = '▔'
			}
			if row >= 0 {
				v.screen.SetContent(col, row, ch, nil, styleGround)
			}
		}
	}

	// Hull outline from the body's box footprint in side view
	v.drawHull(toCol, toRow)

	// Wheel stations: physics anchor dropped by stored strut length,
	// lifted by the smoothed visual offset
	tun := v.rig.Tunables()
	points := v.rig.Points()
	states := v.rig.States()
	anchors := v.rig.Anchors()
	visuals := v.rig.WheelVisuals()
	for i := range points {
		wheelY := anchors[i].Y - states[i].CompressedLength + points[i].WheelRadius
		if !points[i].Static {
			wheelY = anchors[i].Y - tun.RestLength + visuals[i].Lift + points[i].WheelRadius
		}
		col := toCol(anchors[i].Z)
		row := toRow(wheelY)
		if col < 0 || col >= w || row < 0 || row >= h {
			continue
		}
		style := styleWheel
		if !states[i].Grounded {
			style = styleAir
		}
		glyph := spinGlyphs[spinIndex(visuals[i].SpinAngle)]
		if points[i].Static {
			glyph = '◉'
		}
		v.screen.SetContent(col, row, glyph, nil, style)
	}

	// Return rollers ride along the hull top run
	rollers := v.rig.Rollers()
	rollerVisuals := v.rig.RollerVisuals()
	for i := range rollers {
		p := v.body.TransformPoint(rollers[i].Offset)
		col := toCol(p.Z)
		row := toRow(p.Y)
		if col < 0 || col >= w || row < 0 || row >= h {
			continue
		}
		v.screen.SetContent(col, row, spinGlyphs[spinIndex(rollerVisuals[i].SpinAngle)], nil, styleWheel)
	}

	v.drawHUD(w, h, paused)
	v.screen.Show()
}

// drawHull draws the hull side profile between front and rear stations
func (v *View) drawHull(toCol func(float64) int, toRow func(float64) int) {
	w, h := v.screen.Size()
	pos := v.body.Position()

	var minZ, maxZ = math.Inf(1), math.Inf(-1)
	var topY float64
	for _, p := range v.rig.Points() {
		world := v.body.TransformPoint(p.Anchor)
		minZ = math.Min(minZ, world.Z)
		maxZ = math.Max(maxZ, world.Z)
		topY = math.Max(topY, world.Y)
	}

	top := toRow(pos.Y + 0.5)
	bottom := toRow(topY)
	for col := toCol(minZ); col <= toCol(maxZ); col++ {
		if col < 0 || col >= w {
			continue
		}
		for row := top; row <= bottom; row++ {
			if row < 0 || row >= h {
				continue
			}
			ch := '█'
			if row == top || row == bottom {
				ch = '▓'
			}
			v.screen.SetContent(col, row, ch, nil, styleHull)
		}
	}
}

// drawHUD prints one status line along the bottom
func (v *View) drawHUD(w, h int, paused bool) {
	vel := v.body.LinearVelocity()
	mode := "drive"
	if v.rig.BrakeEngaged() {
		mode = "brake"
	}
	if paused {
		mode = "PAUSED"
	}
	line := fmt.Sprintf(" speed %5.1f m/s  belt %5.1f m/s  grounded %2d/%d  %s  [w] drive [s] brake [space] pause [q] quit ",
		vel.Z, v.rig.EstimateTrackSpeed(), v.rig.GroundedCount(), len(v.rig.Points()), mode)
	for i, ch := range line {
		if i >= w {
			break
		}
		v.screen.SetContent(i, h-1, ch, nil, styleHUD)
	}
}

// spinIndex maps a spin angle to a glyph index (quarter turns)
func spinIndex(angle float64) int {
	quarter := int(math.Floor(angle / (math.Pi / 2)))
	idx := quarter % len(spinGlyphs)
	if idx < 0 {
		idx += len(spinGlyphs)
	}
	return idx
}
