package viz

import (
	"math"

	"github.com/san-kum/unitrack/internal/rover"
)

// Viewport maps world coordinates onto the canvas sub-pixel grid. The
// mapping preserves aspect ratio, keeps world y pointing up, and centers
// the fitted region on the canvas.
type Viewport struct {
	minX, minY float64
	scale      float64
	pw, ph     int
	offX, offY float64
}

// FitViewport sizes a viewport so the given poses fill the canvas with a
// fractional margin around them. With no poses it falls back to a unit
// box around the origin.
func FitViewport(c *Canvas, poses []rover.Pose, margin float64) *Viewport {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range poses {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	if len(poses) == 0 {
		minX, maxX = -1, 1
		minY, maxY = -1, 1
	}

	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	minX -= spanX * margin
	maxX += spanX * margin
	minY -= spanY * margin
	maxY += spanY * margin
	spanX = maxX - minX
	spanY = maxY - minY

	pw := c.Width * 2
	ph := c.Height * 4
	scale := math.Min(float64(pw-1)/spanX, float64(ph-1)/spanY)

	return &Viewport{
		minX:  minX,
		minY:  minY,
		scale: scale,
		pw:    pw,
		ph:    ph,
		offX:  (float64(pw-1) - spanX*scale) / 2,
		offY:  (float64(ph-1) - spanY*scale) / 2,
	}
}

// Project maps a world point to sub-pixel canvas coordinates.
func (v *Viewport) Project(x, y float64) (int, int) {
	px := int((x-v.minX)*v.scale + v.offX)
	py := v.ph - 1 - int((y-v.minY)*v.scale+v.offY)
	return px, py
}

// DrawPath draws the polyline through the poses.
func (v *Viewport) DrawPath(c *Canvas, poses []rover.Pose) {
	if len(poses) == 1 {
		x, y := v.Project(poses[0].X, poses[0].Y)
		c.Set(x, y)
		return
	}
	for i := 1; i < len(poses); i++ {
		x0, y0 := v.Project(poses[i-1].X, poses[i-1].Y)
		x1, y1 := v.Project(poses[i].X, poses[i].Y)
		c.DrawLine(x0, y0, x1, y1)
	}
}

// DrawRobot marks a pose with a blob and a short heading tick.
func (v *Viewport) DrawRobot(c *Canvas, p rover.Pose) {
	x, y := v.Project(p.X, p.Y)
	c.DrawMarker(x, y, 1)

	const tick = 6.0
	hx := x + int(tick*math.Cos(p.Theta))
	hy := y - int(tick*math.Sin(p.Theta))
	c.DrawLine(x, y, hx, hy)
}
