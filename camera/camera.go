// Package camera maps between window pixels and board coordinates for the
// windowed viewer.
package camera

// Camera controls the viewport onto the hex board.
// Unlike a wrapping world, the board has edges: the center is clamped so
// the view never drifts entirely off the board.
type Camera struct {
	// Position is the camera center in board coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Board dimensions
	BoardW, BoardH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the board at 1:1 zoom.
func New(viewportW, viewportH, boardW, boardH float32) *Camera {
	return &Camera{
		X:         boardW / 2,
		Y:         boardH / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		BoardW:    boardW,
		BoardH:    boardH,
		MinZoom:   0.25,
		MaxZoom:   4.0,
	}
}

// Fit returns a camera zoomed so the whole board, plus margin pixels on
// each side, fits the viewport.
func Fit(viewportW, viewportH, boardW, boardH, margin float32) *Camera {
	c := New(viewportW, viewportH, boardW, boardH)
	zx := (viewportW - 2*margin) / boardW
	zy := (viewportH - 2*margin) / boardH
	z := zx
	if zy < z {
		z = zy
	}
	if z > 0 {
		c.SetZoom(z)
	}
	return c
}

// WorldToScreen converts board coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to board coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels, keeping the
// center on the board.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.Zoom, 0, c.BoardW)
	c.Y = clamp(c.Y+dy/c.Zoom, 0, c.BoardH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt changes zoom by factor while keeping the board point under the
// screen position (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	nx, ny := c.ScreenToWorld(sx, sy)
	c.X = clamp(c.X+wx-nx, 0, c.BoardW)
	c.Y = clamp(c.Y+wy-ny, 0, c.BoardH)
}

// Reset returns the camera to the board center at 1:1 zoom.
func (c *Camera) Reset() {
	c.X = c.BoardW / 2
	c.Y = c.BoardH / 2
	c.Zoom = 1.0
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
