package component

// Camera maps world units to screen pixels. X and Y are the world point shown
// at the center of the screen; Zoom is pixels per world unit.
type Camera struct {
	X       float64
	Y       float64
	Zoom    float64
	ScreenW int
	ScreenH int
}

// ScreenToWorld converts a window position to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return c.X + (sx-float64(c.ScreenW)/2)/zoom, c.Y + (sy-float64(c.ScreenH)/2)/zoom
}

// WorldToScreen is the inverse of ScreenToWorld.
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return (wx-c.X)*zoom + float64(c.ScreenW)/2, (wy-c.Y)*zoom + float64(c.ScreenH)/2
}

var CameraComponent = NewComponent[Camera]()
