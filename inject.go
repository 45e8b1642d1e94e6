package charts

// InjectPress dispatches a left-button press at the given surface
// coordinates as pointer 0.
func (c *Chart) InjectPress(x, y float64) {
	c.Dispatch(Event{Kind: EventPointerDown, X: x, Y: y, Button: MouseButtonLeft})
}

// InjectMove dispatches a pointer move for pointer 0. Between InjectPress
// and InjectRelease it drags; otherwise it hovers.
func (c *Chart) InjectMove(x, y float64) {
	c.Dispatch(Event{Kind: EventPointerMove, X: x, Y: y, Button: MouseButtonLeft})
}

// InjectRelease dispatches a left-button release for pointer 0.
func (c *Chart) InjectRelease(x, y float64) {
	c.Dispatch(Event{Kind: EventPointerUp, X: x, Y: y, Button: MouseButtonLeft})
}

// InjectClick is a convenience that dispatches a press followed by a
// release at the same coordinates.
func (c *Chart) InjectClick(x, y float64) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectDrag dispatches a full drag sequence: press at (fromX, fromY),
// steps-1 linearly interpolated moves, a final move to (toX, toY) and the
// release there. steps below 1 is treated as 1.
func (c *Chart) InjectDrag(fromX, fromY, toX, toY float64, steps int) {
	if steps < 1 {
		steps = 1
	}
	c.InjectPress(fromX, fromY)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY)
}

// InjectWheel dispatches a wheel event at (x, y). Positive dy zooms in.
func (c *Chart) InjectWheel(x, y, dy float64, mods KeyModifiers) {
	c.Dispatch(Event{Kind: EventWheel, X: x, Y: y, DY: dy, Modifiers: mods})
}
