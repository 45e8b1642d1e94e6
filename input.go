package charts

import (
	"math"
	"slices"
)

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	target   Series // captured at press time until release
	dragging bool
	button   MouseButton
}

// --- Pinch state ---

type pinchState struct {
	active   bool
	pointer0 int
	pointer1 int
	prevDist float64
}

type inputState struct {
	pointers map[int]*pointerState
	pinch    pinchState
}

func newInputState() inputState {
	return inputState{pointers: make(map[int]*pointerState)}
}

func (in *inputState) pointer(id int) *pointerState {
	ps, ok := in.pointers[id]
	if !ok {
		ps = &pointerState{}
		in.pointers[id] = ps
	}
	return ps
}

// release drops s as the capture target of every pointer.
func (in *inputState) release(s Series) {
	for _, ps := range in.pointers {
		if ps.target == s {
			ps.target = nil
			ps.dragging = false
		}
	}
}

// --- Callback contexts ---

// PointerContext carries a hover or click notification. Hit is only valid
// when HasHit is true; a hover callback with HasHit false means the hover
// target was cleared.
type PointerContext struct {
	X, Y      float64
	Hit       Hit
	HasHit    bool
	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers
}

// ViewContext carries the new view of an axis after a pan, zoom, reset or
// restore.
type ViewContext struct {
	Axis *Axis
	View ViewState
}

// --- Handler registry ---

type handler[T any] struct {
	id uint32
	fn func(T)
}

type callbackKind uint8

const (
	callbackHover callbackKind = iota
	callbackClick
	callbackView
)

type handlerRegistry struct {
	hover  []handler[PointerContext]
	click  []handler[PointerContext]
	view   []handler[ViewContext]
	nextID uint32
}

func removeHandler[T any](s []handler[T], id uint32) []handler[T] {
	return slices.DeleteFunc(s, func(h handler[T]) bool { return h.id == id })
}

// CallbackHandle allows removing a registered chart callback.
type CallbackHandle struct {
	id    uint32
	chart *Chart
	kind  callbackKind
}

// Remove unregisters the callback so it no longer fires. Callbacks run
// after the chart lock is released, so Remove may be called from inside one.
func (h CallbackHandle) Remove() {
	c := h.chart
	if c == nil {
		return
	}
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	switch h.kind {
	case callbackHover:
		c.handlers.hover = removeHandler(c.handlers.hover, h.id)
	case callbackClick:
		c.handlers.click = removeHandler(c.handlers.click, h.id)
	case callbackView:
		c.handlers.view = removeHandler(c.handlers.view, h.id)
	}
}

func (c *Chart) nextHandlerID() uint32 {
	c.handlers.nextID++
	return c.handlers.nextID
}

// OnHover registers a callback fired when the hover target changes.
func (c *Chart) OnHover(fn func(PointerContext)) CallbackHandle {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	id := c.nextHandlerID()
	c.handlers.hover = append(c.handlers.hover, handler[PointerContext]{id: id, fn: fn})
	return CallbackHandle{id: id, chart: c, kind: callbackHover}
}

// OnClick registers a callback fired when a pointer is released without
// dragging. The context carries the nearest data point, if any.
func (c *Chart) OnClick(fn func(PointerContext)) CallbackHandle {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	id := c.nextHandlerID()
	c.handlers.click = append(c.handlers.click, handler[PointerContext]{id: id, fn: fn})
	return CallbackHandle{id: id, chart: c, kind: callbackClick}
}

// OnViewChange registers a callback fired once per axis whose view changed.
func (c *Chart) OnViewChange(fn func(ViewContext)) CallbackHandle {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	id := c.nextHandlerID()
	c.handlers.view = append(c.handlers.view, handler[ViewContext]{id: id, fn: fn})
	return CallbackHandle{id: id, chart: c, kind: callbackView}
}

// fire queues ctx for every handler in hs. Queued callbacks run after the
// chart lock is released.
func fire[T any](c *Chart, hs []handler[T], ctx T) {
	if len(hs) == 0 {
		return
	}
	hs = slices.Clone(hs)
	c.pending = append(c.pending, func() {
		for _, h := range hs {
			h.fn(ctx)
		}
	})
}

func (c *Chart) fireView(a *Axis) {
	fire(c, c.handlers.view, ViewContext{Axis: a, View: a.View()})
}

// --- Input processing ---

// handle runs the pointer state machine for one event. Callers hold stateMu.
func (c *Chart) handle(ev Event) {
	switch ev.Kind {
	case EventPointerDown:
		c.pointerDown(ev)
	case EventPointerMove:
		c.pointerMove(ev)
	case EventPointerUp:
		c.pointerUp(ev)
	case EventPointerLeave:
		c.setHover(ev, Hit{}, false)
	case EventWheel:
		if s := c.seriesAt(ev.X, ev.Y); s != nil && ev.DY != 0 {
			c.zoom(s, math.Pow(c.opts.wheelStep, ev.DY), ev.X, ev.Y, ev.Modifiers)
		}
	case EventPinch:
		if s := c.seriesAt(ev.X, ev.Y); s != nil && ev.Scale > 0 {
			c.zoom(s, ev.Scale, ev.X, ev.Y, 0)
		}
	}
}

func (c *Chart) pointerDown(ev Event) {
	ps := c.input.pointer(ev.PointerID)
	if ps.down {
		return
	}
	*ps = pointerState{
		down:   true,
		startX: ev.X,
		startY: ev.Y,
		lastX:  ev.X,
		lastY:  ev.Y,
		target: c.seriesAt(ev.X, ev.Y),
		button: ev.Button,
	}
	c.detectPinch()
}

func (c *Chart) pointerMove(ev Event) {
	ps := c.input.pointer(ev.PointerID)
	if !ps.down {
		ps.lastX, ps.lastY = ev.X, ev.Y
		if c.opts.interaction&Hover != 0 {
			h, ok := c.hitTestLocked(ev.X, ev.Y)
			c.setHover(ev, h, ok)
		}
		return
	}
	if ev.X == ps.lastX && ev.Y == ps.lastY {
		return
	}
	pinch := &c.input.pinch
	if pinch.active && (ev.PointerID == pinch.pointer0 || ev.PointerID == pinch.pointer1) {
		ps.lastX, ps.lastY = ev.X, ev.Y
		c.pinchMove()
		return
	}
	if !ps.dragging {
		dx := ev.X - ps.startX
		dy := ev.Y - ps.startY
		if math.Sqrt(dx*dx+dy*dy) > c.opts.dragDeadZone {
			ps.dragging = true
		}
	}
	if ps.dragging && ps.target != nil {
		c.pan(ps.target, ev.X-ps.lastX, ev.Y-ps.lastY)
	}
	ps.lastX, ps.lastY = ev.X, ev.Y
}

func (c *Chart) pointerUp(ev Event) {
	ps, ok := c.input.pointers[ev.PointerID]
	if !ok || !ps.down {
		return
	}
	pinch := &c.input.pinch
	inPinch := pinch.active && (ev.PointerID == pinch.pointer0 || ev.PointerID == pinch.pointer1)
	if inPinch {
		pinch.active = false
	} else if !ps.dragging {
		h, hit := c.hitTestLocked(ev.X, ev.Y)
		fire(c, c.handlers.click, PointerContext{
			X: ev.X, Y: ev.Y, Hit: h, HasHit: hit,
			Button: ps.button, PointerID: ev.PointerID, Modifiers: ev.Modifiers,
		})
	}
	delete(c.input.pointers, ev.PointerID)
}

// setHover replaces the hover target and fires OnHover when it changed.
func (c *Chart) setHover(ev Event, h Hit, ok bool) {
	prev := c.hover
	switch {
	case !ok && prev == nil:
		return
	case ok && prev != nil && prev.Series == h.Series && prev.Index == h.Index:
		*c.hover = h
		return
	}
	if ok {
		c.hover = &h
	} else {
		c.hover = nil
	}
	fire(c, c.handlers.hover, PointerContext{
		X: ev.X, Y: ev.Y, Hit: h, HasHit: ok,
		Button: ev.Button, PointerID: ev.PointerID, Modifiers: ev.Modifiers,
	})
}

// pan moves the axes of s by a pointer delta. Horizontal axes follow dx and
// vertical axes follow dy, each gated by the chart interaction mask.
func (c *Chart) pan(s Series, dx, dy float64) {
	for _, a := range s.Axes() {
		var changed bool
		if a.Side.Horizontal() {
			changed = c.opts.interaction&PanX != 0 && s.ApplyPan(a, dx)
		} else {
			changed = c.opts.interaction&PanY != 0 && s.ApplyPan(a, dy)
		}
		if changed {
			c.fireView(a)
		}
	}
}

// zoom scales the axes of s around (x, y). ModShift restricts a wheel zoom
// to horizontal axes and ModAlt to vertical axes.
func (c *Chart) zoom(s Series, factor, x, y float64, mods KeyModifiers) {
	for _, a := range s.Axes() {
		var changed bool
		if a.Side.Horizontal() {
			changed = c.opts.interaction&ZoomX != 0 && mods&ModAlt == 0 && s.ApplyZoom(a, factor, x)
		} else {
			changed = c.opts.interaction&ZoomY != 0 && mods&ModShift == 0 && s.ApplyZoom(a, factor, y)
		}
		if changed {
			c.fireView(a)
		}
	}
}

// --- Pinch detection ---

// detectPinch starts a pinch when exactly two pointers are down.
func (c *Chart) detectPinch() {
	var ids []int
	for id, ps := range c.input.pointers {
		if ps.down {
			ids = append(ids, id)
		}
	}
	pinch := &c.input.pinch
	if len(ids) != 2 {
		pinch.active = false
		return
	}
	slices.Sort(ids)
	p0, p1 := c.input.pointers[ids[0]], c.input.pointers[ids[1]]
	*pinch = pinchState{
		active:   true,
		pointer0: ids[0],
		pointer1: ids[1],
		prevDist: math.Hypot(p1.lastX-p0.lastX, p1.lastY-p0.lastY),
	}
	// Suppress drag for the two pinch pointers.
	p0.dragging = false
	p1.dragging = false
}

// pinchMove zooms around the pinch centre by the change in finger distance.
func (c *Chart) pinchMove() {
	pinch := &c.input.pinch
	p0, p1 := c.input.pointers[pinch.pointer0], c.input.pointers[pinch.pointer1]
	if p0 == nil || p1 == nil {
		pinch.active = false
		return
	}
	cx, cy := (p0.lastX+p1.lastX)/2, (p0.lastY+p1.lastY)/2
	d := math.Hypot(p1.lastX-p0.lastX, p1.lastY-p0.lastY)
	if pinch.prevDist > 0 && d > 0 {
		target := p0.target
		if target == nil {
			target = c.seriesAt(cx, cy)
		}
		if target != nil {
			c.zoom(target, d/pinch.prevDist, cx, cy, 0)
		}
	}
	pinch.prevDist = d
}

// --- View control ---

// ResetView animates every axis back to its whole domain over duration
// seconds. Zero resets immediately.
func (c *Chart) ResetView(duration float32) {
	c.stateMu.Lock()
	for _, a := range c.axesLocked() {
		anchored := a.View().Anchored
		a.ResetView(duration, nil)
		if anchored && !a.Animating() {
			c.fireView(a)
		}
	}
	fns := c.takePending()
	c.stateMu.Unlock()
	run(fns)
}

// Advance steps running view animations by dt seconds and reports whether
// any axis is still animating.
func (c *Chart) Advance(dt float32) bool {
	c.stateMu.Lock()
	animating := false
	for _, a := range c.axesLocked() {
		if a.advance(dt) {
			c.fireView(a)
		}
		animating = animating || a.Animating()
	}
	fns := c.takePending()
	c.stateMu.Unlock()
	run(fns)
	return animating
}
