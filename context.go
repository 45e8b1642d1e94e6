package charts

// RenderContext is the per-frame snapshot shared by every renderable. It is
// built at the start of RenderFrame and must not be retained afterwards.
type RenderContext struct {
	// Surface accepts logical pixels and forwards device pixels to the host.
	Surface Surface
	Size    Size
	DPR     float64
	Style   Style
	Area    Rect // surface minus chart margins
	Frame   uint64

	// Hover is the current hover target, if any.
	Hover *Hit

	chart  *Chart
	scales map[*Axis]Scale
	ended  bool

	cur  unitRef
	errs []error
}

type unitRef struct {
	kind  UnitKind
	index int
}

func newRenderContext(c *Chart, surf Surface, size Size, style Style, area Rect, frame uint64) *RenderContext {
	if surf == nil {
		surf = nopSurface{}
	}
	dpr := 1.0
	if d := surf.DeviceScale(); d > 0 {
		dpr = d
	}
	return &RenderContext{
		Surface: &deviceSurface{dst: surf, scale: dpr},
		Size:    size,
		DPR:     dpr,
		Style:   style,
		Area:    area,
		Frame:   frame,
		chart:   c,
		scales:  make(map[*Axis]Scale),
	}
}

// Lend publishes the scale a series computed for axis so the axis and any
// other series sharing it use the identical mapping this frame. Lending an
// axis twice keeps the first scale.
func (rc *RenderContext) Lend(axis *Axis, s Scale) ScaleHandle {
	if _, ok := rc.scales[axis]; !ok {
		rc.scales[axis] = s
	}
	return ScaleHandle{rc: rc, axis: axis, frame: rc.Frame}
}

// Borrow returns the handle for a scale already lent this frame.
func (rc *RenderContext) Borrow(axis *Axis) (ScaleHandle, bool) {
	if _, ok := rc.scales[axis]; !ok {
		return ScaleHandle{}, false
	}
	return ScaleHandle{rc: rc, axis: axis, frame: rc.Frame}, true
}

// Report records a non-fatal error against the renderable being drawn.
func (rc *RenderContext) Report(err error) {
	if err == nil {
		return
	}
	rc.errs = append(rc.errs, &UnitError{Kind: rc.cur.kind, Index: rc.cur.index, Err: err})
}

func (rc *RenderContext) end() {
	rc.ended = true
	rc.scales = nil
}

// ScaleHandle is a non-owning reference to a scale lent for one frame.
type ScaleHandle struct {
	rc    *RenderContext
	axis  *Axis
	frame uint64
}

// Get returns a copy of the lent scale, or ErrScaleExpired once the frame
// that lent it has ended.
func (h ScaleHandle) Get() (Scale, error) {
	if h.rc == nil || h.rc.ended || h.rc.Frame != h.frame {
		return Scale{}, ErrScaleExpired
	}
	s, ok := h.rc.scales[h.axis]
	if !ok {
		return Scale{}, ErrScaleExpired
	}
	return s, nil
}

// Axis returns the axis the handle was lent for.
func (h ScaleHandle) Axis() *Axis {
	return h.axis
}
