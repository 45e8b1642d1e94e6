package charts

import (
	"testing"
)

func plotCenter(s Series) (float64, float64) {
	c := s.PlotRect().Center()
	return c.X, c.Y
}

func TestDragPansAxes(t *testing.T) {
	c, s, x, y := lineChart(t)
	var views []ViewContext
	c.OnViewChange(func(ctx ViewContext) { views = append(views, ctx) })
	clicks := 0
	c.OnClick(func(PointerContext) { clicks++ })

	cx, cy := plotCenter(s)
	lo, _ := x.Scale().Window()
	c.InjectDrag(cx, cy, cx+40, cy, 4)

	v := x.View()
	if !v.Anchored {
		t.Fatal("X view not anchored after drag")
	}
	if v.Offset >= lo {
		t.Errorf("Offset = %v, want below %v after dragging right", v.Offset, lo)
	}
	if y.View().Anchored {
		t.Error("Y view changed on a horizontal drag")
	}
	if clicks != 0 {
		t.Errorf("clicks = %d, want 0 after a drag", clicks)
	}
	if len(views) == 0 || views[0].Axis != x {
		t.Errorf("view callbacks = %v, want X changes", views)
	}
}

func TestDragMovesContentWithPointer(t *testing.T) {
	c, s, x, _ := lineChart(t)
	cx, cy := plotCenter(s)
	// Zoom in first so the pan stays inside the bounds.
	c.InjectWheel(cx, cy, 5, ModShift)
	// Start past the dead zone so every move pans.
	c.InjectPress(cx, cy)
	c.InjectMove(cx+10, cy)
	v := x.Scale().PixelToValue(cx + 10)
	c.InjectMove(cx+30, cy)
	c.InjectRelease(cx+30, cy)
	c.RenderFrame(testSize)
	if got := x.Scale().ValueToPixel(v); !approxEqual(got, cx+30, 1e-6) {
		t.Errorf("value under the pointer moved to %v, want %v", got, cx+30)
	}
}

func TestDragDeadZoneClicks(t *testing.T) {
	c, s, x, _ := lineChart(t)
	var got []PointerContext
	c.OnClick(func(ctx PointerContext) { got = append(got, ctx) })
	cx, cy := plotCenter(s)
	c.InjectDrag(cx, cy, cx+2, cy+1, 3)
	if x.View().Anchored {
		t.Error("movement inside the dead zone panned")
	}
	if len(got) != 1 {
		t.Fatalf("clicks = %d, want 1", len(got))
	}
	if got[0].X != cx+2 || got[0].Button != MouseButtonLeft {
		t.Errorf("click = %+v, want release position and left button", got[0])
	}
}

func TestInteractionMaskBlocksPan(t *testing.T) {
	c, s, x, y := lineChart(t, WithInteraction(Hover|ZoomX|ZoomY))
	cx, cy := plotCenter(s)
	c.InjectDrag(cx, cy, cx+60, cy+60, 4)
	if x.View().Anchored || y.View().Anchored {
		t.Error("drag panned with PanX and PanY disabled")
	}
}

func TestWheelZoomsBothAxes(t *testing.T) {
	c, s, x, y := lineChart(t)
	cx, cy := plotCenter(s)
	c.InjectWheel(cx, cy, 1, 0)
	if !approxEqual(x.View().Zoom, defaultWheelStep, 1e-9) {
		t.Errorf("X zoom = %v, want %v", x.View().Zoom, defaultWheelStep)
	}
	if !approxEqual(y.View().Zoom, defaultWheelStep, 1e-9) {
		t.Errorf("Y zoom = %v, want %v", y.View().Zoom, defaultWheelStep)
	}
}

func TestWheelModifiersRestrictAxis(t *testing.T) {
	tests := []struct {
		name  string
		mods  KeyModifiers
		wantX bool
		wantY bool
	}{
		{"shift zooms X only", ModShift, true, false},
		{"alt zooms Y only", ModAlt, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, s, x, y := lineChart(t)
			cx, cy := plotCenter(s)
			c.InjectWheel(cx, cy, 2, tt.mods)
			if x.View().Anchored != tt.wantX {
				t.Errorf("X anchored = %v, want %v", x.View().Anchored, tt.wantX)
			}
			if y.View().Anchored != tt.wantY {
				t.Errorf("Y anchored = %v, want %v", y.View().Anchored, tt.wantY)
			}
		})
	}
}

func TestWheelOutsidePlotIgnored(t *testing.T) {
	c, s, x, _ := lineChart(t)
	plot := s.PlotRect()
	c.InjectWheel(plot.X-2, plot.Y+plot.Height+2, 1, 0)
	if x.View().Anchored {
		t.Error("wheel outside every plot zoomed")
	}
}

func TestPinchEventZooms(t *testing.T) {
	c, s, x, _ := lineChart(t)
	cx, cy := plotCenter(s)
	c.Dispatch(Event{Kind: EventPinch, X: cx, Y: cy, Scale: 2})
	if !approxEqual(x.View().Zoom, 2, 1e-9) {
		t.Errorf("zoom = %v, want 2", x.View().Zoom)
	}
}

func TestTwoPointerPinchZooms(t *testing.T) {
	c, s, x, _ := lineChart(t)
	cx, cy := plotCenter(s)
	c.Dispatch(Event{Kind: EventPointerDown, X: cx - 20, Y: cy, PointerID: 1})
	c.Dispatch(Event{Kind: EventPointerDown, X: cx + 20, Y: cy, PointerID: 2})
	c.Dispatch(Event{Kind: EventPointerMove, X: cx + 60, Y: cy, PointerID: 2})
	if !approxEqual(x.View().Zoom, 2, 1e-9) {
		t.Errorf("zoom = %v, want 2", x.View().Zoom)
	}
	c.Dispatch(Event{Kind: EventPointerUp, X: cx + 60, Y: cy, PointerID: 2})
	c.Dispatch(Event{Kind: EventPointerUp, X: cx - 20, Y: cy, PointerID: 1})
	if c.input.pinch.active {
		t.Error("pinch still active after release")
	}
}

func TestHoverTracksNearestPoint(t *testing.T) {
	c, _, x, y := lineChart(t)
	var events []PointerContext
	c.OnHover(func(ctx PointerContext) { events = append(events, ctx) })

	px, py := x.Scale().ValueToPixel(3), y.Scale().ValueToPixel(9)
	c.InjectMove(px+1, py)
	c.InjectMove(px, py+1)
	h, ok := c.HoverTarget()
	if !ok || h.Index != 3 {
		t.Fatalf("hover = %+v, %v, want index 3", h, ok)
	}
	if len(events) != 1 || !events[0].HasHit {
		t.Errorf("hover events = %d, want 1 with a hit", len(events))
	}

	c.Dispatch(Event{Kind: EventPointerLeave})
	if _, ok := c.HoverTarget(); ok {
		t.Error("hover kept after pointer leave")
	}
	if len(events) != 2 || events[1].HasHit {
		t.Errorf("hover events = %+v, want a clearing event", events)
	}
}

func TestHoverDisabled(t *testing.T) {
	c, _, x, y := lineChart(t, WithInteraction(PanX|PanY))
	c.InjectMove(x.Scale().ValueToPixel(3), y.Scale().ValueToPixel(9))
	if _, ok := c.HoverTarget(); ok {
		t.Error("hover set with Hover disabled")
	}
}

func TestCallbackRemove(t *testing.T) {
	c, s, _, _ := lineChart(t)
	n := 0
	h := c.OnClick(func(PointerContext) { n++ })
	cx, cy := plotCenter(s)
	c.InjectClick(cx, cy)
	h.Remove()
	c.InjectClick(cx, cy)
	if n != 1 {
		t.Errorf("clicks = %d, want 1", n)
	}
	CallbackHandle{}.Remove() // zero handle is a no-op
}

func TestCallbackMayUseChart(t *testing.T) {
	c, s, x, _ := lineChart(t)
	c.OnViewChange(func(ViewContext) {
		_ = c.Snapshot()
	})
	c.OnClick(func(PointerContext) {
		c.ResetView(0)
	})
	cx, cy := plotCenter(s)
	c.InjectWheel(cx, cy, 3, 0)
	c.InjectClick(cx, cy)
	if x.View().Anchored {
		t.Error("ResetView from a callback did not apply")
	}
}

func TestResetViewAnimates(t *testing.T) {
	c, s, x, _ := lineChart(t)
	cx, cy := plotCenter(s)
	c.InjectWheel(cx, cy, 5, 0)
	c.ResetView(0.5)
	if !x.Animating() {
		t.Fatal("X is not animating")
	}
	if !c.Advance(0.25) {
		t.Error("Advance reported done halfway")
	}
	if z := x.View().Zoom; z <= 1 || z >= 1.7 {
		t.Errorf("halfway zoom = %v, want between 1 and the start", z)
	}
	if c.Advance(0.5) {
		t.Error("Advance reported still animating")
	}
	if x.View() != IdentityView() {
		t.Errorf("view = %+v, want identity", x.View())
	}
}

func TestUnregisterReleasesCapture(t *testing.T) {
	c, s, x, _ := lineChart(t)
	cx, cy := plotCenter(s)
	c.InjectPress(cx, cy)
	c.Unregister(s)
	c.InjectMove(cx+50, cy)
	c.InjectRelease(cx+50, cy)
	if x.View().Anchored {
		t.Error("drag panned an unregistered series")
	}
}
