package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	charts "github.com/NT-Technologies/NTComponents.Charts-sub001"
)

// maxPointers is the number of pointer slots: slot 0 is the mouse, 1-9 are
// touches.
const maxPointers = 10

// touchPoint is one active touch in device pixels.
type touchPoint struct {
	id   ebiten.TouchID
	x, y float64
}

// rawInput is the device state sampled once per tick.
type rawInput struct {
	cursorX, cursorY float64
	buttons          [3]bool // left, right, middle
	wheelX, wheelY   float64
	mods             charts.KeyModifiers
	touches          []touchPoint
}

// readRaw samples ebiten's input state.
func readRaw(buf []touchPoint) rawInput {
	mx, my := ebiten.CursorPosition()
	wx, wy := ebiten.Wheel()
	raw := rawInput{
		cursorX: float64(mx),
		cursorY: float64(my),
		buttons: [3]bool{
			ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
			ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
			ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
		},
		wheelX:  wx,
		wheelY:  wy,
		mods:    readModifiers(),
		touches: buf[:0],
	}
	for _, id := range ebiten.AppendTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		raw.touches = append(raw.touches, touchPoint{id: id, x: float64(tx), y: float64(ty)})
	}
	return raw
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() charts.KeyModifiers {
	var mods charts.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= charts.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= charts.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= charts.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= charts.ModMeta
	}
	return mods
}

type slotState struct {
	down   bool
	button charts.MouseButton
	x, y   float64
}

// poller turns sampled device state into chart events. Ebiten reports
// state, the chart wants transitions.
type poller struct {
	slots     [maxPointers]slotState
	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool
	inside    bool
	touchBuf  []touchPoint
}

// process emits the events implied by raw. Device coordinates are divided
// by scale; size is the logical surface size.
func (p *poller) process(raw rawInput, scale float64, size charts.Size, emit func(charts.Event)) {
	if scale <= 0 {
		scale = 1
	}
	p.processMouse(raw, scale, size, emit)
	p.processTouches(raw, scale, raw.mods, emit)
}

func (p *poller) processMouse(raw rawInput, scale float64, size charts.Size, emit func(charts.Event)) {
	x, y := raw.cursorX/scale, raw.cursorY/scale
	ps := &p.slots[0]
	pressed := raw.buttons[0] || raw.buttons[1] || raw.buttons[2]
	inside := x >= 0 && y >= 0 && x < size.Width && y < size.Height

	ev := charts.Event{X: x, Y: y, Modifiers: raw.mods}
	switch {
	case pressed && !ps.down:
		if !inside {
			break
		}
		ps.down = true
		ps.button = charts.MouseButtonLeft
		if !raw.buttons[0] {
			if raw.buttons[1] {
				ps.button = charts.MouseButtonRight
			} else {
				ps.button = charts.MouseButtonMiddle
			}
		}
		ev.Kind, ev.Button = charts.EventPointerDown, ps.button
		emit(ev)
	case !pressed && ps.down:
		ps.down = false
		ev.Kind, ev.Button = charts.EventPointerUp, ps.button
		emit(ev)
	}

	if x != ps.x || y != ps.y {
		ps.x, ps.y = x, y
		switch {
		case inside || ps.down:
			ev.Kind, ev.Button = charts.EventPointerMove, ps.button
			emit(ev)
		case p.inside:
			ev.Kind = charts.EventPointerLeave
			emit(ev)
		}
	}
	p.inside = inside

	if inside && (raw.wheelX != 0 || raw.wheelY != 0) {
		emit(charts.Event{Kind: charts.EventWheel, X: x, Y: y, DX: raw.wheelX, DY: raw.wheelY, Modifiers: raw.mods})
	}
}

// processTouches maps touches to pointer slots 1-9.
func (p *poller) processTouches(raw rawInput, scale float64, mods charts.KeyModifiers, emit func(charts.Event)) {
	var active [maxPointers]bool
	for _, t := range raw.touches {
		slot := p.touchSlot(t.id)
		if slot < 0 {
			continue
		}
		active[slot] = true
		ps := &p.slots[slot]
		x, y := t.x/scale, t.y/scale
		ev := charts.Event{X: x, Y: y, PointerID: slot, Modifiers: mods}
		switch {
		case !ps.down:
			ps.down = true
			ev.Kind = charts.EventPointerDown
			emit(ev)
		case x != ps.x || y != ps.y:
			ev.Kind = charts.EventPointerMove
			emit(ev)
		}
		ps.x, ps.y = x, y
	}

	for i := 1; i < maxPointers; i++ {
		if p.touchUsed[i] && !active[i] {
			ps := &p.slots[i]
			if ps.down {
				emit(charts.Event{Kind: charts.EventPointerUp, X: ps.x, Y: ps.y, PointerID: i, Modifiers: mods})
			}
			*ps = slotState{}
			p.touchUsed[i] = false
			p.touchMap[i] = 0
		}
	}
}

// touchSlot returns the slot of tid, allocating one if needed. It returns
// -1 when every slot is taken.
func (p *poller) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if p.touchUsed[i] && p.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !p.touchUsed[i] {
			p.touchUsed[i] = true
			p.touchMap[i] = tid
			return i
		}
	}
	return -1
}
