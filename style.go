package charts

import (
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Style is a resolved snapshot of theme values used for one frame.
type Style struct {
	Background color.Color
	Foreground color.Color // axis lines, labels
	Grid       color.Color
	Palette    []color.Color

	// Font is used both to measure label margins and to draw text, so the
	// measured layout matches what the surface draws.
	Font font.Face

	TickLength   float64
	LabelGap     float64
	LineWidth    float64
	MarkerRadius float64
}

// DefaultPalette is the series color cycle used when a style has none.
var DefaultPalette = []color.Color{
	color.NRGBA{R: 0x2b, G: 0x7f, B: 0xa8, A: 0xff},
	color.NRGBA{R: 0xa4, G: 0x63, B: 0x3a, A: 0xff},
	color.NRGBA{R: 0x51, G: 0x85, B: 0x4d, A: 0xff},
	color.NRGBA{R: 0x85, G: 0x76, B: 0x25, A: 0xff},
	color.NRGBA{R: 0x72, G: 0x6c, B: 0xae, A: 0xff},
	color.NRGBA{R: 0x97, G: 0x5f, B: 0x91, A: 0xff},
}

// DefaultStyle returns the built-in light theme using basicfont.
func DefaultStyle() Style {
	return Style{
		Background:   color.White,
		Foreground:   color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff},
		Grid:         color.NRGBA{A: 0x30},
		Palette:      DefaultPalette,
		Font:         basicfont.Face7x13,
		TickLength:   5,
		LabelGap:     4,
		LineWidth:    1.5,
		MarkerRadius: 3,
	}
}

// withDefaults fills zero fields from DefaultStyle.
func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.Background == nil {
		s.Background = d.Background
	}
	if s.Foreground == nil {
		s.Foreground = d.Foreground
	}
	if s.Grid == nil {
		s.Grid = d.Grid
	}
	if len(s.Palette) == 0 {
		s.Palette = d.Palette
	}
	if s.Font == nil {
		s.Font = d.Font
	}
	if s.TickLength == 0 {
		s.TickLength = d.TickLength
	}
	if s.LabelGap == 0 {
		s.LabelGap = d.LabelGap
	}
	if s.LineWidth == 0 {
		s.LineWidth = d.LineWidth
	}
	if s.MarkerRadius == 0 {
		s.MarkerRadius = d.MarkerRadius
	}
	return s
}

// Color returns the palette entry for index i, cycling.
func (s Style) Color(i int) color.Color {
	if len(s.Palette) == 0 {
		return DefaultPalette[i%len(DefaultPalette)]
	}
	return s.Palette[i%len(s.Palette)]
}

// TextWidth returns the advance width of str in the style font.
func (s Style) TextWidth(str string) float64 {
	if s.Font == nil || str == "" {
		return 0
	}
	return float64(font.MeasureString(s.Font, str)) / 64
}

// LineHeight returns the line height of the style font.
func (s Style) LineHeight() float64 {
	if s.Font == nil {
		return 0
	}
	return float64(s.Font.Metrics().Height) / 64
}

// StyleSource supplies theme values. Sources may change asynchronously; the
// chart subscribes once at construction and only ever invalidates in
// response.
type StyleSource interface {
	Style() Style
	// Subscribe registers fn to be called after the style changes. The
	// returned function cancels the subscription.
	Subscribe(fn func()) (cancel func())
}

// StaticStyle is a StyleSource whose value only changes through Set.
type StaticStyle struct {
	mu     sync.Mutex
	style  Style
	subs   map[int]func()
	nextID int
}

// NewStaticStyle returns a source holding s.
func NewStaticStyle(s Style) *StaticStyle {
	return &StaticStyle{style: s, subs: make(map[int]func())}
}

// Style returns the current style.
func (ss *StaticStyle) Style() Style {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.style
}

// Set replaces the style and notifies subscribers.
func (ss *StaticStyle) Set(s Style) {
	ss.mu.Lock()
	ss.style = s
	fns := make([]func(), 0, len(ss.subs))
	for _, fn := range ss.subs {
		fns = append(fns, fn)
	}
	ss.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Subscribe implements StyleSource.
func (ss *StaticStyle) Subscribe(fn func()) func() {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if ss.subs == nil {
		ss.subs = make(map[int]func())
	}
	id := ss.nextID
	ss.nextID++
	ss.subs[id] = fn
	return func() {
		ss.mu.Lock()
		delete(ss.subs, id)
		ss.mu.Unlock()
	}
}
