package charts

// Interaction is the chart-level permission bitmask for pointer input.
type Interaction uint8

const (
	PanX  Interaction = 1 << iota // drag pans horizontal axes
	PanY                          // drag pans vertical axes
	ZoomX                         // wheel and pinch zoom horizontal axes
	ZoomY                         // wheel and pinch zoom vertical axes
	Hover                         // pointer moves update the hover target
)

// InteractAll enables every interaction.
const InteractAll = PanX | PanY | ZoomX | ZoomY | Hover

const (
	defaultHitTolerance = 8.0
	defaultDragDeadZone = 4.0 // pixels
	defaultWheelStep    = 1.1
	defaultChartMargin  = 8.0
)

type options struct {
	margins      Margins
	style        StyleSource
	interaction  Interaction
	hitTolerance float64
	dragDeadZone float64
	wheelStep    float64
	debug        bool
}

func defaultOptions() options {
	return options{
		margins:      UniformMargins(defaultChartMargin),
		interaction:  InteractAll,
		hitTolerance: defaultHitTolerance,
		dragDeadZone: defaultDragDeadZone,
		wheelStep:    defaultWheelStep,
	}
}

// Option configures a Chart.
type Option func(*options)

// WithMargins sets the chart margins subtracted from the surface before the
// first unit renders.
func WithMargins(m Margins) Option {
	return func(o *options) { o.margins = m }
}

// WithStyleSource sets where the chart reads its style. The chart subscribes
// once in New and only invalidates in response to changes.
func WithStyleSource(s StyleSource) Option {
	return func(o *options) { o.style = s }
}

// WithStyle uses a fixed style.
func WithStyle(s Style) Option {
	return func(o *options) { o.style = NewStaticStyle(s) }
}

// WithInteraction sets the interaction permission bitmask.
func WithInteraction(i Interaction) Option {
	return func(o *options) { o.interaction = i }
}

// WithHitTolerance sets the pixel radius for hover and click hit tests.
func WithHitTolerance(px float64) Option {
	return func(o *options) { o.hitTolerance = px }
}

// WithDragDeadZone sets the minimum movement in pixels before a drag starts.
func WithDragDeadZone(px float64) Option {
	return func(o *options) { o.dragDeadZone = px }
}

// WithWheelStep sets the zoom factor applied per wheel notch.
func WithWheelStep(step float64) Option {
	return func(o *options) {
		if step > 1 {
			o.wheelStep = step
		}
	}
}

// WithDebug logs per-frame timing stats at debug level.
func WithDebug(enabled bool) Option {
	return func(o *options) { o.debug = enabled }
}
