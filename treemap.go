package charts

import "math"

// TreeNode is a node of a treemap. Leaves carry values; inner nodes weigh
// the sum of their children.
type TreeNode struct {
	Label    string
	Value    float64
	Children []*TreeNode
}

// Leaf returns a node without children.
func Leaf(label string, value float64) *TreeNode {
	return &TreeNode{Label: label, Value: value}
}

// Group returns a node over children.
func Group(label string, children ...*TreeNode) *TreeNode {
	return &TreeNode{Label: label, Children: children}
}

// Weight returns the node value, or the sum of child weights for inner
// nodes. Negative values weigh nothing.
func (n *TreeNode) Weight() float64 {
	if n == nil {
		return 0
	}
	if len(n.Children) == 0 {
		return sliceValue(n.Value)
	}
	var w float64
	for _, ch := range n.Children {
		w += ch.Weight()
	}
	return w
}

type leafRect struct {
	node  *TreeNode
	rect  Rect
	depth int
	group int // index of the top-level node
}

// TreeMap partitions its area into nested rectangles, slicing horizontally
// at even depths and vertically at odd depths.
type TreeMap struct {
	seriesBase
	noAxes

	// Padding insets each group before its children are laid out.
	Padding float64

	roots  []*TreeNode
	leaves []leafRect
}

// NewTreeMap creates an empty treemap series.
func NewTreeMap(name string) *TreeMap {
	return &TreeMap{seriesBase: newSeriesBase(name), Padding: 2}
}

// CoordinateSystem implements Series.
func (t *TreeMap) CoordinateSystem() CoordinateSystem { return CoordTreeMap }

// Add appends top-level nodes.
func (t *TreeMap) Add(nodes ...*TreeNode) {
	t.roots = append(t.roots, nodes...)
	t.cached = nil
	if t.chart != nil {
		t.chart.Invalidate()
	}
}

// Invalidate implements Renderable.
func (t *TreeMap) Invalidate() { t.cached = nil }

// Total returns the weight of all top-level nodes.
func (t *TreeMap) Total() float64 {
	var w float64
	for _, n := range t.roots {
		w += n.Weight()
	}
	return w
}

// ComputeRange returns 0..total.
func (t *TreeMap) ComputeRange() Range {
	if t.cached == nil {
		t.cached = &Range{Min: 0, Max: t.Total()}
	}
	return *t.cached
}

// Leaves returns the leaf rectangles of the last layout in depth-first order.
func (t *TreeMap) Leaves() []Rect {
	out := make([]Rect, len(t.leaves))
	for i, l := range t.leaves {
		out[i] = l.rect
	}
	return out
}

func (t *TreeMap) layout(area Rect) {
	t.plot = area
	t.leaves = t.leaves[:0]
	for i, r := range t.slice(t.roots, area, 0) {
		t.place(t.roots[i], r, 0, i)
	}
}

// slice splits area among nodes by weight along X at even depths and along
// Y at odd depths.
func (t *TreeMap) slice(nodes []*TreeNode, area Rect, depth int) []Rect {
	out := make([]Rect, len(nodes))
	var total float64
	for _, n := range nodes {
		total += n.Weight()
	}
	pos := 0.0
	for i, n := range nodes {
		f := 0.0
		if total > 0 {
			f = n.Weight() / total
		}
		if depth%2 == 0 {
			w := area.Width * f
			out[i] = Rect{X: area.X + pos, Y: area.Y, Width: w, Height: area.Height}
			pos += w
		} else {
			h := area.Height * f
			out[i] = Rect{X: area.X, Y: area.Y + pos, Width: area.Width, Height: h}
			pos += h
		}
	}
	return out
}

func (t *TreeMap) place(n *TreeNode, r Rect, depth, group int) {
	if len(n.Children) == 0 {
		if n.Weight() > 0 {
			t.leaves = append(t.leaves, leafRect{node: n, rect: r, depth: depth, group: group})
		}
		return
	}
	inner := r.Inset(UniformMargins(t.Padding))
	if inner.Empty() {
		inner = r
	}
	for i, cr := range t.slice(n.Children, inner, depth+1) {
		t.place(n.Children[i], cr, depth+1, group)
	}
}

// Render lays out and draws the leaves into area and returns area unchanged.
func (t *TreeMap) Render(rc *RenderContext, area Rect) Rect {
	t.layout(area)
	st := rc.Style
	lh := st.LineHeight()
	for i, l := range t.leaves {
		rc.Surface.Rect(l.rect, st.Color(t.slot+i), st.Background, 1)
		label := l.node.Label
		if label == "" || st.TextWidth(label)+2*st.LabelGap > l.rect.Width || lh+2*st.LabelGap > l.rect.Height {
			continue
		}
		rc.Surface.Text(label, l.rect.X+st.LabelGap, l.rect.Y+st.LabelGap, 0, st.Font, st.Background, TextAlignLeft)
	}
	return area
}

// HitTest implements Series. The leaf containing p wins at distance 0;
// otherwise the nearest leaf edge within tolerance.
func (t *TreeMap) HitTest(p Vec2, tolerance float64) (Hit, bool) {
	set := hitSet{tol: tolerance}
	for i, l := range t.leaves {
		d := distToRect(p, l.rect)
		if math.IsNaN(d) {
			continue
		}
		set.offer(Hit{
			Series:      t,
			SeriesIndex: t.index,
			Index:       i,
			Label:       l.node.Label,
			Value:       l.node.Weight(),
			Pixel:       l.rect.Center(),
			Distance:    d,
		})
	}
	return set.result()
}

func (t *TreeMap) legendEntries(st Style) []LegendEntry {
	var out []LegendEntry
	var walk func(n *TreeNode)
	walk = func(n *TreeNode) {
		if len(n.Children) == 0 {
			if n.Weight() > 0 {
				out = append(out, LegendEntry{Label: n.Label, Color: st.Color(t.slot + len(out)), Series: t, Index: len(out)})
			}
			return
		}
		for _, ch := range n.Children {
			walk(ch)
		}
	}
	for _, n := range t.roots {
		walk(n)
	}
	return out
}
