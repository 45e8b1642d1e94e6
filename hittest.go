package charts

// Hit is the data point nearest a query position.
type Hit struct {
	Series      Series
	SeriesIndex int // registration index of Series
	Index       int // data index within the series

	Label string  // category, slice or leaf label; empty for numeric X
	X     float64 // X value (unix seconds on temporal axes, band index on categorical)
	Value float64 // Y value, slice value or leaf value

	Pixel    Vec2    // marker position in logical pixels
	Distance float64 // pixel distance from the query; 0 inside a shape
}

// closer reports whether h should win over other: the smaller distance wins,
// then the lower data index, then the lower registration index.
func (h Hit) closer(other Hit) bool {
	if h.Distance != other.Distance {
		return h.Distance < other.Distance
	}
	if h.Index != other.Index {
		return h.Index < other.Index
	}
	return h.SeriesIndex < other.SeriesIndex
}

// hitSet accumulates the best candidate within a tolerance.
type hitSet struct {
	tol  float64
	best Hit
	ok   bool
}

func (s *hitSet) offer(h Hit) {
	if h.Distance > s.tol {
		return
	}
	if !s.ok || h.closer(s.best) {
		s.best = h
		s.ok = true
	}
}

func (s *hitSet) result() (Hit, bool) {
	return s.best, s.ok
}
