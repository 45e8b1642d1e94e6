package charts

// debugLog logs timing stats for one frame at debug level.
// Only called when the chart was created WithDebug(true).
func (c *Chart) debugLog(r FrameReport) {
	if !c.opts.debug {
		return
	}
	s := r.Stats
	Logger().Debug("frame",
		"frame", r.Frame,
		"build", s.BuildTime,
		"sort", s.SortTime,
		"fold", s.FoldTime,
		"total", s.BuildTime+s.SortTime+s.FoldTime,
		"units", s.Units,
		"errors", len(r.Errors),
		"drained", s.Drained,
	)
}
