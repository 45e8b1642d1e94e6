// Package charts is a retained-mode chart layout, scale and interaction
// engine. It draws through a small [Surface] interface, so the same chart
// renders into an Ebitengine window (package ebitenhost) or a PNG
// (package ggsurface).
//
// # Quick start
//
// Create a chart, attach axes to a series and register the units:
//
//	c := charts.New(surface)
//	x := charts.NewAxis("x", charts.SideBottom)
//	y := charts.NewAxis("y", charts.SideLeft)
//	s, _ := charts.NewCartesian("load", charts.ModeLine, x, y)
//	s.Add(0, 1.5)
//	s.Add(1, 2.25)
//	c.Register(s)
//	c.Register(charts.NewLegend(charts.SideBottom))
//	c.Register(charts.NewTooltip())
//
//	report := c.RenderFrame(charts.Size{Width: 640, Height: 480})
//	if err := report.Err(); err != nil {
//		log.Print(err)
//	}
//
// # Layout
//
// Every frame the registered units are sorted by [Renderable.Order], then by
// registration order, and the drawing area is threaded through them: each
// unit receives the rectangle the previous one returned. Legends and
// free-standing axes consume a strip; series and tooltips return what they
// received. A series subtracts the margins of its axes to get its plot
// rectangle.
//
// # Coordinate systems
//
// All series in a chart share one [CoordinateSystem]: cartesian
// ([Cartesian]), circular ([Circular]) or treemap ([TreeMap]). Registering a
// series of another system fails with [ErrCoordinateSystemMismatch].
//
// # Axes and views
//
// An [Axis] computes nice ticks over its data range, reduces the tick count
// while labels overlap, and measures the margin it needs. Pan and zoom live
// on the axis as a [ViewState]; [Chart.Snapshot] and [Chart.Restore] save
// and load them. Axes shared by several series are drawn once per frame by
// the first series that lends their scale.
//
// # Input
//
// [Chart.Dispatch] routes pointer, wheel and pinch events to the topmost
// series under the pointer. Dragging pans, the wheel and pinches zoom, and
// hovering updates the tooltip target. Events dispatched while a frame is
// rendering are queued and applied right after it.
package charts
