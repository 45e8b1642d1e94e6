// Package ebitenhost runs a chart in an [Ebitengine] window.
//
// Create the chart with a [Surface] and hand it to [Run]:
//
//	surf := ebitenhost.NewSurface(1)
//	c := charts.New(surf)
//	// ... register series ...
//	if err := ebitenhost.Run(c, ebitenhost.RunConfig{Title: "Load", Width: 800, Height: 600}); err != nil {
//		log.Fatal(err)
//	}
//
// The game polls mouse, wheel and touch state every tick and turns
// transitions into [charts.Event] values. Touches occupy pointer slots 1-9,
// so two fingers pinch-zoom. Layout runs at the monitor's device scale
// factor; the chart itself lays out in logical pixels.
//
// [Ebitengine]: https://ebitengine.org
package ebitenhost
