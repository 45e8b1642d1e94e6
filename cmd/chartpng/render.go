package main

import (
	"errors"
	"fmt"
	"os"

	charts "github.com/NT-Technologies/NTComponents.Charts-sub001"
	"github.com/NT-Technologies/NTComponents.Charts-sub001/ggsurface"
	"github.com/NT-Technologies/NTComponents.Charts-sub001/themefile"
)

const fontSize = 12

func render(input string, o renderOptions) error {
	tbl, err := readTable(input, o.sheet)
	if err != nil {
		return err
	}
	series, err := buildSeries(tbl, o.kind)
	if err != nil {
		return err
	}

	surf, err := ggsurface.New(o.width, o.height, o.scale)
	if err != nil {
		return err
	}
	defer surf.Close()

	base := surf.Style(charts.DefaultStyle(), fontSize)
	if o.theme != "" {
		st, err := themefile.Load(o.theme)
		if err != nil {
			return err
		}
		if st.Font == charts.DefaultStyle().Font {
			st.Font = base.Font
		}
		base = st
	}

	c := charts.New(surf, charts.WithStyle(base))
	defer c.Close()
	for _, s := range series {
		if cs, ok := s.(*charts.Cartesian); ok && o.title != "" {
			cs.Y().Title = o.title
		}
		if err := c.Register(s); err != nil {
			return err
		}
	}
	if o.legend != "none" {
		side, ok := charts.ParseSide(o.legend)
		if !ok {
			return fmt.Errorf("invalid legend side: %s", o.legend)
		}
		if err := c.Register(charts.NewLegend(side)); err != nil {
			return err
		}
	}

	report := c.RenderFrame(surf.Size())
	if o.view != "" {
		if err := restoreView(c, o.view); err != nil {
			return err
		}
		report = c.RenderFrame(surf.Size())
	}
	if err := errors.Join(report.Err(), surf.Err()); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return surf.SavePNG(o.out)
}

func restoreView(c *charts.Chart, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("view: %w", err)
	}
	defer f.Close()
	snap, err := charts.ReadSnapshot(f)
	if err != nil {
		return err
	}
	if err := c.Restore(snap); err != nil {
		charts.Logger().Warn("view restore", "err", err)
	}
	return nil
}
