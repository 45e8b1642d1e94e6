package main

import (
	"fmt"
	"strconv"
	"time"

	charts "github.com/NT-Technologies/NTComponents.Charts-sub001"
)

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

// xKind classifies the first column: numeric when every cell parses as a
// number, temporal when every cell parses as a time, categorical otherwise.
func xKind(t *table) charts.DomainKind {
	numeric, temporal := true, true
	for r := range t.rows {
		s := t.cell(r, 0)
		if _, ok := parseNumber(s); !ok {
			numeric = false
		}
		if _, ok := parseTime(s); !ok {
			temporal = false
		}
	}
	switch {
	case numeric:
		return charts.DomainNumeric
	case temporal:
		return charts.DomainTemporal
	}
	return charts.DomainCategorical
}

// buildSeries turns t into series for kind. Cartesian kinds read the first
// column as X and every further column as one series sharing the axes. pie
// reads label and value columns. treemap reads label and value, or group,
// label and value.
func buildSeries(t *table, kind string) ([]charts.Series, error) {
	switch kind {
	case "line", "scatter", "bar":
		return buildCartesian(t, kind)
	case "pie", "donut":
		return buildCircular(t, kind)
	case "treemap":
		return buildTreeMap(t)
	}
	return nil, fmt.Errorf("invalid kind: %s (must be line, scatter, bar, pie, donut or treemap)", kind)
}

func buildCartesian(t *table, kind string) ([]charts.Series, error) {
	if len(t.header) < 2 {
		return nil, fmt.Errorf("%s chart needs an X column and at least one value column", kind)
	}
	mode := map[string]charts.CartesianMode{
		"line": charts.ModeLine, "scatter": charts.ModeScatter, "bar": charts.ModeBar,
	}[kind]

	dom := xKind(t)
	if kind == "bar" {
		dom = charts.DomainCategorical
	}
	var x *charts.Axis
	switch dom {
	case charts.DomainTemporal:
		x = charts.NewTimeAxis("x", charts.SideBottom)
	case charts.DomainCategorical:
		x = charts.NewCategoryAxis("x", charts.SideBottom)
	default:
		x = charts.NewAxis("x", charts.SideBottom)
	}
	x.Title = t.header[0]
	y := charts.NewAxis("y", charts.SideLeft)

	var out []charts.Series
	for col := 1; col < len(t.header); col++ {
		s, err := charts.NewCartesian(t.header[col], mode, x, y)
		if err != nil {
			return nil, err
		}
		for r := range t.rows {
			v, ok := parseNumber(t.cell(r, col))
			if !ok {
				continue
			}
			xs := t.cell(r, 0)
			switch dom {
			case charts.DomainTemporal:
				tm, _ := parseTime(xs)
				s.AddTime(tm, v)
			case charts.DomainCategorical:
				s.AddCategory(xs, v)
			default:
				xv, _ := parseNumber(xs)
				s.Add(xv, v)
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func buildCircular(t *table, kind string) ([]charts.Series, error) {
	if len(t.header) < 2 {
		return nil, fmt.Errorf("%s chart needs label and value columns", kind)
	}
	s := charts.NewCircular(t.header[1])
	if kind == "donut" {
		s.InnerRatio = 0.5
	}
	for r := range t.rows {
		if v, ok := parseNumber(t.cell(r, 1)); ok {
			s.Add(t.cell(r, 0), v)
		}
	}
	return []charts.Series{s}, nil
}

func buildTreeMap(t *table) ([]charts.Series, error) {
	cols := len(t.header)
	if cols < 2 {
		return nil, fmt.Errorf("treemap needs label and value columns")
	}
	tm := charts.NewTreeMap(t.header[cols-1])
	groups := make(map[string]*charts.TreeNode)
	for r := range t.rows {
		v, ok := parseNumber(t.cell(r, cols-1))
		if !ok {
			continue
		}
		leaf := charts.Leaf(t.cell(r, cols-2), v)
		if cols < 3 {
			tm.Add(leaf)
			continue
		}
		name := t.cell(r, 0)
		g, ok := groups[name]
		if !ok {
			g = charts.Group(name)
			groups[name] = g
			tm.Add(g)
		}
		g.Children = append(g.Children, leaf)
	}
	return []charts.Series{tm}, nil
}
