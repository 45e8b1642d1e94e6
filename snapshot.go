package charts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
)

// SnapshotVersion is the current ViewSnapshot format.
const SnapshotVersion = 1

// ViewSnapshot is the pan and zoom state of every named axis of a chart.
type ViewSnapshot struct {
	Version int                  `json:"version"`
	Axes    map[string]ViewState `json:"axes"`
}

// Snapshot captures the view of every axis with a name. Axes sharing a name
// keep the first one found in registration order.
func (c *Chart) Snapshot() ViewSnapshot {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	snap := ViewSnapshot{Version: SnapshotVersion, Axes: make(map[string]ViewState)}
	for _, a := range c.axesLocked() {
		if a.Name == "" {
			continue
		}
		if _, ok := snap.Axes[a.Name]; !ok {
			snap.Axes[a.Name] = a.View()
		}
	}
	return snap
}

// Restore applies the views in snap to the axes with matching names. Views
// are clamped to the current axis bounds. Entries naming no axis are
// skipped and reported together as ErrUnknownAxis.
func (c *Chart) Restore(snap ViewSnapshot) error {
	c.stateMu.Lock()
	byName := make(map[string][]*Axis)
	for _, a := range c.axesLocked() {
		byName[a.Name] = append(byName[a.Name], a)
	}
	names := make([]string, 0, len(snap.Axes))
	for name := range snap.Axes {
		names = append(names, name)
	}
	slices.Sort(names)

	var errs []error
	for _, name := range names {
		axes, ok := byName[name]
		if !ok || name == "" {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownAxis, name))
			continue
		}
		for _, a := range axes {
			before := a.View()
			a.SetView(snap.Axes[name])
			if a.View() != before {
				c.fireView(a)
			}
		}
	}
	fns := c.takePending()
	c.stateMu.Unlock()
	run(fns)
	return errors.Join(errs...)
}

// WriteSnapshot encodes snap as JSON.
func WriteSnapshot(w io.Writer, snap ViewSnapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("charts: encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a JSON snapshot.
func ReadSnapshot(r io.Reader) (ViewSnapshot, error) {
	var snap ViewSnapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return ViewSnapshot{}, fmt.Errorf("charts: decode snapshot: %w", err)
	}
	if snap.Version > SnapshotVersion {
		return ViewSnapshot{}, fmt.Errorf("charts: snapshot version %d is newer than %d", snap.Version, SnapshotVersion)
	}
	return snap, nil
}
