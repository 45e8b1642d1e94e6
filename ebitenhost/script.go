package ebitenhost

import (
	"encoding/json"
	"errors"
	"fmt"

	charts "github.com/NT-Technologies/NTComponents.Charts-sub001"
)

// scriptStep is a single action of a script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"click": true, "move": true, "drag": true, "wheel": true,
	"wait": true, "screenshot": true, "reset": true,
}

// Script replays input actions against a chart one step per tick, for
// automated visual checks. Actions: click, move, drag, wheel, wait,
// screenshot and reset.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script of the form {"steps": [...]}.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ebitenhost: parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, errors.New("ebitenhost: parse script: no steps")
	}
	for i, st := range f.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("ebitenhost: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Done reports whether every step ran.
func (s *Script) Done() bool { return s.done }

// step runs at most one action. shoot queues a screenshot.
func (s *Script) step(c *charts.Chart, shoot func(label string)) {
	if s.done {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}
	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "screenshot":
		shoot(st.Label)
	case "click":
		c.InjectClick(st.X, st.Y)
	case "move":
		c.InjectMove(st.X, st.Y)
	case "drag":
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "wheel":
		c.InjectWheel(st.X, st.Y, st.DY, 0)
	case "reset":
		c.ResetView(0)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this tick counts as one
		}
	}
	if s.cursor >= len(s.steps) && s.waitCount == 0 {
		s.done = true
	}
}
