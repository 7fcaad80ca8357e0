package torchlight

import (
	"encoding/json"
	"errors"
	"fmt"
)

// scriptAction names what a script step does to the pointer.
type scriptAction string

const (
	actionMove       scriptAction = "move"       // x, y
	actionPath       scriptAction = "path"       // fromX, fromY, toX, toY, frames
	actionLeave      scriptAction = "leave"      // pointer leaves the surface
	actionWait       scriptAction = "wait"       // frames
	actionScreenshot scriptAction = "screenshot" // label
)

// scriptStep is one entry of a pointer script.
type scriptStep struct {
	Action scriptAction `json:"action"`
	X      float64      `json:"x,omitempty"`
	Y      float64      `json:"y,omitempty"`
	FromX  float64      `json:"fromX,omitempty"`
	FromY  float64      `json:"fromY,omitempty"`
	ToX    float64      `json:"toX,omitempty"`
	ToY    float64      `json:"toY,omitempty"`
	Frames int          `json:"frames,omitempty"`
	Label  string       `json:"label,omitempty"`
}

func (st scriptStep) validate() error {
	switch st.Action {
	case actionMove, actionPath, actionLeave, actionScreenshot:
		return nil
	case actionWait:
		if st.Frames < 1 {
			return errors.New("wait needs frames >= 1")
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
}

// apply queues the step's pointer input on s and returns how many frames
// the runner should hold before the next step, counting the current one.
func (st scriptStep) apply(s *Scene) int {
	switch st.Action {
	case actionMove:
		s.InjectMove(st.X, st.Y)
	case actionPath:
		s.InjectPath(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case actionLeave:
		s.InjectLeave()
	case actionScreenshot:
		s.Screenshot(st.Label)
	case actionWait:
		return st.Frames
	}
	return 1
}

// TestRunner replays a pointer script against a Scene, one step per frame.
// A step that queues several samples (path) holds the script until the scene
// has consumed them all, so a script reads as a timeline of frames.
type TestRunner struct {
	steps []scriptStep
	next  int // index of the next step to apply
	hold  int // frames left before next may run
	done  bool
}

// LoadTestScript parses a pointer script of the form
//
//	{"steps": [{"action": "path", "fromX": 0, "fromY": 100, "toX": 800, "toY": 100, "frames": 20}]}
//
// Actions are "move", "path", "leave", "wait" and "screenshot".
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var doc struct {
		Steps []scriptStep `json:"steps"`
	}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, errors.New("parse test script: no steps")
	}
	for i, st := range doc.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: doc.Steps}, nil
}

// SetTestRunner makes runner drive the scene's pointer. It runs at the start
// of every Advance, ahead of input processing.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether the script has run to completion.
func (r *TestRunner) Done() bool {
	return r.done
}

func (r *TestRunner) step(s *Scene) {
	if r.done || len(s.injectQueue) > 0 {
		return
	}
	if r.hold > 1 {
		r.hold--
		return
	}
	r.hold = 0
	if r.next == len(r.steps) {
		r.done = true
		return
	}

	r.hold = r.steps[r.next].apply(s)
	r.next++

	if r.next == len(r.steps) && r.hold <= 1 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
