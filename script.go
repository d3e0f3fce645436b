package dreamscape

import (
	"encoding/json"
	"fmt"
	"os"
)

// Script step actions.
const (
	ActionHold  = "hold"  // repeat Snapshot for Frames frames
	ActionLerp  = "lerp"  // interpolate From to To over Frames frames
	ActionEmpty = "empty" // nobody in view for Frames frames
	ActionMark  = "mark"  // label the next frame; takes no time
)

const defaultScriptFPS = 60

// ScriptStep is a single action in a landmark script.
type ScriptStep struct {
	Action   string    `json:"action"`
	Label    string    `json:"label,omitempty"`
	Frames   int       `json:"frames,omitempty"`
	Snapshot *Snapshot `json:"snapshot,omitempty"`
	From     *Snapshot `json:"from,omitempty"`
	To       *Snapshot `json:"to,omitempty"`
}

// Script is a recorded or hand-written sequence of landmark snapshots used to
// drive a World without a camera.
type Script struct {
	Width  float64      `json:"width,omitempty"`
	Height float64      `json:"height,omitempty"`
	Seed   uint64       `json:"seed,omitempty"`
	FPS    float64      `json:"fps,omitempty"`
	Steps  []ScriptStep `json:"steps"`
}

// LoadScript parses and validates a JSON landmark script.
func LoadScript(data []byte) (*Script, error) {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScriptFile reads a JSON landmark script from path.
func LoadScriptFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	s, err := LoadScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *Script) validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case ActionHold:
			if st.Snapshot == nil {
				return fmt.Errorf("parse script: step %d: hold needs a snapshot", i)
			}
		case ActionLerp:
			if st.From == nil || st.To == nil {
				return fmt.Errorf("parse script: step %d: lerp needs from and to", i)
			}
			if !sameShape(st.From, st.To) {
				return fmt.Errorf("parse script: step %d: lerp endpoints differ in shape", i)
			}
		case ActionEmpty, ActionMark:
		default:
			return fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return nil
}

// DT returns the seconds per frame the script was written for.
func (s *Script) DT() float64 {
	if s.FPS <= 0 {
		return 1.0 / defaultScriptFPS
	}
	return 1 / s.FPS
}

// Options returns World options sized and seeded for the script.
func (s *Script) Options() Options {
	return Options{Width: s.Width, Height: s.Height, Seed: s.Seed}
}

// Frames returns the number of frames the script produces.
func (s *Script) Frames() int {
	n, marks := 0, false
	for _, st := range s.Steps {
		if st.Action == ActionMark {
			marks = true
			continue
		}
		n += st.frames()
		marks = false
	}
	if marks {
		n++
	}
	return n
}

func (st ScriptStep) frames() int {
	if st.Frames < 1 {
		return 1
	}
	return st.Frames
}

// ScriptFrame is one frame of script output.
type ScriptFrame struct {
	Index    int
	Snapshot *Snapshot
	// Marks are the labels of mark steps that preceded this frame.
	Marks []string
}

// ScriptPlayer walks a Script one frame at a time.
type ScriptPlayer struct {
	steps   []ScriptStep
	cursor  int
	sub     int
	index   int
	pending []string
	last    *Snapshot
	done    bool
}

// Player returns a player positioned at the start of the script.
func (s *Script) Player() *ScriptPlayer {
	return &ScriptPlayer{steps: s.Steps}
}

// Done reports whether every step has been played.
func (p *ScriptPlayer) Done() bool {
	return p.done
}

// Next returns the next frame. ok is false once the script is exhausted.
// Marks at the very end of a script are delivered on one extra frame that
// repeats the last snapshot.
func (p *ScriptPlayer) Next() (ScriptFrame, bool) {
	if p.done {
		return ScriptFrame{}, false
	}
	for p.cursor < len(p.steps) {
		st := p.steps[p.cursor]
		if st.Action == ActionMark {
			p.pending = append(p.pending, st.Label)
			p.cursor++
			continue
		}
		n := st.frames()
		snap := st.snapshotAt(p.sub, n)
		p.sub++
		if p.sub >= n {
			p.sub = 0
			p.cursor++
		}
		return p.emit(snap), true
	}
	p.done = true
	if len(p.pending) > 0 {
		return p.emit(p.last), true
	}
	return ScriptFrame{}, false
}

func (p *ScriptPlayer) emit(snap *Snapshot) ScriptFrame {
	f := ScriptFrame{Index: p.index, Snapshot: snap, Marks: p.pending}
	p.pending = nil
	p.last = snap
	p.index++
	return f
}

func (st ScriptStep) snapshotAt(i, n int) *Snapshot {
	switch st.Action {
	case ActionHold:
		return st.Snapshot
	case ActionLerp:
		t := 1.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		return LerpSnapshot(st.From, st.To, t)
	}
	return nil
}

// LerpSnapshot interpolates every landmark of a and b by t. The snapshots
// must have the same shape.
func LerpSnapshot(a, b *Snapshot, t float64) *Snapshot {
	return &Snapshot{
		Pose:      lerpLandmarks(a.Pose, b.Pose, t),
		LeftHand:  lerpLandmarks(a.LeftHand, b.LeftHand, t),
		RightHand: lerpLandmarks(a.RightHand, b.RightHand, t),
		Face:      lerpLandmarks(a.Face, b.Face, t),
	}
}

func lerpLandmarks(a, b []Landmark, t float64) []Landmark {
	if a == nil || b == nil {
		return nil
	}
	out := make([]Landmark, len(a))
	for i := range a {
		out[i] = Landmark{
			X:          Lerp(a[i].X, b[i].X, t),
			Y:          Lerp(a[i].Y, b[i].Y, t),
			Z:          Lerp(a[i].Z, b[i].Z, t),
			Visibility: Lerp(a[i].Visibility, b[i].Visibility, t),
		}
	}
	return out
}

func sameShape(a, b *Snapshot) bool {
	return len(a.Pose) == len(b.Pose) &&
		len(a.LeftHand) == len(b.LeftHand) &&
		len(a.RightHand) == len(b.RightHand) &&
		len(a.Face) == len(b.Face) &&
		(a.Pose == nil) == (b.Pose == nil) &&
		(a.LeftHand == nil) == (b.LeftHand == nil) &&
		(a.RightHand == nil) == (b.RightHand == nil) &&
		(a.Face == nil) == (b.Face == nil)
}

// Play steps w through every frame of the script with params p, calling
// visit after each step. It returns the number of frames played.
func (s *Script) Play(w *World, p Params, visit func(ScriptFrame, Frame)) int {
	player := s.Player()
	dt := s.DT()
	n := 0
	for {
		sf, ok := player.Next()
		if !ok {
			return n
		}
		f := w.Step(sf.Snapshot, p, dt)
		n++
		if visit != nil {
			visit(sf, f)
		}
	}
}
