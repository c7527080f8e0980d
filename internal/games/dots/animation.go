package dots

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/dotpop/internal/board"
	"github.com/vovakirdan/dotpop/internal/config"
)

// easings maps config easing names to tween functions.
var easings = map[string]ease.TweenFunc{
	"linear":    ease.Linear,
	"outQuad":   ease.OutQuad,
	"outCubic":  ease.OutCubic,
	"outBounce": ease.OutBounce,
	"inOutSine": ease.InOutSine,
}

func easing(name string) ease.TweenFunc {
	if fn, ok := easings[name]; ok {
		return fn
	}
	return ease.OutQuad
}

// Phase is the current stage of a selection transition.
type Phase int

const (
	PhaseNone Phase = iota
	PhasePop        // Removed tokens shrink away
	PhaseFall       // Survivors fall and new tokens drop in
)

func (p Phase) String() string {
	switch p {
	case PhasePop:
		return "pop"
	case PhaseFall:
		return "fall"
	default:
		return "none"
	}
}

// sprite is a token drawn off-grid while it travels to its final cell.
type sprite struct {
	color  board.Color
	x      int
	row    float32 // Current row in board coordinates, may be above the board
	target board.Coord
	tween  *gween.Tween
	done   bool
}

// transition replays one Report: first the removed region pops, then moved
// and spawned tokens fall into place. Final cells stay hidden until their
// sprite lands.
type transition struct {
	phase Phase

	popping []board.Coord
	color   board.Color
	scale   float32
	pop     *gween.Tween

	sprites []*sprite
	pending map[board.Coord]bool
}

func newTransition(r board.Report, cfg config.AnimationConfig, height int) *transition {
	fn := easing(cfg.Easing)

	t := &transition{
		phase:   PhasePop,
		popping: r.Removed,
		color:   r.Color,
		scale:   1,
		pop:     gween.New(1, 0, float32(cfg.PopTicks), ease.Linear),
		pending: make(map[board.Coord]bool, len(r.Moves)+len(r.Spawns)),
	}

	for _, m := range r.Moves {
		t.sprites = append(t.sprites, &sprite{
			color:  m.Color,
			x:      m.From.X,
			row:    float32(m.From.Y),
			target: m.To,
			tween:  gween.New(float32(m.From.Y), float32(m.To.Y), float32(m.Distance()*cfg.FallTicksPerRow), fn),
		})
		t.pending[m.To] = true
	}

	for _, s := range r.Spawns {
		start := float32(s.At.Y + cfg.SpawnOffsetRows)
		if start < float32(height) {
			start = float32(height)
		}
		t.sprites = append(t.sprites, &sprite{
			color:  s.Color,
			x:      s.At.X,
			row:    start,
			target: s.At,
			tween:  gween.New(start, float32(s.At.Y), float32(cfg.SpawnTicks), fn),
		})
		t.pending[s.At] = true
	}

	return t
}

// step advances the transition by one tick. Returns false once finished.
func (t *transition) step() bool {
	switch t.phase {
	case PhasePop:
		scale, finished := t.pop.Update(1)
		t.scale = scale
		if finished {
			t.phase = PhaseFall
			t.popping = nil
		}
		return true

	case PhaseFall:
		running := false
		for _, s := range t.sprites {
			if s.done {
				continue
			}
			row, finished := s.tween.Update(1)
			s.row = row
			if finished {
				s.done = true
				s.row = float32(s.target.Y)
				delete(t.pending, s.target)
				continue
			}
			running = true
		}
		if !running {
			t.phase = PhaseNone
		}
		return running
	}

	return false
}

// hidden reports whether the board cell is still waiting for its token.
func (t *transition) hidden(c board.Coord) bool {
	return t.pending[c]
}
