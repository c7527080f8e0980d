// Package dots implements the dot-popping game on top of the board core.
// Each configured preset is registered as its own game.
package dots

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/vovakirdan/dotpop/internal/board"
	"github.com/vovakirdan/dotpop/internal/config"
	"github.com/vovakirdan/dotpop/internal/core"
	"github.com/vovakirdan/dotpop/internal/layouts"
	"github.com/vovakirdan/dotpop/internal/registry"
)

// Game is one playable board with a cursor, stats and animated transitions.
type Game struct {
	id      string
	title   string
	width   int
	height  int
	palette board.Palette
	layout  *layouts.Layout // Fixed start board, nil for random deals
	anim    config.AnimationConfig

	rng   *rand.Rand
	board *board.Board
	tick  uint64

	cursor     board.Coord
	removed    int
	selections int
	largest    int
	last       board.Report
	transition *transition

	screenW  int
	screenH  int
	geo      geometry
	paused   bool
	tooSmall bool
}

var (
	mu      sync.RWMutex
	current = defaultConfig()
)

func defaultConfig() config.DotsConfig {
	cfg, err := config.Parse(config.GetDefaultYAML())
	if err != nil {
		return config.DefaultDotsConfig()
	}
	return cfg
}

func init() {
	for _, p := range current.Presets {
		registry.Register(p.ID, factory(p.ID))
	}
}

// Configure installs cfg: its animation settings apply to every game created
// afterwards and its presets become the registered games. Presets of the
// previous config that cfg leaves out are unregistered.
func Configure(cfg config.DotsConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	mu.RLock()
	previous := current.PresetIDs()
	mu.RUnlock()

	// Drop stale IDs before swapping so no registered factory ever looks up
	// a preset that is gone.
	for _, id := range previous {
		if _, ok := cfg.Preset(id); !ok {
			registry.Unregister(id)
		}
	}

	mu.Lock()
	current = cfg
	mu.Unlock()

	for _, p := range cfg.Presets {
		registry.Replace(p.ID, factory(p.ID))
	}
	return nil
}

// Animation returns the animation settings in use.
func Animation() config.AnimationConfig {
	mu.RLock()
	defer mu.RUnlock()
	return current.Animation
}

// Presets returns the configured presets in declaration order.
func Presets() []config.PresetConfig {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]config.PresetConfig, len(current.Presets))
	copy(out, current.Presets)
	return out
}

// Preset looks up a configured preset.
func Preset(id string) (config.PresetConfig, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return current.Preset(id)
}

func factory(id string) registry.Factory {
	return func() registry.Game {
		mu.RLock()
		p, _ := current.Preset(id)
		anim := current.Animation
		mu.RUnlock()

		g, err := New(p, anim)
		if err != nil {
			// Presets are validated before registration.
			panic(fmt.Sprintf("dots: preset %q: %v", id, err))
		}
		return g
	}
}

// New creates a game for a preset. Call Reset before stepping it.
func New(p config.PresetConfig, anim config.AnimationConfig) (*Game, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	palette, err := p.BoardPalette()
	if err != nil {
		return nil, err
	}
	return &Game{
		id:      p.ID,
		title:   p.Title,
		width:   p.Width,
		height:  p.Height,
		palette: palette,
		anim:    anim,
	}, nil
}

// NewFromLayout creates a game that always starts from the layout's board.
func NewFromLayout(l layouts.Layout, anim config.AnimationConfig) (*Game, error) {
	if _, err := l.Board(nil); err != nil {
		return nil, err
	}
	lay := l
	return &Game{
		id:      l.ID,
		title:   l.Name,
		width:   l.Width(),
		height:  l.Height(),
		palette: l.Palette,
		layout:  &lay,
		anim:    anim,
	}, nil
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.title == "" {
		return g.id
	}
	return g.title
}

// Reset deals a fresh board and clears the stats.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.paused = false
	g.deal()
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// deal replaces the board and zeroes per-board stats.
func (g *Game) deal() {
	var b *board.Board
	var err error
	if g.layout != nil {
		b, err = g.layout.Board(g.rng)
	} else {
		b, err = board.New(g.width, g.height, g.palette, g.rng)
	}
	if err != nil {
		// Dimensions and palette were validated in New.
		panic(fmt.Sprintf("dots: deal %s: %v", g.id, err))
	}

	g.board = b
	g.cursor = board.C(g.width/2, g.height/2)
	g.removed = 0
	g.selections = 0
	g.largest = 0
	g.last = board.Report{}
	g.transition = nil
}

// Resize adapts the layout to a new screen size without redealing.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.geo = computeGeometry(g.width, g.height, w)
	g.tooSmall = w < g.geo.minW || h < g.geo.minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.deal()
		return core.StepResult{State: g.State(), Changed: true}
	}

	g.moveCursor(in)

	if g.transition != nil {
		if !g.transition.step() {
			g.transition = nil
		}
		// Selections are ignored until the board has settled.
		return core.StepResult{State: g.State()}
	}

	target, ok := g.target(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	report := g.Select(target.X, target.Y)
	return core.StepResult{State: g.State(), Changed: !report.NoOp()}
}

// target picks the cell a selection applies to this frame: a click on the
// board wins over the select key.
func (g *Game) target(in core.InputFrame) (board.Coord, bool) {
	if in.Click != nil {
		// Only a release over the token that was pressed counts.
		pressed, okPress := g.CellAt(in.Click.PressX, in.Click.PressY)
		released, okRelease := g.CellAt(in.Click.X, in.Click.Y)
		if okPress && okRelease && pressed == released {
			g.cursor = released
			return released, true
		}
	}
	if in.Has(core.ActionSelect) {
		return g.cursor, true
	}
	return board.Coord{}, false
}

func (g *Game) moveCursor(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Y++
	case in.Has(core.ActionDown):
		g.cursor.Y--
	case in.Has(core.ActionLeft):
		g.cursor.X--
	case in.Has(core.ActionRight):
		g.cursor.X++
	}
	g.cursor.X = core.Clamp(g.cursor.X, 0, g.width-1)
	g.cursor.Y = core.Clamp(g.cursor.Y, 0, g.height-1)
}

// Select applies a selection at board coordinates immediately, updates the
// stats and starts the transition animation. A no-op report changes nothing.
func (g *Game) Select(x, y int) board.Report {
	report := g.board.ApplySelection(x, y)
	if report.NoOp() {
		return report
	}

	g.last = report
	g.selections++
	g.removed += report.Removed.Len()
	if report.Removed.Len() > g.largest {
		g.largest = report.Removed.Len()
	}
	g.transition = newTransition(report, g.anim, g.height)
	return report
}

// Board returns a copy of the current board.
func (g *Game) Board() *board.Board {
	return g.board.Clone()
}

// LastReport returns the most recent selection that changed the board.
func (g *Game) LastReport() board.Report {
	return g.last
}

// Cursor returns the cursor position in board coordinates.
func (g *Game) Cursor() board.Coord {
	return g.cursor
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Removed:    g.removed,
		Selections: g.selections,
		Largest:    g.largest,
		Animating:  g.transition != nil,
		Paused:     g.paused || g.tooSmall,
	}
}
