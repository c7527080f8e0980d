package dots

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/dotpop/internal/board"
	"github.com/vovakirdan/dotpop/internal/config"
	"github.com/vovakirdan/dotpop/internal/core"
	"github.com/vovakirdan/dotpop/internal/layouts"
	"github.com/vovakirdan/dotpop/internal/registry"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func newClassic(t *testing.T, seed int64) *Game {
	t.Helper()
	rg, err := registry.Create("classic")
	if err != nil {
		t.Fatalf("classic not registered: %v", err)
	}
	g := rg.(*Game)
	g.Reset(testConfig(seed))
	return g
}

func newScenario(t *testing.T) *Game {
	t.Helper()
	lay, err := layouts.ParseYAML([]byte("id: scenario\npalette: [red, blue]\nrows: [RRB, BRB, RBR]"))
	if err != nil {
		t.Fatal(err)
	}
	g, err := NewFromLayout(lay, Animation())
	if err != nil {
		t.Fatal(err)
	}
	g.Reset(testConfig(1))
	return g
}

func press(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

// settle steps until the transition finishes.
func settle(t *testing.T, g *Game) int {
	t.Helper()
	for i := 1; i <= 1000; i++ {
		if !g.Step(core.NewInputFrame()).State.Animating {
			return i
		}
	}
	t.Fatal("transition never finished")
	return 0
}

func TestPresetsRegistered(t *testing.T) {
	for _, id := range []string{"classic", "small", "wide", "mono"} {
		if !registry.Exists(id) {
			t.Errorf("preset %q should be registered", id)
		}
	}

	g := newClassic(t, 1)
	if g.Title() != "Classic 8x8" {
		t.Errorf("Title() = %q", g.Title())
	}
	if g.width != 8 || g.height != 8 || len(g.palette) != 4 {
		t.Errorf("classic = %dx%d with %d colors", g.width, g.height, len(g.palette))
	}
}

func TestDeterministicDeal(t *testing.T) {
	g1 := newClassic(t, 12345)
	g2 := newClassic(t, 12345)

	if !g1.board.Equal(g2.board) {
		t.Errorf("Same seed should produce same board:\n%v\nvs\n%v", g1.Snapshot().Rows, g2.Snapshot().Rows)
	}

	g1.Step(press(core.ActionSelect))
	g2.Step(press(core.ActionSelect))
	settle(t, g1)
	settle(t, g2)

	if !g1.board.Equal(g2.board) {
		t.Error("Same seed and input should keep boards in sync")
	}
}

func TestCursorMovementClamped(t *testing.T) {
	g := newClassic(t, 1)
	g.cursor = board.C(0, 0)

	g.Step(press(core.ActionLeft))
	g.Step(press(core.ActionDown))
	if g.Cursor() != board.C(0, 0) {
		t.Errorf("cursor should stay in bounds, got %v", g.Cursor())
	}

	g.Step(press(core.ActionRight))
	g.Step(press(core.ActionUp))
	if g.Cursor() != board.C(1, 1) {
		t.Errorf("cursor = %v, expected (1,1)", g.Cursor())
	}

	for i := 0; i < 20; i++ {
		g.Step(press(core.ActionUp))
	}
	if g.Cursor().Y != 7 {
		t.Errorf("cursor should clamp to top row, got %v", g.Cursor())
	}
}

func TestSelectStartsTransitionAndUpdatesStats(t *testing.T) {
	g := newScenario(t)
	g.cursor = board.C(0, 2)

	res := g.Step(press(core.ActionSelect))
	if !res.Changed {
		t.Error("selection should report a change")
	}
	if !res.State.Animating {
		t.Error("selection should start a transition")
	}
	if res.State.Removed != 3 || res.State.Selections != 1 || res.State.Largest != 3 {
		t.Errorf("state = %+v, expected 3 removed in 1 selection", res.State)
	}
	if g.LastReport().Color != board.ColorRed {
		t.Errorf("last report color = %s", g.LastReport().Color)
	}

	// The board is already settled underneath the animation.
	if !g.board.IsStable() {
		t.Error("board should be refilled immediately")
	}

	settle(t, g)
	if g.State().Animating {
		t.Error("transition should be finished")
	}
}

func TestSelectionIgnoredWhileAnimating(t *testing.T) {
	g := newScenario(t)
	g.cursor = board.C(1, 0)
	g.Step(press(core.ActionSelect))

	before := g.board.Clone()
	res := g.Step(press(core.ActionSelect))

	if res.Changed || g.selections != 1 {
		t.Error("selection during a transition should be ignored")
	}
	if !g.board.Equal(before) {
		t.Error("board changed during a transition")
	}

	settle(t, g)
	g.Step(press(core.ActionSelect))
	if g.selections != 2 {
		t.Errorf("selection after settling should apply, selections = %d", g.selections)
	}
}

func TestTransitionPhases(t *testing.T) {
	g := newScenario(t)
	report := g.Select(1, 0)

	if len(report.Moves) != 2 || len(report.Spawns) != 1 {
		t.Fatalf("report = %s", report)
	}

	tr := g.transition
	if tr.phase != PhasePop {
		t.Fatalf("phase = %s, expected pop", tr.phase)
	}
	for _, c := range []board.Coord{board.C(1, 0), board.C(1, 1), board.C(1, 2)} {
		if !tr.hidden(c) {
			t.Errorf("%v should be hidden until its token lands", c)
		}
	}
	if tr.hidden(board.C(0, 0)) {
		t.Error("untouched cells should stay visible")
	}

	for i := 0; i < g.anim.PopTicks; i++ {
		g.Step(core.NewInputFrame())
	}
	if tr.phase != PhaseFall {
		t.Errorf("phase after %d ticks = %s, expected fall", g.anim.PopTicks, tr.phase)
	}

	settle(t, g)
	if tr.phase != PhaseNone || len(tr.pending) != 0 {
		t.Errorf("finished transition still has %d pending cells", len(tr.pending))
	}
	for _, s := range tr.sprites {
		if float32(s.target.Y) != s.row {
			t.Errorf("sprite landed at row %v, expected %d", s.row, s.target.Y)
		}
	}
}

func TestNoOpSelection(t *testing.T) {
	g := newScenario(t)

	report := g.Select(7, 7)
	if !report.NoOp() {
		t.Error("out-of-bounds selection should be a no-op")
	}
	if g.transition != nil || g.selections != 0 {
		t.Error("no-op should not animate or count")
	}
}

func TestClickMapsToCell(t *testing.T) {
	g := newScenario(t)

	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			sx, sy := g.screenPos(x, float32(y))
			c, ok := g.CellAt(sx, sy)
			if !ok || c != board.C(x, y) {
				t.Errorf("CellAt(screenPos(%d,%d)) = %v, %v", x, y, c, ok)
			}
			// Padding columns belong to the same cell.
			if c, _ := g.CellAt(sx-1, sy); c != board.C(x, y) {
				t.Errorf("left padding of (%d,%d) maps to %v", x, y, c)
			}
		}
	}

	if _, ok := g.CellAt(0, 0); ok {
		t.Error("HUD area should not map to a cell")
	}

	sx, sy := g.screenPos(1, 0)
	in := core.NewInputFrame()
	in.SetClick(sx, sy)
	res := g.Step(in)

	if !res.Changed || g.LastReport().Origin != board.C(1, 0) {
		t.Errorf("click should select (1,0), got %s", g.LastReport())
	}
	if g.Cursor() != board.C(1, 0) {
		t.Error("click should move the cursor")
	}
}

func TestDragOffTokenDoesNotSelect(t *testing.T) {
	g := newScenario(t)

	px, py := g.screenPos(0, 0)
	rx, ry := g.screenPos(2, 0)
	in := core.NewInputFrame()
	in.SetRelease(px, py, rx, ry)

	if g.Step(in).Changed {
		t.Error("release over a different cell should not select")
	}

	in.SetRelease(px, py, px+1, py)
	if !g.Step(in).Changed {
		t.Error("release within the pressed cell should select")
	}
}

func TestPauseAndRestart(t *testing.T) {
	g := newClassic(t, 7)

	g.Step(press(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	if g.Step(press(core.ActionSelect)).Changed {
		t.Error("paused game should ignore selections")
	}
	g.Step(press(core.ActionPause))

	g.Step(press(core.ActionSelect))
	if g.selections != 1 {
		t.Fatal("selection after unpause should apply")
	}

	g.Step(press(core.ActionRestart))
	if g.selections != 0 || g.removed != 0 || g.transition != nil {
		t.Error("restart should deal a fresh board and clear stats")
	}
	if !g.board.IsStable() {
		t.Error("fresh board should be full")
	}
}

func TestRenderShowsEveryToken(t *testing.T) {
	g := newClassic(t, 3)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	count := 0
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			if screen.Get(x, y) == dotRune {
				count++
			}
		}
	}
	if count != 64 {
		t.Errorf("rendered %d tokens, expected 64", count)
	}

	sx, sy := g.screenPos(0, 7)
	cell := screen.GetCell(sx, sy)
	color, _ := g.board.ColorAt(0, 7)
	if cell.Color != tokenColors[color] {
		t.Errorf("token color = %v, expected %v", cell.Color, tokenColors[color])
	}

	if !strings.Contains(screen.String(), "Classic 8x8") {
		t.Error("HUD should show the preset title")
	}
}

func TestRenderDuringPop(t *testing.T) {
	g := newScenario(t)
	g.Select(0, 2)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	sx, sy := g.screenPos(0, 2)
	if r := screen.Get(sx, sy); r != popRune(1) {
		t.Errorf("removed cell shows %q, expected pop rune", r)
	}
	if !strings.Contains(screen.String(), "Last: 3 red") {
		t.Error("HUD should describe the last selection")
	}
}

func TestWindowTooSmall(t *testing.T) {
	rg, _ := registry.Create("wide")
	g := rg.(*Game)
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 10, TickRate: 60, Seed: 1})

	if !g.State().Paused || g.Snapshot().State != StatePausedSmall {
		t.Error("small window should pause the game")
	}

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("should render the too-small message")
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("resize should unpause")
	}
	if g.selections != 0 || !g.board.IsStable() {
		t.Error("resize should keep the board")
	}
}

func TestSnapshot(t *testing.T) {
	g := newScenario(t)

	snap := g.Snapshot()
	if snap.ID != "scenario" || snap.Width != 3 || snap.Height != 3 {
		t.Errorf("snapshot = %+v", snap)
	}
	if strings.Join(snap.Rows, "/") != "RRB/BRB/RBR" {
		t.Errorf("rows = %v", snap.Rows)
	}
	if snap.State != StatePlaying || snap.Phase != "none" {
		t.Errorf("state = %s, phase = %s", snap.State, snap.Phase)
	}

	g.Select(0, 0)
	snap = g.Snapshot()
	if snap.State != StateAnimating || snap.Phase != "pop" {
		t.Errorf("state = %s, phase = %s", snap.State, snap.Phase)
	}
}

func TestEveryConfigEasingHasFunction(t *testing.T) {
	for _, name := range config.Easings {
		if _, ok := easings[name]; !ok {
			t.Errorf("easing %q has no tween function", name)
		}
	}
}

func TestConfigureRegistersPresets(t *testing.T) {
	t.Cleanup(func() {
		if err := Configure(defaultConfig()); err != nil {
			t.Fatal(err)
		}
	})

	cfg := config.DefaultDotsConfig()
	cfg.Presets = append(cfg.Presets, config.PresetConfig{
		ID: "zz-strip", Title: "Strip", Width: 10, Height: 1, Palette: []string{"red", "blue"},
	})
	cfg.Animation.SpawnTicks = 2
	if err := Configure(cfg); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	g, err := registry.Create("zz-strip")
	if err != nil {
		t.Fatalf("configured preset not registered: %v", err)
	}
	if g.(*Game).anim.SpawnTicks != 2 {
		t.Error("configured animation should apply to new games")
	}

	presets := Presets()
	if presets[len(presets)-1].ID != "zz-strip" {
		t.Errorf("Presets() should list configured presets in order, got %v", presets)
	}

	bad := config.DefaultDotsConfig()
	bad.Presets[0].Width = 0
	if err := Configure(bad); err == nil {
		t.Error("invalid config should be rejected")
	}
}

func TestConfigureDropsRemovedPresets(t *testing.T) {
	t.Cleanup(func() {
		if err := Configure(defaultConfig()); err != nil {
			t.Fatal(err)
		}
	})
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic after reconfiguring: %v", r)
		}
	}()

	cfg := config.DefaultDotsConfig()
	cfg.Presets = []config.PresetConfig{
		{ID: "custom", Title: "Custom", Width: 4, Height: 4, Palette: []string{"red", "blue"}},
	}
	if err := Configure(cfg); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	var ids []string
	for _, info := range registry.List() {
		ids = append(ids, info.ID)
	}
	if strings.Join(ids, ",") != "custom" {
		t.Errorf("registry.List() = %v, expected [custom]", ids)
	}

	for _, id := range defaultConfig().PresetIDs() {
		if registry.Exists(id) {
			t.Errorf("dropped preset %q still registered", id)
		}
		if _, err := registry.Create(id); !errors.Is(err, registry.ErrUnknownGame) {
			t.Errorf("Create(%q) error = %v, expected ErrUnknownGame", id, err)
		}
	}

	if _, err := registry.Create("custom"); err != nil {
		t.Fatalf("Create(custom) error = %v", err)
	}

	if err := Configure(defaultConfig()); err != nil {
		t.Fatal(err)
	}
	if !registry.Exists("mono") || registry.Exists("custom") {
		t.Error("restoring the defaults should bring back mono and drop custom")
	}
}
