package core

// DefaultTickRate is the simulation rate used when none is configured.
const DefaultTickRate = 60

// RuntimeConfig is what a game is reset with: the screen it draws on and
// the seed its board is dealt from.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // 0 lets the platform pick a time-based seed
}

// DefaultConfig returns the config of a plain 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
	}
}

// WithDefaults fills unset screen size and tick rate from DefaultConfig.
// The seed is left alone.
func (c RuntimeConfig) WithDefaults() RuntimeConfig {
	d := DefaultConfig()
	if c.ScreenW <= 0 {
		c.ScreenW = d.ScreenW
	}
	if c.ScreenH <= 0 {
		c.ScreenH = d.ScreenH
	}
	if c.TickRate <= 0 {
		c.TickRate = d.TickRate
	}
	return c
}

// GameState is the per-board summary a game reports after every step.
// The platform stores it when a run ends.
type GameState struct {
	Removed    int  // Tokens removed so far
	Selections int  // Selections that removed at least one token
	Largest    int  // Largest region removed in one selection
	Animating  bool // A transition is still playing
	Paused     bool
}

// Average returns the mean region size per selection, 0 before the first.
func (s GameState) Average() float64 {
	if s.Selections == 0 {
		return 0
	}
	return float64(s.Removed) / float64(s.Selections)
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Changed is set on the tick a selection altered the board.
	Changed bool
}
