// Package registry holds the playable boards. Each board preset registers a
// factory at init time (and again when a config file is loaded), so the
// CLI, the SSH server and the WebSocket server all see the same list.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/dotpop/internal/core"
)

// Game is a playable board. Implementations are pure logic; the platform
// maps input to actions, drives Step at the tick rate and displays Render.
type Game interface {
	// ID names the preset ("classic", "wide"). Sessions are stored under it.
	ID() string

	Title() string

	// Reset deals a fresh board. Called at start and again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("unknown game")

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a factory. Registering an ID twice is a programming error
// and panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = newEntry(f)
}

// Replace registers f under id, overwriting any existing factory.
func Replace(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	entries[id] = newEntry(f)
}

// Unregister removes id. It reports whether id was registered.
func Unregister(id string) bool {
	mu.Lock()
	defer mu.Unlock()

	_, ok := entries[id]
	delete(entries, id)
	return ok
}

// newEntry caches the title so List does not build a board per call.
func newEntry(f Factory) entry {
	return entry{factory: f, title: f().Title()}
}

// List returns every registered game sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Create builds a new game. The error wraps ErrUnknownGame when id is not
// registered.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
