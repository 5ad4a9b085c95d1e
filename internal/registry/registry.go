// Package registry provides a global registry for demo factories.
// Demos register themselves in init() functions, allowing the platform
// to discover and instantiate demos without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-timestep/internal/core"
)

// Demo is the frame handler every timestep demo implements.
// Demos contain pure logic with no terminal dependencies (especially no Bubble Tea).
// The platform owns timing, input mapping and presentation, and calls the
// demo once per frame with an explicit timing snapshot.
type Demo interface {
	// ID returns a unique identifier for this demo (e.g., "fixed", "finaltouch").
	// Used for CLI commands and the run log.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description returns a one-line summary of the stepping strategy.
	Description() string

	// Reset initializes or resets the demo state.
	Reset(cfg core.RuntimeConfig)

	// OnUpdate consumes one frame's timing and advances the simulation.
	OnUpdate(frame core.FrameContext) core.UpdateResult

	// OnRender draws the current state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	OnRender(hint core.RenderHint, dst *core.Screen)

	// HandleInput applies platform-level actions (pause, restart).
	HandleInput(in core.InputFrame)

	// Stats returns progress since the last reset.
	Stats() core.DemoStats
}

// DemoInfo contains metadata about a registered demo.
type DemoInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a demo.
type Factory func() Demo

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]DemoInfo)
	mu        sync.RWMutex
)

// Register adds a demo factory to the registry.
// Typically called from a demo's init() function.
// Panics if a demo with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: demo %q already registered", id))
	}

	factories[id] = f

	// Get metadata by creating a temporary instance
	d := f()
	infos[id] = DemoInfo{ID: id, Title: d.Title(), Description: d.Description()}
}

// List returns information about all registered demos, sorted by ID.
func List() []DemoInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]DemoInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new demo by its ID.
// Returns an error if the demo ID is not registered.
func Create(id string) (Demo, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown demo %q", id)
	}

	return f(), nil
}

// Exists checks if a demo with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
