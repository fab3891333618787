package recording

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// BackendFactory returns a fresh, unconfigured backend.
type BackendFactory func() Backend

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]BackendFactory)
)

// Register adds a legend output format under name. Backend packages call it
// from init, so importing a backend for side effects makes it available to
// NewBackend:
//
//	import _ "github.com/gogpu/bivariate/recording/backends/raster"
//
// Registering a nil factory or a name twice panics.
func Register(name string, factory BackendFactory) {
	if factory == nil {
		panic("recording: nil factory for backend " + name)
	}
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if _, taken := factories[name]; taken {
		panic("recording: backend " + name + " registered twice")
	}
	factories[name] = factory
}

// NewBackend returns a new backend of the named output format. The error
// lists the registered names.
func NewBackend(name string) (Backend, error) {
	factoriesMu.RLock()
	factory := factories[name]
	factoriesMu.RUnlock()
	if factory == nil {
		return nil, fmt.Errorf("recording: no backend %q (registered: %v)", name, Backends())
	}
	return factory(), nil
}

// Backends lists the registered output formats in sorted order.
func Backends() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	return slices.Sorted(maps.Keys(factories))
}
