package frame

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrUnknownBackend is returned by NewBackend for names nobody registered.
var ErrUnknownBackend = errors.New("frame: unknown backend")

// BackendFactory returns a fresh backend for one output.
type BackendFactory func() Backend

var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
)

// Register makes a backend available under name. Backend packages call it
// from init, so importing a backend for its side effect is enough:
//
//	import _ "github.com/gogpu/sketch/frame/backends/svg"
//
// Registering a nil factory or the same name twice panics.
func Register(name string, factory BackendFactory) {
	if factory == nil {
		panic("frame: nil factory for backend " + name)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := backends[name]; exists {
		panic("frame: backend " + name + " registered twice")
	}
	backends[name] = factory
}

// NewBackend returns a new instance of the named backend.
func NewBackend(name string) (Backend, error) {
	registryMu.RLock()
	factory := backends[name]
	registryMu.RUnlock()
	if factory == nil {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownBackend, name)
	}
	return factory(), nil
}

// Backends lists the registered names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(backends))
}
