package gw

import (
	"strings"
	"sync"
)

// A Registry maps lowercased names to Resources,
// remembering the order names were first added in.
//
// A Registry is safe for concurrent use,
// though registration is expected to finish before serving traffic.
type Registry struct {
	mu    sync.RWMutex
	names []string
	val   map[string]Resource
}

// NewRegistry constructs an empty *Registry.
func NewRegistry() *Registry {
	return &Registry{val: make(map[string]Resource)}
}

// Add stores res under the lowercased name, returning the *Registry for chaining.
// Adding a name again overwrites the Resource but keeps the name's position.
func (reg *Registry) Add(name string, res Resource) *Registry {
	name = strings.ToLower(name)

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.val == nil {
		reg.val = make(map[string]Resource)
	}

	if _, ok := reg.val[name]; !ok {
		reg.names = append(reg.names, name)
	}

	reg.val[name] = res
	return reg
}

// Has asserts whether a Resource is stored under the lowercased name.
func (reg *Registry) Has(name string) bool {
	_, ok := reg.Get(name)
	return ok
}

// Get retrieves the Resource stored under the lowercased name.
func (reg *Registry) Get(name string) (Resource, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	res, ok := reg.val[strings.ToLower(name)]
	return res, ok
}

// List returns the registered names in insertion order.
// List never returns nil.
func (reg *Registry) List() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	names := make([]string, len(reg.names))
	copy(names, reg.names)
	return names
}
