package core

import (
	"fmt"
	"sync"
)

var (
	registry   = make(map[string]EntityDefinition)
	order      []string
	registryMu sync.RWMutex
)

// Register adds an entity definition to the registry.
// Panics if an entity with the same key is already registered.
func Register(def EntityDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("entity already registered: %s", def.Info.Key))
	}
	if def.Info.Table == "" {
		def.Info.Table = def.Info.Key
	}

	registry[def.Info.Key] = def
	order = append(order, def.Info.Key)
}

// Get returns an entity definition by key.
// Returns false if not found.
func Get(key string) (EntityDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// MustGet returns an entity definition or an ErrUnknownEntity error.
func MustGet(key string) (EntityDefinition, error) {
	def, ok := Get(key)
	if !ok {
		return EntityDefinition{}, fmt.Errorf("%w: %s", ErrUnknownEntity, key)
	}
	return def, nil
}

// All returns all registered entity definitions in registration order.
func All() []EntityDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]EntityDefinition, 0, len(order))
	for _, key := range order {
		result = append(result, registry[key])
	}
	return result
}

// Dependents returns, in registration order, the entities whose listings
// show columns of key through a join.
func Dependents(key string) []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var keys []string
	for _, k := range order {
		for _, joined := range registry[k].List.Joined {
			if joined == key {
				keys = append(keys, k)
				break
			}
		}
	}
	return keys
}

// EntityCount returns the number of registered entities.
func EntityCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}
