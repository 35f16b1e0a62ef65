package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// All selects every registered pipeline in Resolve.
const All = "all"

// RunFunc executes one pipeline.
type RunFunc func(ctx context.Context, env *Env) (*Result, error)

// Definition describes a registered pipeline.
type Definition struct {
	Key   string
	Label string
	Order int // run position when several pipelines are selected
	Run   RunFunc
}

var (
	registry   = make(map[string]Definition)
	registryMu sync.RWMutex
)

// Register adds a pipeline definition to the registry.
// Panics if a pipeline with the same key is already registered.
func Register(def Definition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Key]; exists {
		panic(fmt.Sprintf("pipeline already registered: %s", def.Key))
	}
	registry[def.Key] = def
}

// Get returns a pipeline definition by key.
// Returns false if not found.
func Get(key string) (Definition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// Definitions returns all registered pipelines, sorted by order then key.
func Definitions() []Definition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Definition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].Key < result[j].Key
	})

	return result
}

// Keys returns the registered pipeline keys in run order.
func Keys() []string {
	defs := Definitions()
	keys := make([]string, len(defs))
	for i, d := range defs {
		keys[i] = d.Key
	}
	return keys
}

// Resolve maps pipeline names to definitions, in the order given.
// "all" expands to every registered pipeline; repeated names run once.
func Resolve(names []string) ([]Definition, error) {
	var (
		result []Definition
		seen   = make(map[string]bool)
	)
	add := func(def Definition) {
		if !seen[def.Key] {
			seen[def.Key] = true
			result = append(result, def)
		}
	}

	for _, name := range names {
		if name == All {
			for _, def := range Definitions() {
				add(def)
			}
			continue
		}
		def, ok := Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown pipeline %q (available: %v)", name, Keys())
		}
		add(def)
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("no pipeline selected (available: %v)", Keys())
	}
	return result, nil
}
