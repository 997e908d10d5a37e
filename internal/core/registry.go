package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	kinds   = make(map[string]KindDefinition)
	kindsMu sync.RWMutex
)

// RegisterKind adds a table kind to the registry.
// Panics if the key or token is already registered.
func RegisterKind(def KindDefinition) {
	kindsMu.Lock()
	defer kindsMu.Unlock()

	if def.Key == "" || def.Token == "" {
		panic(fmt.Sprintf("table kind needs key and token: %+v", def))
	}
	if _, exists := kinds[def.Key]; exists {
		panic(fmt.Sprintf("table kind already registered: %s", def.Key))
	}
	for _, other := range kinds {
		if other.Token == def.Token {
			panic(fmt.Sprintf("table kind token already registered: %s", def.Token))
		}
	}

	kinds[def.Key] = def
}

// Kind returns a kind definition by key.
// Returns false if not found.
func Kind(key string) (KindDefinition, bool) {
	kindsMu.RLock()
	defer kindsMu.RUnlock()

	def, ok := kinds[key]
	return def, ok
}

// Kinds returns all registered kinds sorted by priority, then key.
func Kinds() []KindDefinition {
	kindsMu.RLock()
	defer kindsMu.RUnlock()

	result := make([]KindDefinition, 0, len(kinds))
	for _, def := range kinds {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Priority != result[j].Priority {
			return result[i].Priority < result[j].Priority
		}
		return result[i].Key < result[j].Key
	})

	return result
}

// KindCount returns the number of registered kinds.
func KindCount() int {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	return len(kinds)
}

// ClearKinds removes all registered kinds.
// Primarily useful for testing.
func ClearKinds() {
	kindsMu.Lock()
	defer kindsMu.Unlock()
	kinds = make(map[string]KindDefinition)
}
