// Package registry provides a global registry for controller factories.
// Policies register themselves in init() functions, allowing the CLI
// and the viewer to discover and instantiate controllers by id.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/dino-evo/internal/agent"
	"github.com/vovakirdan/dino-evo/internal/config"
)

// ErrUnknownPolicy is returned by Create for ids that were never registered.
var ErrUnknownPolicy = errors.New("registry: unknown policy")

// Options carries everything a factory may need to build a policy.
type Options struct {
	Seed   int64
	Config config.DinoConfig

	// Network is used by the "network" policy. When nil, a random
	// network with Hidden units is created from Seed.
	Network *agent.Network
	Hidden  int
}

// Factory builds a new, independent policy instance.
type Factory func(opts Options) (agent.Policy, error)

// PolicyInfo contains metadata about a registered policy.
type PolicyInfo struct {
	ID    string
	Title string
}

type entry struct {
	title   string
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a policy factory to the registry.
// Panics if a policy with the same id is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: policy %q already registered", id))
	}
	entries[id] = entry{title: title, factory: f}
}

// List returns all registered policies, sorted by id.
func List() []PolicyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PolicyInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, PolicyInfo{ID: id, Title: e.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a policy by id.
func Create(id string, opts Options) (agent.Policy, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPolicy, id)
	}
	return e.factory(opts)
}

// CreateN builds n independent policies with consecutive seeds, so that
// stateful policies such as random do not share a stream.
func CreateN(id string, n int, opts Options) ([]agent.Policy, error) {
	policies := make([]agent.Policy, 0, n)
	for i := 0; i < n; i++ {
		o := opts
		o.Seed = opts.Seed + int64(i)
		p, err := Create(id, o)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}

// Exists checks if a policy with the given id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
