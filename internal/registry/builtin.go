package registry

import (
	"math/rand"

	"github.com/vovakirdan/dino-evo/internal/agent"
)

// DefaultHidden is the hidden layer width of freshly created networks.
const DefaultHidden = 8

func init() {
	Register("idle", "Idle (never acts)", func(Options) (agent.Policy, error) {
		return agent.Idle{}, nil
	})
	Register("random", "Random actions", func(o Options) (agent.Policy, error) {
		return agent.NewRandom(o.Seed), nil
	})
	Register("heuristic", "Jump over ground obstacles", func(o Options) (agent.Policy, error) {
		return agent.NewHeuristic(o.Config), nil
	})
	Register("network", "Feed-forward network", newNetwork)
}

func newNetwork(o Options) (agent.Policy, error) {
	if o.Network != nil {
		// Networks keep scratch buffers; every caller gets its own copy
		return agent.NetworkFromGenome(o.Network.Hidden(), o.Network.Genome())
	}
	hidden := o.Hidden
	if hidden <= 0 {
		hidden = DefaultHidden
	}
	return agent.NewNetwork(hidden, rand.New(rand.NewSource(o.Seed))), nil
}
