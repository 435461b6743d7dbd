package agent

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/dino-evo/internal/core"
	"github.com/vovakirdan/dino-evo/internal/games/dino"
)

// Network dimensions that are fixed by the simulation contract.
const (
	NumInputs  = dino.ObservationSize
	NumOutputs = core.NumActions
)

// Network is a two-layer feedforward network: observation -> tanh hidden
// layer -> one output per action. The chosen action is the argmax output.
type Network struct {
	hidden int
	w1     []float64 // hidden x inputs
	b1     []float64
	w2     []float64 // outputs x hidden
	b2     []float64

	// Scratch buffers, reused between calls
	h   []float64
	out []float64
}

// GenomeSize returns the number of weights of a network with the given
// hidden layer width.
func GenomeSize(hidden int) int {
	return hidden*NumInputs + hidden + NumOutputs*hidden + NumOutputs
}

// NewNetwork creates a randomly initialized network (Xavier scaling).
func NewNetwork(hidden int, rng *rand.Rand) *Network {
	hidden = max(hidden, 1)
	genome := make([]float64, GenomeSize(hidden))

	scale1 := math.Sqrt(2.0 / float64(NumInputs))
	scale2 := math.Sqrt(2.0 / float64(hidden))
	n := hidden * NumInputs
	for i := 0; i < n; i++ {
		genome[i] = rng.NormFloat64() * scale1
	}
	off := n + hidden
	for i := 0; i < NumOutputs*hidden; i++ {
		genome[off+i] = rng.NormFloat64() * scale2
	}

	net, _ := NetworkFromGenome(hidden, genome)
	return net
}

// NetworkFromGenome builds a network from a flat weight vector laid out as
// W1, B1, W2, B2. The genome is copied.
func NetworkFromGenome(hidden int, genome []float64) (*Network, error) {
	if hidden < 1 {
		return nil, fmt.Errorf("agent: hidden layer width must be positive, got %d", hidden)
	}
	if len(genome) != GenomeSize(hidden) {
		return nil, fmt.Errorf("agent: genome has %d weights, expected %d for %d hidden units",
			len(genome), GenomeSize(hidden), hidden)
	}

	g := make([]float64, len(genome))
	copy(g, genome)

	n1 := hidden * NumInputs
	n2 := NumOutputs * hidden
	return &Network{
		hidden: hidden,
		w1:     g[:n1],
		b1:     g[n1 : n1+hidden],
		w2:     g[n1+hidden : n1+hidden+n2],
		b2:     g[n1+hidden+n2:],
		h:      make([]float64, hidden),
		out:    make([]float64, NumOutputs),
	}, nil
}

// Hidden returns the hidden layer width.
func (n *Network) Hidden() int {
	return n.hidden
}

// Genome returns a copy of the network's flat weight vector.
func (n *Network) Genome() []float64 {
	out := make([]float64, 0, GenomeSize(n.hidden))
	out = append(out, n.w1...)
	out = append(out, n.b1...)
	out = append(out, n.w2...)
	out = append(out, n.b2...)
	return out
}

// Forward computes the raw output activations. The returned slice is
// reused by the next call.
func (n *Network) Forward(inputs []float64) []float64 {
	for i := 0; i < n.hidden; i++ {
		sum := n.b1[i]
		row := n.w1[i*NumInputs : (i+1)*NumInputs]
		for j, x := range inputs[:NumInputs] {
			sum += row[j] * x
		}
		n.h[i] = math.Tanh(sum)
	}

	for i := 0; i < NumOutputs; i++ {
		sum := n.b2[i]
		row := n.w2[i*n.hidden : (i+1)*n.hidden]
		for j, x := range n.h {
			sum += row[j] * x
		}
		n.out[i] = math.Tanh(sum)
	}
	return n.out
}

// Act returns the action with the highest output. Ties go to the lowest index.
func (n *Network) Act(obs dino.Observation) core.Action {
	out := n.Forward(obs[:])
	best := 0
	for i := 1; i < len(out); i++ {
		if out[i] > out[best] {
			best = i
		}
	}
	return core.Action(best)
}
