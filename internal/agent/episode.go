package agent

import (
	"context"
	"fmt"

	"github.com/vovakirdan/dino-evo/internal/core"
	"github.com/vovakirdan/dino-evo/internal/games/dino"
)

// EpisodeResult summarizes one finished episode.
type EpisodeResult struct {
	Score   int
	Ticks   int
	Fitness []float64 // Per entity, index order
	Best    int       // Index of the fittest entity
	Died    bool      // False when stopped by the tick limit
}

// BestFitness returns the fitness of the fittest entity.
func (r EpisodeResult) BestFitness() float64 {
	if len(r.Fitness) == 0 {
		return 0
	}
	return r.Fitness[r.Best]
}

// RunEpisode resets w to one entity per policy and steps it until every
// entity is dead, maxTicks is reached (when positive) or ctx is cancelled.
// Every living entity's policy sees the same observation; dead entities
// receive ActionNone.
func RunEpisode(ctx context.Context, w *dino.World, policies []Policy, maxTicks int) (EpisodeResult, error) {
	if len(policies) == 0 {
		return EpisodeResult{}, fmt.Errorf("agent: episode needs at least one policy")
	}

	obs := w.Reset(len(policies))
	actions := make([]core.Action, len(policies))

	done := false
	for !done {
		if err := ctx.Err(); err != nil {
			return summarize(w, false), err
		}
		if maxTicks > 0 && w.Tick() >= maxTicks {
			break
		}

		for i, p := range policies {
			actions[i] = core.ActionNone
			if w.IsAlive(i) {
				actions[i] = p.Act(obs)
			}
		}

		var err error
		obs, _, done, err = w.Step(actions)
		if err != nil {
			return summarize(w, done), err
		}
	}

	return summarize(w, done), nil
}

func summarize(w *dino.World, died bool) EpisodeResult {
	res := EpisodeResult{
		Score:   w.Score(),
		Ticks:   w.Tick(),
		Fitness: w.Fitnesses(),
		Died:    died,
	}
	for i, f := range res.Fitness {
		if f > res.Fitness[res.Best] {
			res.Best = i
		}
	}
	return res
}
