package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/dino-evo/internal/agent"
	"github.com/vovakirdan/dino-evo/internal/config"
	"github.com/vovakirdan/dino-evo/internal/core"
	"github.com/vovakirdan/dino-evo/internal/games/dino"
)

func TestBuiltinsRegistered(t *testing.T) {
	for _, id := range []string{"heuristic", "idle", "network", "random"} {
		if !Exists(id) {
			t.Errorf("policy %q should be registered", id)
		}
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("telepathy", Options{})
	if !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}
}

func TestCreateEachBuiltin(t *testing.T) {
	opts := Options{Seed: 1, Config: config.DefaultDinoConfig()}
	obs := dino.Observation{0.8, 0.5, 0.1, 0.8}

	for _, info := range List() {
		t.Run(info.ID, func(t *testing.T) {
			p, err := Create(info.ID, opts)
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", info.ID, err)
			}
			if a := p.Act(obs); !a.Valid() {
				t.Errorf("Act() returned invalid action %v", a)
			}
		})
	}
}

func TestCreateNetworkCopiesGenome(t *testing.T) {
	genome := make([]float64, agent.GenomeSize(3))
	genome[len(genome)-2] = 1 // favour jump
	src, err := agent.NetworkFromGenome(3, genome)
	if err != nil {
		t.Fatal(err)
	}

	policies, err := CreateN("network", 2, Options{Network: src})
	if err != nil {
		t.Fatalf("CreateN() failed: %v", err)
	}
	if policies[0] == policies[1] {
		t.Error("CreateN should return independent instances")
	}
	for i, p := range policies {
		if a := p.Act(dino.Observation{}); a != core.ActionJump {
			t.Errorf("policy %d: Act() = %v, expected Jump", i, a)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("idle", "again", func(Options) (agent.Policy, error) { return agent.Idle{}, nil })
}
