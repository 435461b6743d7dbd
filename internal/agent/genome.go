package agent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GenomeFile is the on-disk form of a trained network.
type GenomeFile struct {
	Hidden  int       `yaml:"hidden"`
	Fitness float64   `yaml:"fitness"`
	Seed    int64     `yaml:"seed"`
	Weights []float64 `yaml:"weights,flow"`
}

// SaveGenome writes a network and its fitness to path as YAML.
func SaveGenome(path string, n *Network, fitness float64, seed int64) error {
	data, err := yaml.Marshal(GenomeFile{
		Hidden:  n.Hidden(),
		Fitness: fitness,
		Seed:    seed,
		Weights: n.Genome(),
	})
	if err != nil {
		return fmt.Errorf("agent: marshal genome: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("agent: write genome %s: %w", path, err)
	}
	return nil
}

// LoadGenome reads a network saved by SaveGenome.
func LoadGenome(path string) (*Network, GenomeFile, error) {
	var gf GenomeFile
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gf, fmt.Errorf("agent: read genome %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &gf); err != nil {
		return nil, gf, fmt.Errorf("agent: parse genome %s: %w", path, err)
	}
	n, err := NetworkFromGenome(gf.Hidden, gf.Weights)
	if err != nil {
		return nil, gf, err
	}
	return n, gf, nil
}
