package neat

import (
	"fmt"
	"math/rand"
)

// ConnectionGene represents a directed, weighted edge between two nodes.
// The innovation number is the historical marking that lets crossover align
// genes from different genomes; it is assigned through the InnovationHistory
// registry, never minted locally.
type ConnectionGene struct {
	FromNode     *Node
	ToNode       *Node
	Weight       float64
	Enabled      bool
	InnovationNb int
}

// NewConnectionGene creates an enabled connection gene.
func NewConnectionGene(from, to *Node, weight float64, innovationNb int) *ConnectionGene {
	return &ConnectionGene{
		FromNode:     from,
		ToNode:       to,
		Weight:       weight,
		Enabled:      true,
		InnovationNb: innovationNb,
	}
}

// String returns a short description of the gene.
func (cg *ConnectionGene) String() string {
	return fmt.Sprintf("ConnGene(%d->%d, Weight: %.3f, Enabled: %t, Innovation: %d)",
		cg.FromNode.ID, cg.ToNode.ID, cg.Weight, cg.Enabled, cg.InnovationNb)
}

// MutateWeight either replaces the weight with a fresh draw from the
// configured bounds or perturbs it by a Gaussian step, per the configured
// rates. The two branches are exclusive; replacement is checked first.
func (cg *ConnectionGene) MutateWeight(config *GenomeConfig) {
	if rand.Float64() < config.WeightReplaceRate {
		cg.Weight = uniform(config.WeightMinValue, config.WeightMaxValue)
	} else if rand.Float64() < config.WeightMutateRate {
		cg.Weight += rand.NormFloat64() * config.WeightMutatePower
		cg.Weight = clamp(cg.Weight, config.WeightMinValue, config.WeightMaxValue)
	}
}

// Clone copies the gene, rewiring it onto the given node instances so the
// copy shares no mutable state with the source genome.
func (cg *ConnectionGene) Clone(from, to *Node) *ConnectionGene {
	clone := NewConnectionGene(from, to, cg.Weight, cg.InnovationNb)
	clone.Enabled = cg.Enabled
	return clone
}
