package neat

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"
)

// ErrInvalidInput is returned by FeedForward when the input vector length does
// not match the configured input count.
var ErrInvalidInput = fmt.Errorf("neat: invalid input vector")

// Genome represents one individual: its node set, its connection genes, and a
// fitness score set externally by the caller after evaluation.
//
// Node identities are laid out at seeding time and stay stable across clone
// and crossover: inputs take ids 0..NumInputs-1 on layer 0, the bias node
// takes id NumInputs on layer 0 with its output value fixed by mutation, and
// outputs take ids NumInputs+1..NumInputs+NumOutputs on the last layer.
type Genome struct {
	ID         string
	Nodes      []*Node
	Genes      []*ConnectionGene
	Fitness    float64
	Layers     int
	NextNodeID int
	BiasNodeID int
	Config     *GenomeConfig
}

// NewGenome creates a minimal genome: inputs + bias + outputs, no hidden
// nodes and no connections. Callers seed initial connections separately so
// the innovation registry can number them.
func NewGenome(config *GenomeConfig) *Genome {
	g := &Genome{
		ID:     uuid.NewString(),
		Config: config,
		Layers: 2,
	}

	for i := 0; i < config.NumInputs; i++ {
		g.Nodes = append(g.Nodes, NewNode(i, DefaultActivation, 0))
	}

	g.BiasNodeID = config.NumInputs
	bias := NewNode(g.BiasNodeID, DefaultActivation, 0)
	bias.OutputValue = 1.0
	g.Nodes = append(g.Nodes, bias)

	for i := 0; i < config.NumOutputs; i++ {
		g.Nodes = append(g.Nodes, NewNode(config.NumInputs+1+i, DefaultActivation, 1))
	}

	g.NextNodeID = config.NumInputs + config.NumOutputs + 1
	return g
}

// String returns a short description of the genome.
func (g *Genome) String() string {
	return fmt.Sprintf("Genome(ID: %s, Nodes: %d, Genes: %d, Fitness: %.4f)",
		g.ID, len(g.Nodes), len(g.Genes), g.Fitness)
}

// GetNode returns the node with the given id, or nil when no such node exists.
func (g *Genome) GetNode(id int) *Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// ConnectNodes rebuilds every node's outgoing connection list from the gene
// list. Genes whose endpoints are not part of the node set indicate a core
// invariant breach and panic.
func (g *Genome) ConnectNodes() {
	for _, n := range g.Nodes {
		n.OutputConnections = n.OutputConnections[:0]
	}
	for _, gene := range g.Genes {
		if g.GetNode(gene.FromNode.ID) != gene.FromNode || g.GetNode(gene.ToNode.ID) != gene.ToNode {
			panic(fmt.Sprintf("neat: gene %s references nodes outside genome %s", gene, g.ID))
		}
		gene.FromNode.OutputConnections = append(gene.FromNode.OutputConnections, gene)
	}
}

// inputNodes returns the layer-0 nodes that carry the input vector, in id order.
func (g *Genome) inputNodes() []*Node {
	nodes := make([]*Node, 0, g.Config.NumInputs)
	for i := 0; i < g.Config.NumInputs; i++ {
		nodes = append(nodes, g.GetNode(i))
	}
	return nodes
}

// outputNodes returns the output nodes in id order.
func (g *Genome) outputNodes() []*Node {
	nodes := make([]*Node, 0, g.Config.NumOutputs)
	for i := 0; i < g.Config.NumOutputs; i++ {
		nodes = append(nodes, g.GetNode(g.Config.NumInputs+1+i))
	}
	return nodes
}

// FeedForward evaluates the network on one input vector and returns the
// output-layer values. The pass is deterministic for fixed weights and
// activations. An input vector of the wrong length is an error and produces
// no partial evaluation.
func (g *Genome) FeedForward(inputs []float64) ([]float64, error) {
	if len(inputs) != g.Config.NumInputs {
		return nil, fmt.Errorf("%w: got %d values, expected %d", ErrInvalidInput, len(inputs), g.Config.NumInputs)
	}

	for i, n := range g.inputNodes() {
		n.OutputValue = inputs[i]
	}
	for _, n := range g.Nodes {
		n.InputSum = 0
	}

	g.ConnectNodes()

	// Engage strictly by ascending layer so every accumulator is complete
	// before its node fires.
	engageOrder := make([]*Node, len(g.Nodes))
	copy(engageOrder, g.Nodes)
	sort.SliceStable(engageOrder, func(i, j int) bool {
		return engageOrder[i].Layer < engageOrder[j].Layer
	})
	for _, n := range engageOrder {
		n.Engage()
	}

	outputs := make([]float64, 0, g.Config.NumOutputs)
	for _, n := range g.outputNodes() {
		outputs = append(outputs, n.OutputValue)
	}
	return outputs, nil
}

// FullyConnected reports whether no further connection can be added: every
// node already connects to every node on a higher layer.
func (g *Genome) FullyConnected() bool {
	nodesPerLayer := make(map[int]int)
	for _, n := range g.Nodes {
		nodesPerLayer[n.Layer]++
	}

	maxConnections := 0
	for layer, count := range nodesPerLayer {
		for other, otherCount := range nodesPerLayer {
			if other > layer {
				maxConnections += count * otherCount
			}
		}
	}
	return len(g.Genes) >= maxConnections
}

// AddConnectionMutation connects two previously unconnected nodes on
// different layers with a random weight, numbering the new gene through the
// innovation registry. On a fully connected network this silently no-ops.
func (g *Genome) AddConnectionMutation(history *InnovationHistory) {
	if g.FullyConnected() {
		return
	}

	var from, to *Node
	for {
		n1 := g.Nodes[rand.Intn(len(g.Nodes))]
		n2 := g.Nodes[rand.Intn(len(g.Nodes))]
		if n1.Layer == n2.Layer || n1.IsConnectedTo(n2) {
			continue
		}
		if n1.Layer < n2.Layer {
			from, to = n1, n2
		} else {
			from, to = n2, n1
		}
		break
	}

	weight := uniform(g.Config.WeightMinValue, g.Config.WeightMaxValue)
	innovationNb := history.GetInnovation(g, from, to)
	g.Genes = append(g.Genes, NewConnectionGene(from, to, weight, innovationNb))
	g.ConnectNodes()
}

// AddNodeMutation splits a random enabled connection: the old gene is
// disabled and replaced by from->new (weight 1.0) and new->to (the original
// weight), each independently numbered through the registry. The new node
// lands on its own intermediate layer; downstream layers shift up when
// needed. With no enabled gene to split this silently no-ops.
func (g *Genome) AddNodeMutation(history *InnovationHistory) {
	enabled := make([]*ConnectionGene, 0, len(g.Genes))
	for _, gene := range g.Genes {
		if gene.Enabled {
			enabled = append(enabled, gene)
		}
	}
	if len(enabled) == 0 {
		return
	}

	gene := enabled[rand.Intn(len(enabled))]
	gene.Enabled = false

	newLayer := gene.FromNode.Layer + 1
	if newLayer == gene.ToNode.Layer {
		// No room between the endpoints; open a fresh layer and push
		// everything at or above it one step down the network.
		for _, n := range g.Nodes {
			if n.Layer >= newLayer {
				n.Layer++
			}
		}
		g.Layers++
	}

	node := NewNode(g.NextNodeID, DefaultActivation, newLayer)
	g.NextNodeID++
	g.Nodes = append(g.Nodes, node)

	nb1 := history.GetInnovation(g, gene.FromNode, node)
	g.Genes = append(g.Genes, NewConnectionGene(gene.FromNode, node, 1.0, nb1))

	nb2 := history.GetInnovation(g, node, gene.ToNode)
	g.Genes = append(g.Genes, NewConnectionGene(node, gene.ToNode, gene.Weight, nb2))

	g.ConnectNodes()
}

// Mutate applies weight, enable-flag, node and structural mutations, each
// probability rolled independently.
func (g *Genome) Mutate(history *InnovationHistory) {
	if len(g.Genes) == 0 {
		g.AddConnectionMutation(history)
	}

	for _, gene := range g.Genes {
		gene.MutateWeight(g.Config)
		if rand.Float64() < g.Config.EnabledMutateRate {
			gene.Enabled = !gene.Enabled
		}
	}

	for _, n := range g.Nodes {
		n.Mutate(g.Config, n.ID == g.BiasNodeID)
	}

	if rand.Float64() < g.Config.ConnAddProb {
		g.AddConnectionMutation(history)
	}
	if rand.Float64() < g.Config.NodeAddProb {
		g.AddNodeMutation(history)
	}
}

// geneByInnovation returns the gene with the given innovation number, or nil.
func (g *Genome) geneByInnovation(innovationNb int) *ConnectionGene {
	for _, gene := range g.Genes {
		if gene.InnovationNb == innovationNb {
			return gene
		}
	}
	return nil
}

// Crossover breeds a child from the receiver and another parent. By
// convention the receiver is the fitter parent: its full node closure is
// inherited, matching genes are taken from either parent uniformly at random,
// and excess/disjoint genes come from the receiver unconditionally. A gene
// disabled in either parent leaves the child's copy disabled with probability
// GeneDisableRate.
func (g *Genome) Crossover(other *Genome) *Genome {
	child := &Genome{
		ID:         uuid.NewString(),
		Config:     g.Config,
		Layers:     g.Layers,
		NextNodeID: g.NextNodeID,
		BiasNodeID: g.BiasNodeID,
	}

	for _, n := range g.Nodes {
		child.Nodes = append(child.Nodes, n.Clone())
	}

	for _, gene := range g.Genes {
		inherited := gene
		enabled := gene.Enabled

		if match := other.geneByInnovation(gene.InnovationNb); match != nil {
			if rand.Float64() < 0.5 {
				inherited = match
			}
			if !gene.Enabled || !match.Enabled {
				enabled = rand.Float64() >= g.Config.GeneDisableRate
			}
		}

		from := child.GetNode(inherited.FromNode.ID)
		to := child.GetNode(inherited.ToNode.ID)
		if from == nil || to == nil {
			panic(fmt.Sprintf("neat: crossover gene %s has endpoints outside the fitter parent's node closure", inherited))
		}
		childGene := inherited.Clone(from, to)
		childGene.Enabled = enabled
		child.Genes = append(child.Genes, childGene)
	}

	child.ConnectNodes()
	return child
}

// Distance computes the compatibility distance
//
//	(c1*excess + c2*disjoint) / max(N, 1) + c3 * meanWeightDiff
//
// where N is the gene count of the larger genome, excess genes lie beyond the
// other genome's highest innovation number, disjoint genes are the remaining
// non-matching ones, and matching genes contribute their mean absolute weight
// difference.
func (g *Genome) Distance(other *Genome) float64 {
	maxInnovG := 0
	for _, gene := range g.Genes {
		if gene.InnovationNb > maxInnovG {
			maxInnovG = gene.InnovationNb
		}
	}
	maxInnovOther := 0
	for _, gene := range other.Genes {
		if gene.InnovationNb > maxInnovOther {
			maxInnovOther = gene.InnovationNb
		}
	}

	excess, disjoint, matching := 0, 0, 0
	weightDiffSum := 0.0

	for _, gene := range g.Genes {
		if match := other.geneByInnovation(gene.InnovationNb); match != nil {
			matching++
			diff := gene.Weight - match.Weight
			if diff < 0 {
				diff = -diff
			}
			weightDiffSum += diff
		} else if gene.InnovationNb > maxInnovOther {
			excess++
		} else {
			disjoint++
		}
	}
	for _, gene := range other.Genes {
		if g.geneByInnovation(gene.InnovationNb) == nil {
			if gene.InnovationNb > maxInnovG {
				excess++
			} else {
				disjoint++
			}
		}
	}

	n := len(g.Genes)
	if len(other.Genes) > n {
		n = len(other.Genes)
	}
	if n < 1 {
		n = 1
	}

	d := (g.Config.CompatibilityExcessCoefficient*float64(excess) +
		g.Config.CompatibilityDisjointCoefficient*float64(disjoint)) / float64(n)
	if matching > 0 {
		d += g.Config.CompatibilityWeightCoefficient * weightDiffSum / float64(matching)
	}
	return d
}

// Clone deep-copies the genome: ids, layers, weights, enable flags and
// innovation numbers are preserved and the internal connection graph is
// rewired to the new node instances, so no mutable state aliases the source.
// The clone is a new individual and receives a fresh identity label.
func (g *Genome) Clone() *Genome {
	clone := &Genome{
		ID:         uuid.NewString(),
		Config:     g.Config,
		Fitness:    g.Fitness,
		Layers:     g.Layers,
		NextNodeID: g.NextNodeID,
		BiasNodeID: g.BiasNodeID,
	}
	for _, n := range g.Nodes {
		clone.Nodes = append(clone.Nodes, n.Clone())
	}
	for _, gene := range g.Genes {
		clone.Genes = append(clone.Genes,
			gene.Clone(clone.GetNode(gene.FromNode.ID), clone.GetNode(gene.ToNode.ID)))
	}
	clone.ConnectNodes()
	return clone
}

// seedConnections gives a fresh genome its sparse initial topology: each
// output node gets one connection from a random layer-0 node (input or bias).
func (g *Genome) seedConnections(history *InnovationHistory) {
	for _, out := range g.outputNodes() {
		from := g.Nodes[rand.Intn(g.Config.NumInputs+1)]
		if from.IsConnectedTo(out) {
			continue
		}
		weight := uniform(g.Config.WeightMinValue, g.Config.WeightMaxValue)
		nb := history.GetInnovation(g, from, out)
		g.Genes = append(g.Genes, NewConnectionGene(from, out, weight, nb))
		g.ConnectNodes()
	}
}
