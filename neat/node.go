package neat

import (
	"fmt"
	"math/rand"
)

// Node represents a single neuron within a genome's network.
// Layer 0 holds the input and bias nodes; their output is supplied directly
// and never passed through an activation function.
type Node struct {
	ID                int
	Layer             int
	Activation        string // Name of the activation function.
	InputSum          float64
	OutputValue       float64
	OutputConnections []*ConnectionGene
}

// NewNode creates a node with the given identity, activation name and layer.
func NewNode(id int, activation string, layer int) *Node {
	return &Node{
		ID:         id,
		Layer:      layer,
		Activation: activation,
	}
}

// String returns a short description of the node.
func (n *Node) String() string {
	return fmt.Sprintf("Node(ID: %d, Layer: %d, Activation: %s)", n.ID, n.Layer, n.Activation)
}

// Engage applies the activation function (except on layer 0) and pushes the
// weighted output into the input accumulators of downstream nodes.
// Callers must engage nodes in ascending layer order; no internal ordering
// guarantee is provided here.
func (n *Node) Engage() {
	if n.Layer != 0 {
		n.OutputValue = GetActivation(n.Activation)(n.InputSum)
	}
	for _, c := range n.OutputConnections {
		if c.Enabled {
			c.ToNode.InputSum += c.Weight * n.OutputValue
		}
	}
}

// Mutate adjusts the node's attributes based on the mutation rates in the config.
// For the bias node the stored output value itself is the evolvable attribute;
// the activation resample is rolled independently and both effects may fire in
// one call.
func (n *Node) Mutate(config *GenomeConfig, isBiasNode bool) {
	if isBiasNode {
		if rand.Float64() < config.BiasReplaceRate {
			n.OutputValue = uniform(config.BiasMinValue, config.BiasMaxValue)
		} else if rand.Float64() < config.BiasMutateRate {
			n.OutputValue += (config.BiasInitMean + rand.NormFloat64()*config.BiasInitStdev) / 50.0
			n.OutputValue = clamp(n.OutputValue, config.BiasMinValue, config.BiasMaxValue)
		}
	}

	if rand.Float64() < config.ActivationMutateRate {
		n.Activation = RandomActivationName()
	}
}

// IsConnectedTo reports whether a connection exists between the two nodes in
// either direction, enabled or not. Nodes on the same layer are never
// considered connected; the lower-layer node is the potential source.
func (n *Node) IsConnectedTo(other *Node) bool {
	if other.Layer == n.Layer {
		return false
	}

	if other.Layer < n.Layer {
		for _, c := range other.OutputConnections {
			if c.ToNode == n {
				return true
			}
		}
	} else {
		for _, c := range n.OutputConnections {
			if c.ToNode == other {
				return true
			}
		}
	}
	return false
}

// Clone returns a copy of this node with the same identity, activation and
// layer. Output connections are not copied; the owning genome rebuilds them
// from its gene list.
func (n *Node) Clone() *Node {
	node := NewNode(n.ID, n.Activation, n.Layer)
	node.OutputValue = n.OutputValue
	return node
}
