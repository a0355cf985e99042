package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngageSkipsActivationOnLayerZero(t *testing.T) {
	n := NewNode(0, "sigmoid", 0)
	n.OutputValue = 2.0
	n.InputSum = 100.0 // must be ignored on layer 0

	n.Engage()
	assert.Equal(t, 2.0, n.OutputValue, "layer-0 output is supplied directly, never activated")
}

func TestEngagePropagatesWeightedOutput(t *testing.T) {
	from := NewNode(0, "sigmoid", 0)
	hidden := NewNode(3, "linear", 1)
	out := NewNode(4, "linear", 2)

	g1 := NewConnectionGene(from, hidden, 0.5, 1)
	g2 := NewConnectionGene(hidden, out, 2.0, 2)
	from.OutputConnections = []*ConnectionGene{g1}
	hidden.OutputConnections = []*ConnectionGene{g2}

	from.OutputValue = 4.0
	from.Engage()
	assert.Equal(t, 2.0, hidden.InputSum)

	hidden.Engage()
	assert.Equal(t, 2.0, hidden.OutputValue, "linear activation of the accumulated sum")
	assert.Equal(t, 4.0, out.InputSum)
}

func TestEngageIgnoresDisabledConnections(t *testing.T) {
	from := NewNode(0, "sigmoid", 0)
	to := NewNode(3, "linear", 1)
	gene := NewConnectionGene(from, to, 1.0, 1)
	gene.Enabled = false
	from.OutputConnections = []*ConnectionGene{gene}

	from.OutputValue = 1.0
	from.Engage()
	assert.Equal(t, 0.0, to.InputSum)
}

func TestIsConnectedTo(t *testing.T) {
	a := NewNode(0, "sigmoid", 0)
	b := NewNode(3, "sigmoid", 1)
	c := NewNode(4, "sigmoid", 1)

	gene := NewConnectionGene(a, b, 1.0, 1)
	a.OutputConnections = []*ConnectionGene{gene}

	assert.True(t, a.IsConnectedTo(b))
	assert.True(t, b.IsConnectedTo(a), "connectivity is direction-agnostic")
	assert.False(t, a.IsConnectedTo(c))
	assert.False(t, b.IsConnectedTo(c), "same-layer nodes are never connected")
}

func TestNodeMutateBiasStaysInBounds(t *testing.T) {
	config := DefaultConfig()
	config.Genome.BiasReplaceRate = 1.0

	n := NewNode(2, "sigmoid", 0)
	n.OutputValue = 1.0
	for i := 0; i < 20; i++ {
		n.Mutate(&config.Genome, true)
		assert.GreaterOrEqual(t, n.OutputValue, config.Genome.BiasMinValue)
		assert.LessOrEqual(t, n.OutputValue, config.Genome.BiasMaxValue)
	}
}

func TestNodeMutateBiasPerturbStaysInBounds(t *testing.T) {
	config := DefaultConfig()
	config.Genome.BiasReplaceRate = 0.0
	config.Genome.BiasMutateRate = 1.0

	n := NewNode(2, "sigmoid", 0)
	n.OutputValue = config.Genome.BiasMaxValue
	for i := 0; i < 200; i++ {
		n.Mutate(&config.Genome, true)
		assert.GreaterOrEqual(t, n.OutputValue, config.Genome.BiasMinValue)
		assert.LessOrEqual(t, n.OutputValue, config.Genome.BiasMaxValue)
	}
}

func TestNodeMutateActivationResample(t *testing.T) {
	config := DefaultConfig()
	config.Genome.ActivationMutateRate = 1.0

	n := NewNode(5, "sigmoid", 1)
	n.Mutate(&config.Genome, false)
	_, ok := ActivationFunctions[n.Activation]
	assert.True(t, ok, "resampled activation %q must be supported", n.Activation)
}

func TestNodeMutateNonBiasKeepsOutputValue(t *testing.T) {
	config := DefaultConfig()
	config.Genome.BiasReplaceRate = 1.0
	config.Genome.ActivationMutateRate = 0.0

	n := NewNode(5, "sigmoid", 1)
	n.OutputValue = 0.25
	n.Mutate(&config.Genome, false)
	assert.Equal(t, 0.25, n.OutputValue)
}

func TestNodeCloneDropsConnections(t *testing.T) {
	n := NewNode(7, "tanh", 3)
	n.OutputValue = 0.9
	n.OutputConnections = []*ConnectionGene{NewConnectionGene(n, NewNode(8, "tanh", 4), 1.0, 1)}

	clone := n.Clone()
	assert.Equal(t, n.ID, clone.ID)
	assert.Equal(t, n.Layer, clone.Layer)
	assert.Equal(t, n.Activation, clone.Activation)
	assert.Equal(t, n.OutputValue, clone.OutputValue)
	assert.Empty(t, clone.OutputConnections, "connections are rebuilt by the owning genome")
}
