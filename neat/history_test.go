package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// historyFixture mirrors the canonical registry scenario: a genome carrying a
// single gene with innovation number 1 between nodes 1 and 2.
func historyFixture() (*Genome, *Node, *Node, *ConnectionHistory) {
	config := DefaultConfig()
	fromNode := NewNode(1, "sigmoid", 1)
	toNode := NewNode(2, "sigmoid", 2)

	genome := &Genome{Config: &config.Genome}
	genome.Genes = []*ConnectionGene{NewConnectionGene(fromNode, toNode, 0.5, 1)}

	history := NewConnectionHistory(fromNode.ID, toNode.ID, 1, []int{1})
	return genome, fromNode, toNode, history
}

func TestConnectionHistoryMatchesExistingConnection(t *testing.T) {
	genome, fromNode, toNode, history := historyFixture()
	assert.True(t, history.Matches(genome, fromNode, toNode))
}

func TestConnectionHistoryRejectsDifferentEndpoint(t *testing.T) {
	genome, fromNode, _, history := historyFixture()
	other := NewNode(3, "relu", 2)
	assert.False(t, history.Matches(genome, fromNode, other))
}

func TestConnectionHistoryRejectsDifferentGenomicContext(t *testing.T) {
	genome, fromNode, toNode, _ := historyFixture()
	history := NewConnectionHistory(fromNode.ID, toNode.ID, 1, []int{2})
	assert.False(t, history.Matches(genome, fromNode, toNode))
}

func TestConnectionHistoryRejectsDifferentGeneCount(t *testing.T) {
	genome, fromNode, toNode, history := historyFixture()
	extra := NewNode(4, "sigmoid", 1)
	genome.Genes = append(genome.Genes, NewConnectionGene(extra, toNode, 0.1, 2))
	assert.False(t, history.Matches(genome, fromNode, toNode))
}

func TestInnovationHistoryReusesNumberForEquivalentMutation(t *testing.T) {
	config := DefaultConfig()
	ih := NewInnovationHistory()

	// Two independently evolving genomes in the same (empty) genomic context
	// invent the same structural mutation.
	g1 := &Genome{Config: &config.Genome}
	g2 := &Genome{Config: &config.Genome}
	a1, b1 := NewNode(0, "sigmoid", 0), NewNode(3, "sigmoid", 1)
	a2, b2 := NewNode(0, "sigmoid", 0), NewNode(3, "sigmoid", 1)

	nb1 := ih.GetInnovation(g1, a1, b1)
	nb2 := ih.GetInnovation(g2, a2, b2)
	assert.Equal(t, nb1, nb2, "equivalent mutations must share an innovation number")
	require.Len(t, ih.Entries, 1)
}

func TestInnovationHistoryMintsNewNumberForNewContext(t *testing.T) {
	config := DefaultConfig()
	ih := NewInnovationHistory()

	a, b := NewNode(0, "sigmoid", 0), NewNode(3, "sigmoid", 1)
	g1 := &Genome{Config: &config.Genome}
	nb1 := ih.GetInnovation(g1, a, b)

	// Same endpoints, but the genome already carries a gene: different context.
	g2 := &Genome{Config: &config.Genome}
	g2.Genes = []*ConnectionGene{NewConnectionGene(NewNode(1, "sigmoid", 0), b, 0.2, nb1)}
	nb2 := ih.GetInnovation(g2, a, b)

	assert.NotEqual(t, nb1, nb2)
	assert.Len(t, ih.Entries, 2)
}

func TestInnovationHistoryNumbersAreSequential(t *testing.T) {
	config := DefaultConfig()
	ih := NewInnovationHistory()
	g := &Genome{Config: &config.Genome}

	a, b, c := NewNode(0, "sigmoid", 0), NewNode(3, "sigmoid", 1), NewNode(4, "sigmoid", 1)
	nb1 := ih.GetInnovation(g, a, b)
	g.Genes = append(g.Genes, NewConnectionGene(a, b, 0.5, nb1))
	nb2 := ih.GetInnovation(g, a, c)

	assert.Equal(t, nb1+1, nb2)
}
